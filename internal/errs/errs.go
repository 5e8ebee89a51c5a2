// Package errs implements the error kinds shared by every package in this
// module. Errors are constructed with github.com/pkg/errors so that a
// caller can match one of the sentinels below with errors.Is while the
// message printed at the top level still carries a stack trace and an
// operation tag.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel error kinds. Compare against these with errors.Is(err, ErrX), or
// use the Is* helpers below.
var (
	// ErrInvalidConfig indicates a non-positive gridIdeal, hi <= lo, or an
	// out-of-range hyperparameter. Raised at construction; fatal.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrOutOfDomain indicates a state coordinate outside [lo, hi], or NaN.
	// Raised on feature extraction; fatal to the episode.
	ErrOutOfDomain = errors.New("value out of domain")

	// ErrModelEmpty indicates NextState was called on an unpopulated
	// transition model.
	ErrModelEmpty = errors.New("model has no observed transitions")

	// ErrModelMissingKey indicates Reward was called on an absent
	// next-state key.
	ErrModelMissingKey = errors.New("model has no entry for key")

	// ErrNumeric indicates NaN/Inf was detected in a TD error or a weight.
	// Fatal; indicates a diverging learning rate.
	ErrNumeric = errors.New("non-finite value detected")
)

// OpError tags an error with the operation that produced it, following the
// teacher's buffer/expreplay/Errors.go convention.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func (e *OpError) Cause() error {
	return e.Err
}

// Wrap builds an *OpError tagging err with op, and attaches a stack via
// github.com/pkg/errors so the original call site survives in %+v output.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: errors.WithStack(err)}
}

func is(err, target error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, target)
}

// IsInvalidConfig reports whether err (or its wrapped cause) is ErrInvalidConfig.
func IsInvalidConfig(err error) bool { return is(err, ErrInvalidConfig) }

// IsOutOfDomain reports whether err (or its wrapped cause) is ErrOutOfDomain.
func IsOutOfDomain(err error) bool { return is(err, ErrOutOfDomain) }

// IsModelEmpty reports whether err (or its wrapped cause) is ErrModelEmpty.
func IsModelEmpty(err error) bool { return is(err, ErrModelEmpty) }

// IsModelMissingKey reports whether err (or its wrapped cause) is ErrModelMissingKey.
func IsModelMissingKey(err error) bool { return is(err, ErrModelMissingKey) }

// IsNumeric reports whether err (or its wrapped cause) is ErrNumeric.
func IsNumeric(err error) bool { return is(err, ErrNumeric) }
