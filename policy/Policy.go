// Package policy implements action-selection strategies over an action
// value snapshot. Both EGreedy and Softmax sample via gonum's
// distuv.Categorical, following the sampling style the teacher's linear
// policies use, rather than hand-rolling weighted sampling.
package policy

import "sort"

// Policy selects an action given a snapshot of estimated action values,
// keyed by action ordinal.
type Policy interface {
	SelectAction(values map[int]float64) int
}

// sortedActions returns values's keys in ascending order, giving every
// policy in this package a deterministic, reproducible tie-break: the
// lowest action ordinal wins ties.
func sortedActions(values map[int]float64) []int {
	keys := make([]int, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// greedyIndex returns the index into keys of the action with the highest
// value, breaking ties toward the lowest ordinal (the first max found,
// since keys is sorted ascending).
func greedyIndex(values map[int]float64, keys []int) int {
	best := 0
	bestValue := values[keys[0]]
	for i, k := range keys[1:] {
		if values[k] > bestValue {
			bestValue = values[k]
			best = i + 1
		}
	}
	return best
}
