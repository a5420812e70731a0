// Package search drives the parallel brute-force recovery of a berth's
// authorization string: it partitions the candidate index space across N
// solver channels, runs them concurrently, and stops on the first
// correct guess.
package search

import "github.com/acdtunes/portdock-scheduler/internal/domain/auth"

// Range is an inclusive candidate-index range assigned to one solver.
// Low > High denotes an empty range.
type Range struct {
	Low  int
	High int
}

// Empty reports whether the range contains no candidates.
func (r Range) Empty() bool {
	return r.Low > r.High
}

// Partition splits the candidate space for the given length across
// solverCount workers. Solver k (0 ≤ k < N-1) takes the inclusive range
// [k·R, (k+1)·R-1] where R = cardinality(length)/solverCount (integer
// division); solver N-1 takes the remainder, [(N-1)·R, cardinality-1].
//
// Length 1 is a special case, preserved exactly from the original
// implementation: every solver is initialized to the empty range [5,4],
// then solver N-1 alone is overwritten to [0,4] — the full 5-candidate
// search lands on a single solver while the rest stay idle but still
// receive their dock-info broadcast.
func Partition(length, solverCount int, table *auth.Table) ([]Range, error) {
	n, err := table.Len(length)
	if err != nil {
		return nil, err
	}

	ranges := make([]Range, solverCount)

	if length == 1 {
		for k := range ranges {
			ranges[k] = Range{Low: 5, High: 4}
		}
		ranges[solverCount-1] = Range{Low: 0, High: 4}
		return ranges, nil
	}

	r := n / solverCount
	for k := 0; k < solverCount-1; k++ {
		ranges[k] = Range{Low: k * r, High: (k+1)*r - 1}
	}
	ranges[solverCount-1] = Range{Low: (solverCount - 1) * r, High: n - 1}
	return ranges, nil
}
