package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acdtunes/portdock-scheduler/internal/domain/auth"
	"github.com/acdtunes/portdock-scheduler/internal/application/search"
)

func TestPartitionLengthOneSpecialCase(t *testing.T) {
	table := auth.NewTable()
	ranges, err := search.Partition(1, 4, table)
	require.NoError(t, err)
	require.Len(t, ranges, 4)

	for k := 0; k < 3; k++ {
		assert.True(t, ranges[k].Empty(), "solver %d expected empty range, got %+v", k, ranges[k])
	}
	assert.Equal(t, search.Range{Low: 0, High: 4}, ranges[3])
}

func TestPartitionGivesRemainderToLastSolver(t *testing.T) {
	table := auth.NewTable()
	ranges, err := search.Partition(3, 4, table) // cardinality 150
	require.NoError(t, err)
	require.Len(t, ranges, 4)

	assert.Equal(t, search.Range{Low: 0, High: 36}, ranges[0])
	assert.Equal(t, search.Range{Low: 37, High: 73}, ranges[1])
	assert.Equal(t, search.Range{Low: 74, High: 110}, ranges[2])
	assert.Equal(t, search.Range{Low: 111, High: 149}, ranges[3])
}

func TestPartitionCoversWholeSpaceWithoutGaps(t *testing.T) {
	table := auth.NewTable()
	n, _ := table.Len(3)
	ranges, err := search.Partition(3, 4, table)
	require.NoError(t, err)

	covered := make([]bool, n)
	for _, r := range ranges {
		for i := r.Low; i <= r.High; i++ {
			assert.False(t, covered[i], "index %d covered twice", i)
			covered[i] = true
		}
	}
	for i, c := range covered {
		assert.True(t, c, "index %d never covered", i)
	}
}

func TestPartitionSingleSolverTakesEverything(t *testing.T) {
	table := auth.NewTable()
	n, _ := table.Len(4)
	ranges, err := search.Partition(4, 1, table)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, search.Range{Low: 0, High: n - 1}, ranges[0])
}
