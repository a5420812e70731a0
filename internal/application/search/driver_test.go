package search_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acdtunes/portdock-scheduler/internal/application/search"
	"github.com/acdtunes/portdock-scheduler/internal/domain/auth"
	"github.com/acdtunes/portdock-scheduler/internal/domain/ports"
)

// oracleSolverLink answers guesses against a single known-correct string,
// counting the guesses it was sent.
type oracleSolverLink struct {
	mu       sync.Mutex
	correct  string
	guesses  []string
	dockInfo []int
	lastGuess string
}

func (o *oracleSolverLink) SendDockInfo(dockID int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dockInfo = append(o.dockInfo, dockID)
	return nil
}

func (o *oracleSolverLink) SendGuess(dockID int, guess string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.guesses = append(o.guesses, guess)
	o.lastGuess = guess
	return nil
}

func (o *oracleSolverLink) RecvVerdict() (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastGuess == o.correct, nil
}

func (o *oracleSolverLink) guessCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.guesses)
}

func TestSearchFindsPlantedWinner(t *testing.T) {
	table := auth.NewTable()
	winner, err := table.At(3, 500%150) // length 3 cardinality is 150; pick a valid index
	require.NoError(t, err)

	links := make([]ports.SolverLink, 4)
	raw := make([]*oracleSolverLink, 4)
	for i := range links {
		raw[i] = &oracleSolverLink{correct: winner}
		links[i] = raw[i]
	}

	driver := search.NewDriver(table)

	var foundDockID int
	var foundGuess string
	onFound := func(dockID int, guess string) error {
		foundDockID = dockID
		foundGuess = guess
		return nil
	}

	result, err := driver.Search(7, 3, links, onFound)
	require.NoError(t, err)
	assert.Equal(t, winner, result.Winner)
	assert.Equal(t, 7, foundDockID)
	assert.Equal(t, winner, foundGuess)

	for _, l := range raw {
		assert.Len(t, l.dockInfo, 1, "every solver must receive a dock-info broadcast")
	}
}

func TestSearchLengthOneOnlyLastSolverGuesses(t *testing.T) {
	table := auth.NewTable()
	winner, err := table.At(1, 4)
	require.NoError(t, err)

	links := make([]ports.SolverLink, 3)
	raw := make([]*oracleSolverLink, 3)
	for i := range links {
		raw[i] = &oracleSolverLink{correct: winner}
		links[i] = raw[i]
	}

	driver := search.NewDriver(table)
	onFound := func(int, string) error { return nil }

	result, err := driver.Search(1, 1, links, onFound)
	require.NoError(t, err)
	assert.Equal(t, winner, result.Winner)

	assert.Zero(t, raw[0].guessCount())
	assert.Zero(t, raw[1].guessCount())
	assert.Greater(t, raw[2].guessCount(), 0)
}

func TestSearchClampsLengthsAboveTableSize(t *testing.T) {
	table := auth.NewTable()
	winner, err := table.At(auth.MaxLength, 0)
	require.NoError(t, err)

	links := []ports.SolverLink{&oracleSolverLink{correct: winner}}
	driver := search.NewDriver(table)

	result, err := driver.Search(1, 15, links, func(int, string) error { return nil })
	require.NoError(t, err)
	assert.True(t, result.Clamped)
	assert.Equal(t, auth.MaxLength, result.EffectiveLen)
}
