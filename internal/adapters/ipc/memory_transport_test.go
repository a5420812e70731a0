package ipc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acdtunes/portdock-scheduler/internal/adapters/ipc"
	"github.com/acdtunes/portdock-scheduler/internal/domain/ports"
	"github.com/acdtunes/portdock-scheduler/internal/domain/request"
)

func TestMemorySolverLinkScriptedVerdict(t *testing.T) {
	link := ipc.NewMemorySolverLink("59.")

	require.NoError(t, link.SendDockInfo(4))
	require.NoError(t, link.SendGuess(4, "55555"))
	ok, err := link.RecvVerdict()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, link.SendGuess(4, "59."))
	ok, err = link.RecvVerdict()
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, []int{4}, link.DockInfoReceived)
	assert.Len(t, link.Guesses, 2)
}

func TestMemoryValidatorLinkReplaysBatchesThenFinishes(t *testing.T) {
	link := ipc.NewMemoryValidatorLink(
		ports.Batch{Timestep: 0, NumShipRequests: 2},
		ports.Batch{Timestep: 1, NumShipRequests: 0},
	)

	b0, err := link.RecvBatch()
	require.NoError(t, err)
	assert.Equal(t, 0, b0.Timestep)
	assert.False(t, b0.IsFinished)

	b1, err := link.RecvBatch()
	require.NoError(t, err)
	assert.Equal(t, 1, b1.Timestep)

	b2, err := link.RecvBatch()
	require.NoError(t, err)
	assert.True(t, b2.IsFinished)

	require.NoError(t, link.SendDock(1, 7, request.Incoming))
	require.NoError(t, link.SendCargo(1, 7, request.Incoming, 3, 0))
	require.NoError(t, link.SendUndock(1, 7, request.Incoming))
	require.NoError(t, link.SendAdvance())
	assert.Len(t, link.Sent, 4)
}
