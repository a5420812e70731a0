package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acdtunes/portdock-scheduler/internal/adapters/ipc"
	"github.com/acdtunes/portdock-scheduler/internal/application/scheduler"
	"github.com/acdtunes/portdock-scheduler/internal/domain/auth"
	"github.com/acdtunes/portdock-scheduler/internal/domain/dock"
	"github.com/acdtunes/portdock-scheduler/internal/domain/ports"
)

// TestSchedulerSingleShipSingleCargoLifecycle drives one ship through
// docking, a single crane lift, and a length-1 auth search to undocking,
// end to end, over the in-memory transport.
func TestSchedulerSingleShipSingleCargoLifecycle(t *testing.T) {
	table := auth.NewTable()
	winner, err := table.At(1, 2)
	require.NoError(t, err)

	shm := ipc.NewSharedMemory()
	require.NoError(t, shm.PutArrivals([]ipc.ShipRequestRecord{
		{ShipID: 42, Timestep: 0, Category: 1, Direction: 1, WaitingTime: 5, NumCargo: 1, Cargo: cargoArray(5)},
	}))

	validator := ipc.NewMemoryValidatorLink(
		ports.Batch{Timestep: 0, NumShipRequests: 1},
		ports.Batch{Timestep: 1, NumShipRequests: 0},
		ports.Batch{Timestep: 2, NumShipRequests: 0},
	)
	solver := ipc.NewMemorySolverLink(winner)

	d := dock.New(1, 1, []int{10})

	s, err := scheduler.New(scheduler.Dependencies{
		Validator:   validator,
		Arrivals:    shm,
		AuthMem:     shm,
		SolverLinks: []ports.SolverLink{solver},
		Docks:       []*dock.Dock{d},
	}, table)
	require.NoError(t, err)

	require.NoError(t, s.Run())

	require.Len(t, validator.Sent, 6)
	assert.Equal(t, ipc.MsgDock, validator.Sent[0].MType)
	assert.Equal(t, ipc.MsgAdvance, validator.Sent[1].MType)
	assert.Equal(t, ipc.MsgCargo, validator.Sent[2].MType)
	assert.Equal(t, ipc.MsgAdvance, validator.Sent[3].MType)
	assert.Equal(t, ipc.MsgUndock, validator.Sent[4].MType)
	assert.Equal(t, ipc.MsgAdvance, validator.Sent[5].MType)
	assert.Equal(t, 42, validator.Sent[4].ShipID)

	got, err := shm.ReadAuthString(1)
	require.NoError(t, err)
	assert.Equal(t, winner, got)

	assert.Equal(t, dock.Idle, d.Action)
}

func cargoArray(weights ...int) [200]int {
	var arr [200]int
	copy(arr[:], weights)
	return arr
}
