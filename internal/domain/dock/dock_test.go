package dock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acdtunes/portdock-scheduler/internal/domain/dock"
	"github.com/acdtunes/portdock-scheduler/internal/domain/queue"
	"github.com/acdtunes/portdock-scheduler/internal/domain/request"
)

// Scenario 1: single dock, single cargo.
func TestSingleDockSingleCargoLifecycle(t *testing.T) {
	store := queue.NewStore()
	require.NoError(t, store.Push(&request.Ship{ID: 1, Category: 0, Direction: request.Incoming, Cargo: []int{7}}))

	d := dock.New(1, 1, []int{10})

	evt, err := d.DockShips(store, 0)
	require.NoError(t, err)
	require.NotNil(t, evt)
	assert.Equal(t, dock.Moving, d.Action)

	events, err := d.HandleCargo()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, dock.Finished, d.Action)

	passwordLength, err := d.EnqueueUndock(2)
	require.NoError(t, err)
	assert.Equal(t, 1, passwordLength)
	assert.Equal(t, dock.AwaitingUndock, d.Action)
}

// Scenario 2: aging — a ship whose waiting time lapses is never docked.
func TestAgingPreventsLateDocking(t *testing.T) {
	store := queue.NewStore()
	require.NoError(t, store.Push(&request.Ship{ID: 1, Category: 0, Direction: request.Incoming, ArrivalTimestep: 0, WaitingTime: 2}))

	d := dock.New(1, 0, nil)
	for ts := 0; ts <= 3; ts++ {
		store.AgeExpiredAll(ts)
		// dock never frees up in this scenario: skip DockShips entirely
	}
	_, ok := store.PeekEligible(queue.Incoming, 0, 3)
	assert.False(t, ok)
	assert.Equal(t, dock.Idle, d.Action)
}

// Scenario 3: emergency priority over a higher (but non-emergency) category.
func TestEmergencyPriorityOverIncoming(t *testing.T) {
	store := queue.NewStore()
	require.NoError(t, store.Push(&request.Ship{ID: 1, Category: 1, Direction: request.Incoming, Emergency: true}))
	require.NoError(t, store.Push(&request.Ship{ID: 2, Category: 2, Direction: request.Incoming}))

	d := dock.New(1, 2, []int{1, 1})
	evt, err := d.DockShips(store, 0)
	require.NoError(t, err)
	require.NotNil(t, evt)
	assert.Equal(t, 1, evt.ShipID)
}

// Scenario 4: category preference downward.
func TestCategoryPreferenceScansDownward(t *testing.T) {
	store := queue.NewStore()
	require.NoError(t, store.Push(&request.Ship{ID: 1, Category: 3, Direction: request.Incoming}))
	require.NoError(t, store.Push(&request.Ship{ID: 2, Category: 1, Direction: request.Incoming}))

	d := dock.New(1, 3, []int{1, 1, 1})
	evt, err := d.DockShips(store, 0)
	require.NoError(t, err)
	require.NotNil(t, evt)
	assert.Equal(t, 1, evt.ShipID)
}

// Scenario 5: multi-crane greedy assignment in a single timestep.
func TestMultiCraneGreedyAssignsAllInOneTimestep(t *testing.T) {
	store := queue.NewStore()
	require.NoError(t, store.Push(&request.Ship{ID: 1, Category: 3, Direction: request.Incoming, Cargo: []int{9, 6, 4}}))

	d := dock.New(1, 3, []int{5, 8, 10})
	_, err := d.DockShips(store, 0)
	require.NoError(t, err)

	events, err := d.HandleCargo()
	require.NoError(t, err)
	require.Len(t, events, 3)

	byCrane := map[int]int{}
	for _, e := range events {
		byCrane[e.CraneID] = e.CargoID
	}
	assert.Equal(t, 2, byCrane[0]) // crane 0 cap 5 -> cargo index 2 (weight 4)
	assert.Equal(t, 1, byCrane[1]) // crane 1 cap 8 -> cargo index 1 (weight 6)
	assert.Equal(t, 0, byCrane[2]) // crane 2 cap 10 -> cargo index 0 (weight 9)
	assert.Equal(t, dock.Finished, d.Action)
}

// Boundary: dock with category 0 only accepts category-0 ships.
func TestCategoryZeroDockOnlyAcceptsCategoryZero(t *testing.T) {
	store := queue.NewStore()
	require.NoError(t, store.Push(&request.Ship{ID: 1, Category: 1, Direction: request.Incoming}))

	d := dock.New(1, 0, nil)
	evt, err := d.DockShips(store, 0)
	require.NoError(t, err)
	assert.Nil(t, evt)
}

// Boundary: zero-cargo ship finishes on its first handle_cargo visit.
func TestZeroCargoShipFinishesImmediately(t *testing.T) {
	store := queue.NewStore()
	require.NoError(t, store.Push(&request.Ship{ID: 1, Category: 1, Direction: request.Incoming}))

	d := dock.New(1, 1, []int{5})
	_, err := d.DockShips(store, 0)
	require.NoError(t, err)

	events, err := d.HandleCargo()
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, dock.Finished, d.Action)
}

func TestHandleCargoRejectsNonMovingDock(t *testing.T) {
	d := dock.New(1, 1, []int{5})
	_, err := d.HandleCargo()
	assert.Error(t, err)
}

func TestDockShipsRejectsNonIdleDock(t *testing.T) {
	store := queue.NewStore()
	require.NoError(t, store.Push(&request.Ship{ID: 1, Category: 0, Direction: request.Incoming}))
	d := dock.New(1, 0, nil)
	_, err := d.DockShips(store, 0)
	require.NoError(t, err)

	_, err = d.DockShips(store, 1)
	assert.Error(t, err)
}
