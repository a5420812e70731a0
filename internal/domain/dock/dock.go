// Package dock models a single berth's state machine — idle, moving
// cargo, finished, and (via the undock queue) awaiting its auth search —
// together with the docking-selection and crane-assignment algorithms
// that drive its transitions.
package dock

import (
	"github.com/acdtunes/portdock-scheduler/internal/domain/queue"
	"github.com/acdtunes/portdock-scheduler/internal/domain/request"
	"github.com/acdtunes/portdock-scheduler/internal/domain/shared"
)

// Action is the dock's phase within the current berth occupancy.
type Action int

const (
	Idle Action = iota
	Moving
	Finished
	// AwaitingUndock is the scheduler-internal bookkeeping state for a
	// dock whose entry already sits in the undock queue. It is not part
	// of the wire protocol — externally it is represented purely by the
	// dock's presence in the undock queue (spec.md §4.2).
	AwaitingUndock
)

// priorityClasses is the fixed scan order for docking selection:
// emergency first, then incoming, then outgoing.
var priorityClasses = [...]queue.Class{queue.Emergency, queue.Incoming, queue.Outgoing}

// Dock is a single berth: its category, crane capacities (one crane per
// index, count always equal to category per the testcase wire format),
// and its current occupant, if any.
type Dock struct {
	ID              int
	Category        int
	CraneCapacities []int

	Action     Action
	Ship       *request.Ship
	DockedTime int
	MovedCargo int
}

// New constructs an idle dock.
func New(id, category int, craneCapacities []int) *Dock {
	return &Dock{ID: id, Category: category, CraneCapacities: craneCapacities, Action: Idle}
}

// DockedEvent is emitted when DockShips admits a ship.
type DockedEvent struct {
	DockID    int
	ShipID    int
	Direction request.Direction
}

// CargoMovedEvent is emitted once per cargo lift.
type CargoMovedEvent struct {
	DockID    int
	ShipID    int
	Direction request.Direction
	CargoID   int
	CraneID   int
}

// UndockedEvent is emitted when a winning auth search completes a berth.
type UndockedEvent struct {
	DockID    int
	ShipID    int
	Direction request.Direction
}

// DockShips attempts to admit a ship into an idle dock. It scans
// emergency, then incoming, then outgoing classes; within each class it
// scans categories from the dock's own category downward to 0, taking the
// head of the first non-empty category queue. A larger dock accepts any
// smaller-or-equal category ship, and scanning downward from its own
// category prefers the largest ship it can take, maximizing crane
// utilization on this berth.
func (d *Dock) DockShips(store *queue.Store, currentTimestep int) (*DockedEvent, error) {
	if d.Action != Idle {
		return nil, shared.NewDockNotIdleError(d.ID)
	}

	for _, class := range priorityClasses {
		for cat := d.Category; cat >= 0; cat-- {
			ship, ok := store.PeekEligible(class, cat, currentTimestep)
			if !ok {
				continue
			}
			store.PopEligible(class, cat)

			d.Ship = ship
			d.DockedTime = currentTimestep
			d.MovedCargo = 0
			d.Action = Moving
			return &DockedEvent{DockID: d.ID, ShipID: ship.ID, Direction: ship.Direction}, nil
		}
	}
	return nil, nil
}

// HandleCargo advances a moving dock by one timestep of crane assignment.
// Each crane, in index order, lifts the heaviest cargo entry it can carry
// (largest weight not exceeding its capacity, ties broken toward the
// earliest cargo index); at most one lift per crane per call. If every
// cargo entry has been moved — including trivially, for a ship admitted
// with zero cargo — the dock transitions to Finished and movedCargo
// resets to zero.
func (d *Dock) HandleCargo() ([]CargoMovedEvent, error) {
	if d.Action != Moving {
		return nil, shared.NewInvalidDockActionError("handle_cargo called on a dock that is not moving")
	}

	ship := d.Ship
	if d.MovedCargo == ship.NumCargo() {
		d.Action = Finished
		d.MovedCargo = 0
		return nil, nil
	}

	var events []CargoMovedEvent
	for craneID, capacity := range d.CraneCapacities {
		bestIdx := -1
		bestWeight := -1
		for j, w := range ship.Cargo {
			if w == request.MovedSentinel {
				continue
			}
			if w <= capacity && w > bestWeight {
				bestWeight = w
				bestIdx = j
			}
		}
		if bestIdx == -1 {
			continue
		}

		ship.Cargo[bestIdx] = request.MovedSentinel
		d.MovedCargo++
		events = append(events, CargoMovedEvent{
			DockID:    d.ID,
			ShipID:    ship.ID,
			Direction: ship.Direction,
			CargoID:   bestIdx,
			CraneID:   craneID,
		})

		if d.MovedCargo == ship.NumCargo() {
			d.Action = Finished
			d.MovedCargo = 0
			break
		}
	}
	return events, nil
}

// EnqueueUndock transitions a finished dock into the awaiting-undock
// state and returns the password length the validator expects: the
// number of full timesteps the ship occupied the berth, minus one.
func (d *Dock) EnqueueUndock(currentTimestep int) (passwordLength int, err error) {
	if d.Action != Finished {
		return 0, shared.NewInvalidDockActionError("enqueue_undock called on a dock that is not finished")
	}
	d.Action = AwaitingUndock
	return currentTimestep - d.DockedTime - 1, nil
}

// CompleteUndock returns a dock to idle once its auth search has
// succeeded, emitting the undocking event.
func (d *Dock) CompleteUndock() (*UndockedEvent, error) {
	if d.Action != AwaitingUndock {
		return nil, shared.NewInvalidDockActionError("complete_undock called on a dock that is not awaiting undock")
	}
	evt := &UndockedEvent{DockID: d.ID, ShipID: d.Ship.ID, Direction: d.Ship.Direction}
	d.Ship = nil
	d.Action = Idle
	d.MovedCargo = 0
	return evt, nil
}
