// Package ports declares the boundaries the scheduler's domain and
// application layers depend on but do not implement: the validator
// channel, the per-solver channels, the shared-memory auth slots, and the
// arrivals buffer. Concrete transports live under internal/adapters/ipc.
package ports

import "github.com/acdtunes/portdock-scheduler/internal/domain/request"

// SolverLink is one dedicated channel to a single external solver.
// Workers never share a channel.
type SolverLink interface {
	SendDockInfo(dockID int) error
	SendGuess(dockID int, guess string) error
	RecvVerdict() (correct bool, err error)
}

// Batch describes a single new-batch message received from the
// validator.
type Batch struct {
	Timestep        int
	NumShipRequests int
	IsFinished      bool
}

// ValidatorLink is the scheduler's single channel to the external
// validator process.
type ValidatorLink interface {
	RecvBatch() (Batch, error)
	SendDock(dockID, shipID int, direction request.Direction) error
	SendUndock(dockID, shipID int, direction request.Direction) error
	SendCargo(dockID, shipID int, direction request.Direction, cargoID, craneID int) error
	SendAdvance() error
}

// ArrivalsSource reads the ship-request records the validator placed
// into the shared arrivals buffer for the current timestep.
type ArrivalsSource interface {
	ReadArrivals(count int) ([]*request.Ship, error)
}

// AuthMemory is the shared-memory segment's authString table: a fixed
// slot per dock, written at most once per search by its winning worker.
type AuthMemory interface {
	WriteAuthString(dockID int, s string) error
	ReadAuthString(dockID int) (string, error)
}
