package ipc

import (
	"github.com/acdtunes/portdock-scheduler/internal/domain/ports"
	"github.com/acdtunes/portdock-scheduler/internal/domain/request"
)

// MemorySolverLink is an in-process, single-goroutine-safe stand-in for a
// solver channel, driven by an injected verdict function — the same role
// an external solver process plays over the real socket transport.
type MemorySolverLink struct {
	DockInfoReceived []int
	Guesses          []SolverEnvelope
	Verdict          func(dockID int, guess string) bool
}

// NewMemorySolverLink constructs a solver stand-in that answers guesses
// against a single correct string.
func NewMemorySolverLink(correct string) *MemorySolverLink {
	return &MemorySolverLink{
		Verdict: func(_ int, guess string) bool { return guess == correct },
	}
}

func (m *MemorySolverLink) SendDockInfo(dockID int) error {
	m.DockInfoReceived = append(m.DockInfoReceived, dockID)
	return nil
}

func (m *MemorySolverLink) SendGuess(dockID int, guess string) error {
	m.Guesses = append(m.Guesses, SolverEnvelope{MType: MsgGuess, DockID: dockID, AuthGuess: guess})
	return nil
}

func (m *MemorySolverLink) RecvVerdict() (bool, error) {
	last := m.Guesses[len(m.Guesses)-1]
	correct := m.Verdict(last.DockID, last.AuthGuess)
	return correct, nil
}

// MemoryValidatorLink is an in-process validator stand-in, queueing
// outgoing events for assertion and replaying a scripted batch sequence.
type MemoryValidatorLink struct {
	Batches []ports.Batch
	next    int
	Sent    []ValidatorEnvelope
}

// NewMemoryValidatorLink constructs a validator stand-in that replays the
// given batch script in order, then returns isFinished=true forever.
func NewMemoryValidatorLink(batches ...ports.Batch) *MemoryValidatorLink {
	return &MemoryValidatorLink{Batches: batches}
}

func (m *MemoryValidatorLink) RecvBatch() (ports.Batch, error) {
	if m.next >= len(m.Batches) {
		return ports.Batch{IsFinished: true}, nil
	}
	b := m.Batches[m.next]
	m.next++
	return b, nil
}

func (m *MemoryValidatorLink) SendDock(dockID, shipID int, direction request.Direction) error {
	m.Sent = append(m.Sent, ValidatorEnvelope{MType: MsgDock, DockID: dockID, ShipID: shipID, Direction: int(direction)})
	return nil
}

func (m *MemoryValidatorLink) SendUndock(dockID, shipID int, direction request.Direction) error {
	m.Sent = append(m.Sent, ValidatorEnvelope{MType: MsgUndock, DockID: dockID, ShipID: shipID, Direction: int(direction)})
	return nil
}

func (m *MemoryValidatorLink) SendCargo(dockID, shipID int, direction request.Direction, cargoID, craneID int) error {
	m.Sent = append(m.Sent, ValidatorEnvelope{
		MType: MsgCargo, DockID: dockID, ShipID: shipID, Direction: int(direction), CargoID: cargoID, CraneID: craneID,
	})
	return nil
}

func (m *MemoryValidatorLink) SendAdvance() error {
	m.Sent = append(m.Sent, ValidatorEnvelope{MType: MsgAdvance})
	return nil
}

var (
	_ ports.SolverLink    = (*MemorySolverLink)(nil)
	_ ports.ValidatorLink = (*MemoryValidatorLink)(nil)
)
