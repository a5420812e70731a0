// Package ipc implements the wire-level schemas spec.md §6 describes for
// the validator channel, the per-solver channels, the testcase input
// file, and the shared-memory segment, plus two concrete transports: a
// Unix-domain-socket transport framing gob-encoded envelopes (grounded on
// the teacher's net.Listen("unix", ...) daemon pattern, substituting gob
// for the teacher's unavailable generated protobuf stubs), and an
// in-memory, channel-backed transport used by tests and the BDD suite.
package ipc

// ValidatorMsgType enumerates the validator channel's message kinds.
type ValidatorMsgType int

const (
	MsgNewBatch ValidatorMsgType = 1
	MsgDock     ValidatorMsgType = 2
	MsgUndock   ValidatorMsgType = 3
	MsgCargo    ValidatorMsgType = 4
	MsgAdvance  ValidatorMsgType = 5
)

// ValidatorEnvelope is the validator channel's message envelope:
// (mtype, timestep, shipId, direction, dockId, cargoId, isFinished,
// union{numShipRequests, craneId}).
type ValidatorEnvelope struct {
	MType           ValidatorMsgType
	Timestep        int
	ShipID          int
	Direction       int
	DockID          int
	CargoID         int
	IsFinished      bool
	NumShipRequests int
	CraneID         int
}

// SolverMsgType enumerates the solver channel's message kinds.
type SolverMsgType int

const (
	MsgDockInfo SolverMsgType = 1
	MsgGuess    SolverMsgType = 2
	MsgVerdict  SolverMsgType = 3
)

// SolverEnvelope is a single solver channel's message envelope.
type SolverEnvelope struct {
	MType          SolverMsgType
	DockID         int
	AuthGuess      string
	GuessIsCorrect bool
}

// ShipRequestRecord is the fixed-width wire record for one arrivals-buffer
// entry: (shipId, timestep, category, direction, emergency, waitingTime,
// numCargo, cargo[200]).
type ShipRequestRecord struct {
	ShipID      int
	Timestep    int
	Category    int
	Direction   int
	Emergency   bool
	WaitingTime int
	NumCargo    int
	Cargo       [200]int
}
