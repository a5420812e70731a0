package ipc

import (
	"encoding/gob"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/acdtunes/portdock-scheduler/internal/domain/ports"
	"github.com/acdtunes/portdock-scheduler/internal/domain/request"
	"github.com/acdtunes/portdock-scheduler/internal/domain/shared"
)

// frameConn carries gob-encoded envelopes over a Unix domain socket
// connection — the teacher's net.Listen("unix", ...) daemon transport,
// substituting gob for the generated protobuf stubs the corpus never
// checked in. gob's own stream encoding already delimits one value per
// Encode/Decode call, so no additional length framing is needed.
type frameConn struct {
	conn net.Conn
	enc  *gob.Encoder
	dec  *gob.Decoder
}

func newFrameConn(conn net.Conn) *frameConn {
	return &frameConn{conn: conn, enc: gob.NewEncoder(conn), dec: gob.NewDecoder(conn)}
}

func (f *frameConn) send(v interface{}) error {
	return f.enc.Encode(v)
}

func (f *frameConn) recv(v interface{}) error {
	return f.dec.Decode(v)
}

// SocketValidatorLink is the Unix-domain-socket realization of
// ports.ValidatorLink.
type SocketValidatorLink struct{ conn *frameConn }

// DialValidator connects to the validator's Unix domain socket.
func DialValidator(socketPath string) (*SocketValidatorLink, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial validator socket: %w", err)
	}
	return &SocketValidatorLink{conn: newFrameConn(conn)}, nil
}

func (s *SocketValidatorLink) Close() error { return s.conn.conn.Close() }

func (s *SocketValidatorLink) RecvBatch() (ports.Batch, error) {
	var env ValidatorEnvelope
	if err := s.conn.recv(&env); err != nil {
		if err == io.EOF {
			return ports.Batch{}, shared.NewProtocolTerminationError()
		}
		return ports.Batch{}, shared.NewIPCError("receive from validator: " + err.Error())
	}
	return ports.Batch{Timestep: env.Timestep, NumShipRequests: env.NumShipRequests, IsFinished: env.IsFinished}, nil
}

func (s *SocketValidatorLink) SendDock(dockID, shipID int, direction request.Direction) error {
	return s.conn.send(ValidatorEnvelope{MType: MsgDock, DockID: dockID, ShipID: shipID, Direction: int(direction)})
}

func (s *SocketValidatorLink) SendUndock(dockID, shipID int, direction request.Direction) error {
	return s.conn.send(ValidatorEnvelope{MType: MsgUndock, DockID: dockID, ShipID: shipID, Direction: int(direction)})
}

func (s *SocketValidatorLink) SendCargo(dockID, shipID int, direction request.Direction, cargoID, craneID int) error {
	return s.conn.send(ValidatorEnvelope{
		MType: MsgCargo, DockID: dockID, ShipID: shipID, Direction: int(direction), CargoID: cargoID, CraneID: craneID,
	})
}

func (s *SocketValidatorLink) SendAdvance() error {
	return s.conn.send(ValidatorEnvelope{MType: MsgAdvance})
}

// SocketSolverLink is the Unix-domain-socket realization of
// ports.SolverLink.
type SocketSolverLink struct{ conn *frameConn }

// DialSolver connects to one solver's Unix domain socket.
func DialSolver(socketPath string) (*SocketSolverLink, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial solver socket: %w", err)
	}
	return &SocketSolverLink{conn: newFrameConn(conn)}, nil
}

func (s *SocketSolverLink) Close() error { return s.conn.conn.Close() }

func (s *SocketSolverLink) SendDockInfo(dockID int) error {
	return s.conn.send(SolverEnvelope{MType: MsgDockInfo, DockID: dockID})
}

func (s *SocketSolverLink) SendGuess(dockID int, guess string) error {
	return s.conn.send(SolverEnvelope{MType: MsgGuess, DockID: dockID, AuthGuess: guess})
}

func (s *SocketSolverLink) RecvVerdict() (bool, error) {
	var env SolverEnvelope
	if err := s.conn.recv(&env); err != nil {
		return false, shared.NewIPCError("receive verdict: " + err.Error())
	}
	return env.GuessIsCorrect, nil
}

// ListenUnix creates a Unix domain socket listener at path, removing any
// stale socket file left behind by a crashed previous run, and
// restricting permissions to the owner.
func ListenUnix(path string) (net.Listener, error) {
	_ = os.Remove(path)
	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", path, err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		return nil, fmt.Errorf("chmod %s: %w", path, err)
	}
	return l, nil
}

var (
	_ ports.ValidatorLink = (*SocketValidatorLink)(nil)
	_ ports.SolverLink    = (*SocketSolverLink)(nil)
)
