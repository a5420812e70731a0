package ipc

import (
	"sync"

	"github.com/acdtunes/portdock-scheduler/internal/domain/request"
	"github.com/acdtunes/portdock-scheduler/internal/domain/shared"
)

// MaxDocks and AuthSlotWidth mirror the wire contract's fixed
// shared-memory layout: a 30×100-byte authStrings matrix, one
// null-padded slot per dock.
const (
	MaxDocks      = 30
	AuthSlotWidth = 100
	MaxArrivals   = 100
)

// SharedMemory models the wire contract's shared-memory segment: the
// authStrings matrix and the newShipRequests arrivals buffer. A
// sync.RWMutex stands in for the real segment's inter-process visibility
// guarantees; Go's mutex unlock/lock pair already establishes the
// happens-before edge spec.md §5 describes as a "full memory fence"
// between the winning write and the message that follows it.
type SharedMemory struct {
	mu           sync.RWMutex
	authStrings  [MaxDocks][AuthSlotWidth]byte
	newArrivals  [MaxArrivals]ShipRequestRecord
	arrivalCount int
}

// NewSharedMemory constructs an empty shared-memory segment.
func NewSharedMemory() *SharedMemory {
	return &SharedMemory{}
}

// WriteAuthString zero-fills the dock's slot, then writes s into it. The
// slot is written by at most one winning search worker per berth.
func (s *SharedMemory) WriteAuthString(dockID int, str string) error {
	if dockID < 0 || dockID >= MaxDocks {
		return shared.NewIPCError("dock id out of shared-memory range")
	}
	if len(str) >= AuthSlotWidth {
		return shared.NewIPCError("auth string exceeds shared-memory slot width")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	slot := &s.authStrings[dockID]
	for i := range slot {
		slot[i] = 0
	}
	copy(slot[:], str)
	return nil
}

// ReadAuthString returns the null-padded slot for dockID as a Go string,
// trimmed at the first null byte.
func (s *SharedMemory) ReadAuthString(dockID int) (string, error) {
	if dockID < 0 || dockID >= MaxDocks {
		return "", shared.NewIPCError("dock id out of shared-memory range")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot := s.authStrings[dockID]
	for i, b := range slot {
		if b == 0 {
			return string(slot[:i]), nil
		}
	}
	return string(slot[:]), nil
}

// PutArrivals stages the validator's per-timestep arrivals batch into the
// shared buffer for ReadArrivals to drain.
func (s *SharedMemory) PutArrivals(records []ShipRequestRecord) error {
	if len(records) > MaxArrivals {
		return shared.NewIPCError("arrivals batch exceeds shared-memory buffer capacity")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arrivalCount = copy(s.newArrivals[:], records)
	return nil
}

// ReadArrivals copies count records out of the arrivals buffer and
// converts them into domain ship requests.
func (s *SharedMemory) ReadArrivals(count int) ([]*request.Ship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if count > s.arrivalCount {
		count = s.arrivalCount
	}
	ships := make([]*request.Ship, 0, count)
	for i := 0; i < count; i++ {
		rec := s.newArrivals[i]
		cargo := make([]int, rec.NumCargo)
		copy(cargo, rec.Cargo[:rec.NumCargo])
		ships = append(ships, &request.Ship{
			ID:              rec.ShipID,
			ArrivalTimestep: rec.Timestep,
			Category:        rec.Category,
			Direction:       request.Direction(rec.Direction),
			Emergency:       rec.Emergency,
			WaitingTime:     rec.WaitingTime,
			Cargo:           cargo,
		})
	}
	return ships, nil
}
