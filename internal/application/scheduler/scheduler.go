// Package scheduler drives the per-timestep loop that ties the queue
// store, dock table, undock queue, and parallel auth search together
// into the single-threaded outer loop spec.md §4.7 and §5 describe.
package scheduler

import (
	"errors"
	"log"
	"strconv"

	"github.com/acdtunes/portdock-scheduler/internal/adapters/audit"
	"github.com/acdtunes/portdock-scheduler/internal/application/search"
	"github.com/acdtunes/portdock-scheduler/internal/domain/auth"
	"github.com/acdtunes/portdock-scheduler/internal/domain/dock"
	"github.com/acdtunes/portdock-scheduler/internal/domain/ports"
	"github.com/acdtunes/portdock-scheduler/internal/domain/queue"
	"github.com/acdtunes/portdock-scheduler/internal/domain/request"
	"github.com/acdtunes/portdock-scheduler/internal/domain/shared"
)

// Metrics is the narrow slice of internal/adapters/metrics the scheduler
// calls into, kept as an interface so unit tests run without a global
// Prometheus registry. A nil Metrics is valid: every call site checks.
type Metrics interface {
	RecordDocked(dockID string)
	RecordCargoMoved(dockID string)
	RecordUndocked(dockID string)
	SetQueueDepth(class, category string, depth int)
	SetDockState(dockID string, state int)
}

// Dependencies bundles everything one scheduler run needs. Validator,
// Arrivals, and AuthMem are required; SolverLinks must have at least one
// entry; Trail and Metrics may be nil to disable those ambient concerns.
type Dependencies struct {
	Validator   ports.ValidatorLink
	Arrivals    ports.ArrivalsSource
	AuthMem     ports.AuthMemory
	SolverLinks []ports.SolverLink
	Docks       []*dock.Dock
	Trail       *audit.Trail
	Metrics     Metrics
	Clock       shared.Clock
}

// Scheduler owns one run's domain state and drives it to completion
// against a validator.
type Scheduler struct {
	validator   ports.ValidatorLink
	arrivals    ports.ArrivalsSource
	authMem     ports.AuthMemory
	solverLinks []ports.SolverLink
	docks       []*dock.Dock
	store       *queue.Store
	undock      *dock.UndockQueue
	driver      *search.Driver
	trail       *audit.Trail
	metrics     Metrics
	lifecycle   *shared.LifecycleStateMachine
	timestep    int
}

// New constructs a Scheduler ready to Run over the given precomputed
// candidate table, which a run typically builds once at startup with
// auth.NewTable() and shares read-only across every search.
func New(deps Dependencies, table *auth.Table) (*Scheduler, error) {
	if deps.Validator == nil || deps.Arrivals == nil || deps.AuthMem == nil {
		return nil, shared.NewValidationError("dependencies", "validator, arrivals, and auth memory are required")
	}
	if len(deps.SolverLinks) == 0 {
		return nil, shared.NewValidationError("dependencies", "at least one solver link is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Scheduler{
		validator:   deps.Validator,
		arrivals:    deps.Arrivals,
		authMem:     deps.AuthMem,
		solverLinks: deps.SolverLinks,
		docks:       deps.Docks,
		store:       queue.NewStore(),
		undock:      dock.NewUndockQueue(),
		driver:      search.NewDriver(table),
		trail:       deps.Trail,
		metrics:     deps.Metrics,
		lifecycle:   shared.NewLifecycleStateMachine(clock),
	}, nil
}

// Run executes the scheduler loop until the validator signals protocol
// termination or a fatal IPC error occurs. It returns nil on clean
// shutdown.
func (s *Scheduler) Run() error {
	if err := s.lifecycle.Start(); err != nil {
		return err
	}

	for {
		batch, err := s.validator.RecvBatch()
		if err != nil {
			var term *shared.ProtocolTerminationError
			if errors.As(err, &term) {
				return s.lifecycle.Complete()
			}
			_ = s.lifecycle.Fail(err)
			return err
		}
		if batch.IsFinished {
			return s.lifecycle.Complete()
		}

		if err := s.runTimestep(batch); err != nil {
			_ = s.lifecycle.Fail(err)
			return err
		}
	}
}

func (s *Scheduler) runTimestep(batch ports.Batch) error {
	s.timestep = batch.Timestep
	log.Printf("current timestep: %d", s.timestep)

	arrivals, err := s.arrivals.ReadArrivals(batch.NumShipRequests)
	if err != nil {
		return err
	}
	for _, ship := range arrivals {
		if err := s.store.Push(ship); err != nil {
			return err
		}
	}

	s.store.AgeExpiredAll(s.timestep)
	s.reportQueueDepths()

	for _, d := range s.docks {
		if err := s.advanceDock(d); err != nil {
			return err
		}
		s.reportDockState(d)
	}

	if err := s.undock.Drain(s.runSearch); err != nil {
		return err
	}

	return s.validator.SendAdvance()
}

// advanceDock performs exactly one state-machine transition for d,
// matching spec.md §9 Open Question (b): one action per dock per
// timestep, never more.
func (s *Scheduler) advanceDock(d *dock.Dock) error {
	switch d.Action {
	case dock.Idle:
		evt, err := d.DockShips(s.store, s.timestep)
		if err != nil {
			return err
		}
		if evt == nil {
			return nil
		}
		if s.metrics != nil {
			s.metrics.RecordDocked(dockLabel(evt.DockID))
		}
		if s.trail != nil {
			_ = s.trail.RecordDock(s.timestep, evt.DockID, evt.ShipID, evt.Direction)
		}
		return s.validator.SendDock(evt.DockID, evt.ShipID, evt.Direction)

	case dock.Moving:
		events, err := d.HandleCargo()
		if err != nil {
			return err
		}
		for _, evt := range events {
			if s.metrics != nil {
				s.metrics.RecordCargoMoved(dockLabel(evt.DockID))
			}
			if s.trail != nil {
				_ = s.trail.RecordCargo(s.timestep, evt.DockID, evt.ShipID, evt.CargoID, evt.CraneID)
			}
			if err := s.validator.SendCargo(evt.DockID, evt.ShipID, evt.Direction, evt.CargoID, evt.CraneID); err != nil {
				return err
			}
		}
		return nil

	case dock.Finished:
		length, err := d.EnqueueUndock(s.timestep)
		if err != nil {
			return err
		}
		log.Printf("dock %d finished, password length %d", d.ID, length)
		s.undock.Push(dock.UndockEntry{DockID: d.ID, PasswordLength: length})
		return nil

	case dock.AwaitingUndock:
		return nil

	default:
		return shared.NewInvalidDockActionError("unknown dock action")
	}
}

// runSearch runs the parallel auth search for one drained undock entry,
// wiring the driver's OnFound callback to shared memory, the validator's
// undock message, and the dock's own CompleteUndock transition — in
// that order, matching spec.md §4.6's single-writer sequence.
func (s *Scheduler) runSearch(entry dock.UndockEntry) error {
	d := s.findDock(entry.DockID)
	if d == nil {
		return shared.NewDockNotIdleError(entry.DockID)
	}

	onFound := func(dockID int, guess string) error {
		if err := s.authMem.WriteAuthString(dockID, guess); err != nil {
			return err
		}
		if err := s.validator.SendUndock(dockID, d.Ship.ID, d.Ship.Direction); err != nil {
			return err
		}
		evt, err := d.CompleteUndock()
		if err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.RecordUndocked(dockLabel(evt.DockID))
		}
		if s.trail != nil {
			_ = s.trail.RecordUndock(s.timestep, evt.DockID, evt.ShipID)
		}
		log.Printf("undocking ship at dock %d with password length %d", dockID, entry.PasswordLength)
		return nil
	}

	result, err := s.driver.Search(entry.DockID, entry.PasswordLength, s.solverLinks, onFound)
	if err != nil {
		return err
	}
	if s.trail != nil {
		_ = s.trail.RecordSearch(s.timestep, entry.DockID, result.EffectiveLen, len(s.solverLinks), result.WinningSolver)
	}
	if result.Clamped {
		log.Printf("dock %d: auth length %d exceeds table size, clamped to %d", entry.DockID, entry.PasswordLength, result.EffectiveLen)
	}
	return nil
}

func (s *Scheduler) findDock(id int) *dock.Dock {
	for _, d := range s.docks {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (s *Scheduler) reportQueueDepths() {
	if s.metrics == nil {
		return
	}
	for cat := 0; cat <= request.MaxCategory; cat++ {
		for class := queue.Emergency; class <= queue.Outgoing; class++ {
			s.metrics.SetQueueDepth(class.String(), categoryLabel(cat), s.store.Depth(class, cat))
		}
	}
}

func (s *Scheduler) reportDockState(d *dock.Dock) {
	if s.metrics == nil {
		return
	}
	s.metrics.SetDockState(dockLabel(d.ID), int(d.Action))
}

func dockLabel(id int) string    { return strconv.Itoa(id) }
func categoryLabel(c int) string { return strconv.Itoa(c) }
