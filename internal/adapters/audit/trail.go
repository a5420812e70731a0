package audit

import (
	"gorm.io/gorm"

	"github.com/acdtunes/portdock-scheduler/internal/domain/request"
)

// Trail is the write-only audit sink the scheduler loop reports events
// to as they happen. A nil *Trail is valid and silently discards events,
// so audit logging can be disabled without branching at every call site.
type Trail struct {
	db    *gorm.DB
	runID string
}

// NewTrail constructs a Trail bound to a single scheduler run.
func NewTrail(db *gorm.DB, runID string) *Trail {
	return &Trail{db: db, runID: runID}
}

func (t *Trail) RecordDock(timestep, dockID, shipID int, direction request.Direction) error {
	if t == nil || t.db == nil {
		return nil
	}
	return t.db.Create(&DockEventModel{
		RunID: t.runID, Timestep: timestep, DockID: dockID, ShipID: shipID, Direction: int(direction),
	}).Error
}

func (t *Trail) RecordCargo(timestep, dockID, shipID, cargoID, craneID int) error {
	if t == nil || t.db == nil {
		return nil
	}
	return t.db.Create(&CargoEventModel{
		RunID: t.runID, Timestep: timestep, DockID: dockID, ShipID: shipID, CargoID: cargoID, CraneID: craneID,
	}).Error
}

func (t *Trail) RecordUndock(timestep, dockID, shipID int) error {
	if t == nil || t.db == nil {
		return nil
	}
	return t.db.Create(&UndockEventModel{
		RunID: t.runID, Timestep: timestep, DockID: dockID, ShipID: shipID,
	}).Error
}

func (t *Trail) RecordSearch(timestep, dockID, passwordLength, solverCount, winningSolver int) error {
	if t == nil || t.db == nil {
		return nil
	}
	return t.db.Create(&SearchEventModel{
		RunID: t.runID, Timestep: timestep, DockID: dockID, PasswordLength: passwordLength,
		SolverCount: solverCount, WinningSolver: winningSolver,
	}).Error
}
