// Package audit writes an append-only observability trail of docking,
// cargo, undocking, and search events. It is never read back by the
// scheduler — it exists purely for post-incident analysis, the way the
// teacher's persistence layer backs its container run history.
package audit

import "time"

// DockEventModel records a single ship admission.
type DockEventModel struct {
	ID        uint `gorm:"primaryKey"`
	RunID     string
	Timestep  int
	DockID    int
	ShipID    int
	Direction int
	CreatedAt time.Time
}

// CargoEventModel records a single crane lift.
type CargoEventModel struct {
	ID        uint `gorm:"primaryKey"`
	RunID     string
	Timestep  int
	DockID    int
	ShipID    int
	CargoID   int
	CraneID   int
	CreatedAt time.Time
}

// UndockEventModel records a completed berth departure.
type UndockEventModel struct {
	ID        uint `gorm:"primaryKey"`
	RunID     string
	Timestep  int
	DockID    int
	ShipID    int
	CreatedAt time.Time
}

// SearchEventModel records one completed auth search.
type SearchEventModel struct {
	ID             uint `gorm:"primaryKey"`
	RunID          string
	Timestep       int
	DockID         int
	PasswordLength int
	SolverCount    int
	WinningSolver  int
	CreatedAt      time.Time
}
