package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/acdtunes/portdock-scheduler/internal/domain/dock"
	"github.com/acdtunes/portdock-scheduler/internal/domain/queue"
	"github.com/acdtunes/portdock-scheduler/internal/domain/request"
)

// dockContext holds the state one docking/cargo scenario operates on.
type dockContext struct {
	store       *queue.Store
	dock        *dock.Dock
	shipsByID   map[string]*request.Ship
	admittedID  int
	liftedCrane map[int]int // craneID -> cargoID
	timestep    int
}

func (dc *dockContext) reset() {
	dc.store = queue.NewStore()
	dc.dock = nil
	dc.shipsByID = make(map[string]*request.Ship)
	dc.admittedID = 0
	dc.liftedCrane = make(map[int]int)
	dc.timestep = 0
}

func parseIntList(csv string) []int {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, _ := strconv.Atoi(strings.TrimSpace(p))
		out[i] = v
	}
	return out
}

func (dc *dockContext) aDockWithCategoryAndCraneCapacities(category int, cranes string) error {
	dc.dock = dock.New(1, category, parseIntList(cranes))
	return nil
}

func (dc *dockContext) nextShipID() int {
	return len(dc.shipsByID) + 1
}

func (dc *dockContext) aShipOfCategoryDirectionWithCargoWeights(id string, category int, direction string, cargo string) error {
	return dc.makeShip(id, category, direction, false, 0, 0, parseIntList(cargo))
}

func (dc *dockContext) aShipOfCategoryDirectionWithNoCargo(id string, category int, direction string) error {
	return dc.makeShip(id, category, direction, false, 0, 0, nil)
}

func (dc *dockContext) anEmergencyShipOfCategoryDirectionWithNoCargo(id string, category int, direction string) error {
	return dc.makeShip(id, category, direction, true, 0, 0, nil)
}

func (dc *dockContext) aShipOfCategoryDirectionArrivingAtTimestepWithWaitingTimeWithNoCargo(id string, category int, direction string, arrival, waiting int) error {
	return dc.makeShip(id, category, direction, false, arrival, waiting, nil)
}

func (dc *dockContext) makeShip(id string, category int, direction string, emergency bool, arrival, waiting int, cargo []int) error {
	n := dc.nextShipID()
	dir := request.Incoming
	if direction == "outgoing" {
		dir = request.Outgoing
	}
	ship := &request.Ship{
		ID:              n,
		ArrivalTimestep: arrival,
		Category:        category,
		Direction:       dir,
		Emergency:       emergency,
		WaitingTime:     waiting,
		Cargo:           cargo,
	}
	dc.shipsByID[id] = ship
	return nil
}

func (dc *dockContext) theShipArrivesAtTimestep(timestep int) error {
	dc.timestep = timestep
	for _, ship := range dc.shipsByID {
		if err := dc.store.Push(ship); err != nil {
			return err
		}
	}
	return nil
}

func (dc *dockContext) bothShipsArriveAtTimestep(timestep int) error {
	return dc.theShipArrivesAtTimestep(timestep)
}

func (dc *dockContext) theQueueAgesThroughTimestep(timestep int) error {
	dc.timestep = timestep
	dc.store.AgeExpiredAll(timestep)
	return nil
}

func (dc *dockContext) theSchedulerAdvancesTheDock() error {
	switch dc.dock.Action {
	case dock.Idle:
		evt, err := dc.dock.DockShips(dc.store, dc.timestep)
		if err != nil {
			return err
		}
		if evt != nil {
			dc.admittedID = evt.ShipID
		}
		return nil
	case dock.Moving:
		events, err := dc.dock.HandleCargo()
		if err != nil {
			return err
		}
		for _, evt := range events {
			dc.liftedCrane[evt.CraneID] = evt.CargoID
		}
		return nil
	default:
		return fmt.Errorf("no defined advance for dock action %v", dc.dock.Action)
	}
}

func (dc *dockContext) theDockActionShouldBe(action string) error {
	want := map[string]dock.Action{
		"idle": dock.Idle, "moving": dock.Moving, "finished": dock.Finished, "awaiting_undock": dock.AwaitingUndock,
	}[action]
	if dc.dock.Action != want {
		return fmt.Errorf("expected dock action %q, got %v", action, dc.dock.Action)
	}
	return nil
}

func (dc *dockContext) craneShouldHaveLiftedCargoEntry(craneID, cargoID int) error {
	got, ok := dc.liftedCrane[craneID]
	if !ok {
		return fmt.Errorf("crane %d never lifted anything", craneID)
	}
	if got != cargoID {
		return fmt.Errorf("crane %d lifted cargo %d, expected %d", craneID, got, cargoID)
	}
	return nil
}

func (dc *dockContext) theDockShouldHaveAdmittedShip(id string) error {
	want := dc.shipsByID[id]
	if want == nil {
		return fmt.Errorf("no such ship %q defined", id)
	}
	if dc.admittedID != want.ID {
		return fmt.Errorf("expected dock to admit ship %q (id %d), admitted id %d", id, want.ID, dc.admittedID)
	}
	return nil
}

func (dc *dockContext) theDockShouldNotHaveAdmittedAnyShip() error {
	if dc.admittedID != 0 {
		return fmt.Errorf("expected no admission, but ship id %d was admitted", dc.admittedID)
	}
	return nil
}

// InitializeDockScenario registers the docking and cargo step definitions.
func InitializeDockScenario(ctx *godog.ScenarioContext) {
	dc := &dockContext{}

	ctx.Before(func(goCtx context.Context, sc *godog.Scenario) (context.Context, error) {
		dc.reset()
		return goCtx, nil
	})

	ctx.Step(`^a dock with category (\d+) and crane capacities "([^"]*)"$`, dc.aDockWithCategoryAndCraneCapacities)
	ctx.Step(`^a ship "([^"]*)" of category (\d+), direction (\w+), with cargo weights "([^"]*)"$`, dc.aShipOfCategoryDirectionWithCargoWeights)
	ctx.Step(`^a ship "([^"]*)" of category (\d+), direction (\w+), with no cargo$`, dc.aShipOfCategoryDirectionWithNoCargo)
	ctx.Step(`^an emergency ship "([^"]*)" of category (\d+), direction (\w+), with no cargo$`, dc.anEmergencyShipOfCategoryDirectionWithNoCargo)
	ctx.Step(`^a ship "([^"]*)" of category (\d+), direction (\w+), arriving at timestep (\d+) with waiting time (\d+), with no cargo$`, dc.aShipOfCategoryDirectionArrivingAtTimestepWithWaitingTimeWithNoCargo)
	ctx.Step(`^the ship arrives at timestep (\d+)$`, dc.theShipArrivesAtTimestep)
	ctx.Step(`^both ships arrive at timestep (\d+)$`, dc.bothShipsArriveAtTimestep)
	ctx.Step(`^the queue ages through timestep (\d+)$`, dc.theQueueAgesThroughTimestep)
	ctx.Step(`^the scheduler advances the dock$`, dc.theSchedulerAdvancesTheDock)
	ctx.Step(`^the dock action should be "([^"]*)"$`, dc.theDockActionShouldBe)
	ctx.Step(`^crane (\d+) should have lifted cargo entry (\d+)$`, dc.craneShouldHaveLiftedCargoEntry)
	ctx.Step(`^the dock should have admitted ship "([^"]*)"$`, dc.theDockShouldHaveAdmittedShip)
	ctx.Step(`^the dock should not have admitted any ship$`, dc.theDockShouldNotHaveAdmittedAnyShip)
}
