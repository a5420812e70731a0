package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/acdtunes/portdock-scheduler/internal/adapters/ipc"
	"github.com/acdtunes/portdock-scheduler/internal/application/search"
	"github.com/acdtunes/portdock-scheduler/internal/domain/auth"
	"github.com/acdtunes/portdock-scheduler/internal/domain/ports"
)

// searchContext holds the state one auth-search scenario operates on.
type searchContext struct {
	table        *auth.Table
	solverCount  int
	winner       string
	links        []*ipc.MemorySolverLink
	shm          *ipc.SharedMemory
	undockCount  int
	result       *search.Result
	dockID       int
	searchLength int
}

func (sc *searchContext) reset() {
	sc.table = auth.NewTable()
	sc.solverCount = 0
	sc.winner = ""
	sc.links = nil
	sc.shm = ipc.NewSharedMemory()
	sc.undockCount = 0
	sc.result = nil
	sc.dockID = 1
	sc.searchLength = 0
}

func (sc *searchContext) aPrecomputedAuthTable() error {
	return nil
}

func (sc *searchContext) solverWorkers(count int) error {
	sc.solverCount = count
	return nil
}

func (sc *searchContext) theWinningCandidateAtLengthIndex(length, index int) error {
	winner, err := sc.table.At(length, index)
	if err != nil {
		return err
	}
	sc.winner = winner
	return nil
}

func (sc *searchContext) theSearchDriverSearchesForLength(length int) error {
	sc.searchLength = length
	sc.links = make([]*ipc.MemorySolverLink, sc.solverCount)
	solverLinks := make([]ports.SolverLink, sc.solverCount)
	for i := range sc.links {
		sc.links[i] = ipc.NewMemorySolverLink(sc.winner)
		solverLinks[i] = sc.links[i]
	}

	driver := search.NewDriver(sc.table)
	onFound := func(dockID int, guess string) error {
		if err := sc.shm.WriteAuthString(dockID, guess); err != nil {
			return err
		}
		sc.undockCount++
		return nil
	}

	result, err := driver.Search(sc.dockID, length, solverLinks, onFound)
	if err != nil {
		return err
	}
	sc.result = result
	return nil
}

func (sc *searchContext) theSearchResultShouldReportTheWinningCandidate() error {
	if sc.result == nil {
		return fmt.Errorf("no search result recorded")
	}
	if sc.result.Winner != sc.winner {
		return fmt.Errorf("expected winner %q, got %q", sc.winner, sc.result.Winner)
	}
	return nil
}

func (sc *searchContext) exactlyOneUndockShouldHaveOccurred() error {
	if sc.undockCount != 1 {
		return fmt.Errorf("expected exactly one undock, got %d", sc.undockCount)
	}
	return nil
}

func (sc *searchContext) theAuthSlotForTheDockShouldContainTheWinningCandidate() error {
	got, err := sc.shm.ReadAuthString(sc.dockID)
	if err != nil {
		return err
	}
	if got != sc.winner {
		return fmt.Errorf("expected auth slot %q, got %q", sc.winner, got)
	}
	return nil
}

func (sc *searchContext) onlyTheLastSolverShouldHaveSentAnyGuesses() error {
	for i, link := range sc.links {
		if i == len(sc.links)-1 {
			if len(link.Guesses) == 0 {
				return fmt.Errorf("expected the last solver to have sent guesses, it sent none")
			}
			continue
		}
		if len(link.Guesses) != 0 {
			return fmt.Errorf("expected solver %d to send no guesses, it sent %d", i, len(link.Guesses))
		}
	}
	return nil
}

func (sc *searchContext) theWinningSolverShouldBeWorker(worker int) error {
	if sc.result == nil {
		return fmt.Errorf("no search result recorded")
	}
	if sc.result.WinningSolver != worker {
		return fmt.Errorf("expected winning solver %d, got %d", worker, sc.result.WinningSolver)
	}
	return nil
}

// InitializeAuthSearchScenario registers the auth-search step definitions.
func InitializeAuthSearchScenario(ctx *godog.ScenarioContext) {
	sc := &searchContext{}

	ctx.Before(func(goCtx context.Context, scen *godog.Scenario) (context.Context, error) {
		sc.reset()
		return goCtx, nil
	})

	ctx.Step(`^a precomputed auth table$`, sc.aPrecomputedAuthTable)
	ctx.Step(`^(\d+) solver workers$`, sc.solverWorkers)
	ctx.Step(`^the winning candidate at length (\d+), index (\d+)$`, sc.theWinningCandidateAtLengthIndex)
	ctx.Step(`^the search driver searches for length (\d+)$`, sc.theSearchDriverSearchesForLength)
	ctx.Step(`^the search result should report the winning candidate$`, sc.theSearchResultShouldReportTheWinningCandidate)
	ctx.Step(`^exactly one undock should have occurred$`, sc.exactlyOneUndockShouldHaveOccurred)
	ctx.Step(`^the auth slot for the dock should contain the winning candidate$`, sc.theAuthSlotForTheDockShouldContainTheWinningCandidate)
	ctx.Step(`^only the last solver should have sent any guesses$`, sc.onlyTheLastSolverShouldHaveSentAnyGuesses)
	ctx.Step(`^the winning solver should be worker (\d+)$`, sc.theWinningSolverShouldBeWorker)
}
