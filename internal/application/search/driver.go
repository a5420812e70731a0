package search

import (
	"sync"
	"sync/atomic"

	"github.com/acdtunes/portdock-scheduler/internal/domain/auth"
	"github.com/acdtunes/portdock-scheduler/internal/domain/ports"
	"github.com/acdtunes/portdock-scheduler/internal/domain/shared"
)

// OnFound is invoked exactly once, by the winning worker goroutine,
// before that worker returns. It is expected to write the winning
// string into shared memory, emit the undocking message, and mark the
// dock idle — in that order — matching the single-writer sequence
// described in spec.md §4.6.
type OnFound func(dockID int, guess string) error

// Result summarizes a completed search.
type Result struct {
	DockID        int
	Length        int
	EffectiveLen  int
	Clamped       bool
	Winner        string
	WinningSolver int
}

// Driver owns the precomputed candidate table and runs searches against
// it. A Driver is safe for concurrent use across different docks, since
// the table is read-only and each call to Search owns its own found flag.
type Driver struct {
	table *auth.Table
}

// NewDriver constructs a search driver over the given candidate table.
func NewDriver(table *auth.Table) *Driver {
	return &Driver{table: table}
}

// Search recovers the dock's auth string of the given length by
// partitioning the candidate space across links and running one worker
// per solver channel. It first broadcasts a dock-info message to every
// solver, then launches the workers, then waits for all of them to
// return. Cooperative cancellation happens only between guesses: a
// worker already blocked on a solver's verdict always finishes that
// round trip before checking the found flag again.
func (d *Driver) Search(dockID, length int, links []ports.SolverLink, onFound OnFound) (*Result, error) {
	if len(links) == 0 {
		return nil, shared.NewSearchError("search requires at least one solver link")
	}

	effectiveLength, clamped := auth.ClampLength(length)

	for _, link := range links {
		if err := link.SendDockInfo(dockID); err != nil {
			return nil, err
		}
	}

	ranges, err := Partition(effectiveLength, len(links), d.table)
	if err != nil {
		return nil, err
	}

	var found int32
	var winner string
	winnerIdx := -1
	var mu sync.Mutex
	var wg sync.WaitGroup
	errCh := make(chan error, len(links))

	for k, link := range links {
		k, link, r := k, link, ranges[k]
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := r.Low; idx <= r.High; idx++ {
				if atomic.LoadInt32(&found) != 0 {
					return
				}
				candidate, err := d.table.At(effectiveLength, idx)
				if err != nil {
					errCh <- err
					return
				}
				if err := link.SendGuess(dockID, candidate); err != nil {
					errCh <- err
					return
				}
				correct, err := link.RecvVerdict()
				if err != nil {
					errCh <- err
					return
				}
				if correct {
					if atomic.CompareAndSwapInt32(&found, 0, 1) {
						if err := onFound(dockID, candidate); err != nil {
							errCh <- err
							return
						}
						mu.Lock()
						winner = candidate
						winnerIdx = k
						mu.Unlock()
					}
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	if winnerIdx == -1 {
		return nil, shared.NewSearchError("no solver reported a correct candidate")
	}

	return &Result{
		DockID:        dockID,
		Length:        length,
		EffectiveLen:  effectiveLength,
		Clamped:       clamped,
		Winner:        winner,
		WinningSolver: winnerIdx,
	}, nil
}
