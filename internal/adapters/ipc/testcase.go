package ipc

import (
	"bufio"
	"fmt"
	"os"

	"github.com/acdtunes/portdock-scheduler/internal/domain/shared"
)

// Testcase is the parsed contents of a testcase<N>/input.txt file:
// sharedMemoryKey, messageQueueKey, solverCount, per-solver queue keys,
// dockCount, and per-dock category plus crane capacities.
type Testcase struct {
	SharedMemoryKey int
	MessageQueueKey int
	SolverQueueKeys []int
	Docks           []DockSpec
}

// DockSpec is one dock's startup configuration as read from the
// testcase file.
type DockSpec struct {
	Category        int
	CraneCapacities []int
}

// SolverCount reports how many solver channels the testcase specifies.
func (t *Testcase) SolverCount() int {
	return len(t.SolverQueueKeys)
}

// ParseTestcaseFile reads and parses a testcase input file: whitespace-
// separated integers in the order sharedMemoryKey, messageQueueKey,
// solverCount S, S solver-queue keys, dockCount D, then for each of D
// docks a category c followed by c crane capacities.
func ParseTestcaseFile(path string) (*Testcase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, shared.NewIPCError(fmt.Sprintf("open testcase file %s: %v", path, err))
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	next := func(field string) (int, error) {
		if !sc.Scan() {
			return 0, shared.NewIPCError(fmt.Sprintf("testcase file %s: unexpected end of input reading %s", path, field))
		}
		var v int
		if _, err := fmt.Sscanf(sc.Text(), "%d", &v); err != nil {
			return 0, shared.NewIPCError(fmt.Sprintf("testcase file %s: invalid integer for %s: %q", path, field, sc.Text()))
		}
		return v, nil
	}

	tc := &Testcase{}

	if tc.SharedMemoryKey, err = next("sharedMemoryKey"); err != nil {
		return nil, err
	}
	if tc.MessageQueueKey, err = next("messageQueueKey"); err != nil {
		return nil, err
	}

	solverCount, err := next("solverCount")
	if err != nil {
		return nil, err
	}
	tc.SolverQueueKeys = make([]int, solverCount)
	for i := 0; i < solverCount; i++ {
		if tc.SolverQueueKeys[i], err = next("solverQueueKey"); err != nil {
			return nil, err
		}
	}

	dockCount, err := next("dockCount")
	if err != nil {
		return nil, err
	}
	tc.Docks = make([]DockSpec, dockCount)
	for i := 0; i < dockCount; i++ {
		category, err := next("dockCategory")
		if err != nil {
			return nil, err
		}
		cranes := make([]int, category)
		for c := 0; c < category; c++ {
			if cranes[c], err = next("craneCapacity"); err != nil {
				return nil, err
			}
		}
		tc.Docks[i] = DockSpec{Category: category, CraneCapacities: cranes}
	}

	return tc, nil
}
