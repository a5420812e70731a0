package main

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/acdtunes/portdock-scheduler/internal/adapters/audit"
	"github.com/acdtunes/portdock-scheduler/internal/adapters/cli"
	"github.com/acdtunes/portdock-scheduler/internal/adapters/ipc"
	"github.com/acdtunes/portdock-scheduler/internal/adapters/metrics"
	"github.com/acdtunes/portdock-scheduler/internal/application/scheduler"
	"github.com/acdtunes/portdock-scheduler/internal/domain/auth"
	"github.com/acdtunes/portdock-scheduler/internal/domain/dock"
	"github.com/acdtunes/portdock-scheduler/internal/domain/ports"
	"github.com/acdtunes/portdock-scheduler/internal/infrastructure/config"
	"github.com/acdtunes/portdock-scheduler/internal/infrastructure/database"
	"github.com/acdtunes/portdock-scheduler/internal/infrastructure/pidfile"
)

func main() {
	cli.Execute(runTestcase)
}

func runTestcase(args cli.RunArgs) error {
	fmt.Println("Port-Dock Scheduler v0.1.0")
	fmt.Println("==========================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(args.ConfigPath)
	if args.AuditDBPath != "" {
		cfg.Audit.Path = args.AuditDBPath
	}
	if args.MetricsAddr != "" {
		cfg.Metrics.Enabled = true
	}

	runID := uuid.New().String()
	log.Printf("run %s: testcase %d", runID, args.TestcaseNumber)

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		return fmt.Errorf("failed to acquire PID file lock: %w", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("warning: failed to release PID file: %v", err)
		}
	}()

	fmt.Printf("Connecting to %s audit database...\n", cfg.Audit.Type)
	db, err := database.NewConnection(&cfg.Audit)
	if err != nil {
		return fmt.Errorf("failed to connect to audit database: %w", err)
	}
	defer database.Close(db)
	trail := audit.NewTrail(db, runID)

	if cfg.Metrics.Enabled {
		collector := metrics.InitRegistry()
		_ = collector
		addr := args.MetricsAddr
		if addr == "" {
			addr = fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port)
		}
		go func() {
			log.Printf("metrics listening on %s%s", addr, cfg.Metrics.Path)
			mux := http.NewServeMux()
			mux.Handle(cfg.Metrics.Path, metrics.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	testcaseDir := filepath.Join(cfg.IPC.TestcaseRoot, fmt.Sprintf("testcase%d", args.TestcaseNumber))
	inputPath := filepath.Join(testcaseDir, "input.txt")
	fmt.Printf("Reading testcase: %s\n", inputPath)
	tc, err := ipc.ParseTestcaseFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to parse testcase file: %w", err)
	}

	validatorSocket := filepath.Join(cfg.IPC.SocketDir, fmt.Sprintf("validator-%d.sock", tc.MessageQueueKey))
	fmt.Printf("Dialing validator at %s...\n", validatorSocket)
	validatorLink, err := ipc.DialValidator(validatorSocket)
	if err != nil {
		return fmt.Errorf("failed to dial validator socket: %w", err)
	}
	defer validatorLink.Close()

	solverLinks := make([]ports.SolverLink, 0, len(tc.SolverQueueKeys))
	for _, key := range tc.SolverQueueKeys {
		socketPath := filepath.Join(cfg.IPC.SocketDir, fmt.Sprintf("solver-%d.sock", key))
		fmt.Printf("Dialing solver at %s...\n", socketPath)
		link, err := ipc.DialSolver(socketPath)
		if err != nil {
			return fmt.Errorf("failed to dial solver socket: %w", err)
		}
		defer link.Close()
		solverLinks = append(solverLinks, link)
	}

	shm := ipc.NewSharedMemory()

	docks := make([]*dock.Dock, len(tc.Docks))
	for i, spec := range tc.Docks {
		docks[i] = dock.New(i, spec.Category, spec.CraneCapacities)
	}

	table := auth.NewTable()

	var reporter scheduler.Metrics
	if cfg.Metrics.Enabled {
		reporter = metrics.Reporter{}
	}

	s, err := scheduler.New(scheduler.Dependencies{
		Validator:   validatorLink,
		Arrivals:    shm,
		AuthMem:     shm,
		SolverLinks: solverLinks,
		Docks:       docks,
		Trail:       trail,
		Metrics:     reporter,
	}, table)
	if err != nil {
		return fmt.Errorf("failed to construct scheduler: %w", err)
	}

	fmt.Println("Scheduler ready, entering main loop")
	if err := s.Run(); err != nil {
		return fmt.Errorf("scheduler run failed: %w", err)
	}

	fmt.Println("Scheduler finished cleanly")
	return nil
}
