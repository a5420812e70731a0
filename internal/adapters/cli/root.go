// Package cli implements the portdock-scheduler command line: a single
// positional testcase number plus flags for the ambient concerns the
// teacher corpus always exposes at this layer (config file, audit
// database, metrics listen address), grounded on the teacher's
// internal/adapters/cli/root.go structure.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// RunArgs is the parsed command line, handed to the injected Runner so
// this package stays free of infrastructure wiring.
type RunArgs struct {
	TestcaseNumber int
	ConfigPath     string
	AuditDBPath    string
	MetricsAddr    string
}

// Runner executes one scheduler run for the parsed arguments. main.go
// supplies the concrete implementation; this package only parses and
// validates the command line.
type Runner func(RunArgs) error

// NewRootCommand builds the root command. run is invoked once argument
// parsing succeeds.
func NewRootCommand(run Runner) *cobra.Command {
	var (
		configPath  string
		auditDB     string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "portdock-scheduler <testcase-number>",
		Short: "Run the port-dock scheduler against a testcase",
		Long: `portdock-scheduler admits ships into docks, sequences cargo moves through
cranes, and recovers per-berth authorization strings by parallel search,
advancing in lock-step with an external validator over testcase<N>/input.txt.

Examples:
  portdock-scheduler 3
  portdock-scheduler 3 --config ./portdock.yaml --metrics-addr :9102`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("testcase number must be an integer: %w", err)
			}
			return run(RunArgs{
				TestcaseNumber: n,
				ConfigPath:     configPath,
				AuditDBPath:    auditDB,
				MetricsAddr:    metricsAddr,
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file (default: search standard locations)")
	cmd.Flags().StringVar(&auditDB, "audit-db", "", "override the audit trail database path")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "override the Prometheus metrics listen address")

	return cmd
}

// Execute runs the root command and exits nonzero on error, matching
// spec.md §6/§7's CLI error contract.
func Execute(run Runner) {
	if err := NewRootCommand(run).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
