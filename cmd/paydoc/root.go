package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"paydoc-studio/internal/config"
	"paydoc-studio/internal/manager"
	"paydoc-studio/internal/preview"
	"paydoc-studio/internal/registry"
	"paydoc-studio/internal/storage"
)

// cfgFile holds the path passed via --config. Empty means use defaults
// plus an optional paydoc.yaml in the working directory.
var cfgFile string

var verbose bool

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "paydoc",
	Short: "Manage payroll document templates from the command line",
	Long: `paydoc manages payroll document templates (payslips, settlement
sheets, CTC annexures and bank advice layouts) stored as JSON collections.

Example usage:
  paydoc list payslip                 # List all payslip templates
  paydoc create payslip -n "April"    # Create and save a new draft
  paydoc preview payslip <id>         # Render a template with sample data
  paydoc publish payslip <id>         # Validate and publish a template`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the configuration file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// cliApp bundles the dependencies a subcommand needs.
type cliApp struct {
	logger    *slog.Logger
	manager   *manager.Manager
	registry  *registry.Registry
	projector *preview.Projector
}

// newCLIApp wires up storage, the field catalog and the manager from the
// resolved configuration. Log output goes to stderr so stdout stays clean
// for command output; info-level chatter is suppressed unless --verbose.
func newCLIApp() (*cliApp, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	var handler slog.Handler
	if verbose {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	logger := slog.New(handler)

	store, err := storage.NewJSONStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing template store: %w", err)
	}

	reg, err := registry.LoadFile(cfg.RegistryFile)
	if err != nil {
		return nil, fmt.Errorf("loading system-field catalog: %w", err)
	}

	mgr, err := manager.NewManager(store, logger)
	if err != nil {
		return nil, fmt.Errorf("hydrating template collections: %w", err)
	}

	return &cliApp{
		logger:    logger,
		manager:   mgr,
		registry:  reg,
		projector: preview.NewProjector(reg),
	}, nil
}
