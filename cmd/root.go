package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/config"
	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "mathsheet",
	Short: "Generate, grade and typeset math practice problems",
	Long: "mathsheet generates randomized algebra and calculus problems with verified answers,\n" +
		"grades free-form answers symbolically, and typesets printable worksheets.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHSHEET_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides MATHSHEET_LOG_LEVEL)")

	rootCmd.AddCommand(familiesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(worksheetCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

var (
	cfg            config.Config
	logger         = slog.Default()
	shutdownTraces = func(context.Context) error { return nil }
)

// setup loads configuration, installs the logger and starts tracing.
func setup(cmd *cobra.Command) error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if logger, err = cfg.NewLogger(os.Stderr); err != nil {
		return err
	}
	slog.SetDefault(logger)

	if cfg.TracingEnabled() {
		shutdownTraces, err = telemetry.Setup(cmd.Context(), "mathsheet", version, cfg.OTelEndpoint)
		if err != nil {
			return fmt.Errorf("start tracing: %w", err)
		}
	}
	return nil
}

func teardown(ctx context.Context) error {
	if err := shutdownTraces(ctx); err != nil {
		logger.Warn("flush traces", "error", err)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHSHEET_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
