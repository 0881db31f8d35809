package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlreport/internal/cli/config"
)

// Version is set at build time with -ldflags.
var Version = "dev"

func NewRootCmd() *cobra.Command {
	return newRootCmd(&config.RootConfig{})
}

func newRootCmd(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pnl",
		Short:         "pnl: trade journal and P/L reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "pnl.yaml", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.EnvFile, "env-file", ".env", "Dotenv file with PNL_* overrides (optional)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite journal database (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		newAddCmd(rc),
		newEditCmd(rc),
		newShowCmd(rc),
		newDeleteCmd(rc),
		newUndoCmd(rc),
		newBinCmd(rc),
		newListCmd(rc),
		newReportCmd(rc),
		newDrillCmd(rc),
		newCalendarCmd(rc),
		newLabelsCmd(rc),
		newPortfolioCmd(rc),
		newExportCmd(rc),
		newImportCmd(rc),
		newSyncCmd(rc),
		newConfigCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pnl (%s)\n", Version)
		},
	})

	return cmd
}

func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

// run opens the journal, hands it to fn and closes it again.
func run(cmd *cobra.Command, rc *config.RootConfig, fn func(ctx context.Context, s *config.Session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := rc.Open(ctx)
	if err != nil {
		return err
	}
	fnErr := fn(ctx, s)
	if err := s.Close(ctx); err != nil && fnErr == nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return fnErr
}
