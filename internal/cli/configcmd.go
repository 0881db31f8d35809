package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	appconfig "github.com/rustyeddy/pnlreport/config"
	"github.com/rustyeddy/pnlreport/internal/cli/config"
)

func newConfigCmd(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate, validate or edit the configuration file",
		Long: `Manage the pnl configuration file.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file
  set      - Change one key in a configuration file

Examples:
  pnl config init -o pnl.yaml
  pnl config validate -f pnl.yaml
  pnl config set sync.auto_sync true -f pnl.yaml`,
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appconfig.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "pnl.yaml", "output config file path")

	var path string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = rc.ConfigPath
			}
			cfg, err := appconfig.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Journal: %s\n", cfg.Journal.DBPath)
			if cfg.Sync.URL != "" {
				fmt.Fprintf(out, "  Sync: %s (auto: %t, debounce %s)\n", cfg.Sync.URL, cfg.Sync.AutoSync, cfg.Sync.Debounce)
			} else {
				fmt.Fprintln(out, "  Sync: off")
			}
			fmt.Fprintf(out, "  Calendar: %s\n", cfg.Calendar.Range)
			return nil
		},
	}
	validate.Flags().StringVarP(&path, "file", "f", "", "path to config file (default --config)")

	var setPath string
	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one key in a configuration file",
		Long:  "Keys: " + strings.Join(appconfig.Keys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if setPath == "" {
				setPath = rc.ConfigPath
			}
			cfg, err := appconfig.Load(setPath)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if err := cfg.SaveToFile(setPath); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s (%s)\n", args[0], args[1], setPath)
			return nil
		},
	}
	set.Flags().StringVarP(&setPath, "file", "f", "", "path to config file (default --config)")

	cmd.AddCommand(initCmd, validate, set)
	return cmd
}
