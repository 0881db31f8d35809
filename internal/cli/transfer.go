package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlreport/calendar"
	"github.com/rustyeddy/pnlreport/internal/cli/config"
	"github.com/rustyeddy/pnlreport/journal"
)

func newExportCmd(rc *config.RootConfig) *cobra.Command {
	var (
		format string
		output string
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the journal rows as CSV or JSON",
		Long: `Write every row in table order. JSON output is the same body the
sync push sends, including the owner and type lists.

With --from and --to only rows whose exit date falls in that range are
written, read straight from the journal database.

Examples:
  pnl export -o journal.csv
  pnl export --from 2026-02-01 --to 2026-02-28 -o february.csv
  pnl export --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			if (from == "") != (to == "") {
				return fmt.Errorf("export: --from and --to go together")
			}
			if from != "" && format == "json" {
				return fmt.Errorf("export: a date range needs --format csv")
			}
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				rows := s.App.Entries()
				if from != "" {
					now := time.Now()
					if rc.Now != nil {
						now = rc.Now()
					}
					r, err := calendar.Resolve(calendar.Spec{Name: calendar.Custom, From: from, To: to}, now)
					if err != nil {
						return fmt.Errorf("export: %w", err)
					}
					if rows, err = s.ExitedBetween(ctx, r.Start, r.End); err != nil {
						return fmt.Errorf("export: %w", err)
					}
				}

				var w io.Writer = cmd.OutOrStdout()
				if output != "" && output != "-" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("create %s: %w", output, err)
					}
					defer f.Close()
					w = f
				}

				switch format {
				case "json":
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					if err := enc.Encode(s.App.Payload()); err != nil {
						return fmt.Errorf("export: %w", err)
					}
				default:
					if err := journal.WriteCSV(w, rows); err != nil {
						return fmt.Errorf("export: %w", err)
					}
				}
				if output != "" && output != "-" {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d rows to %s\n", len(rows), output)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv|json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&from, "from", "", "first exit date to include")
	cmd.Flags().StringVar(&to, "to", "", "last exit date to include")
	return cmd
}

func newImportCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Append rows from a CSV file",
		Long: `Append rows from a CSV file with a header line. Columns are matched by
name (date, owner, type, exit_date, pl, remark); missing columns read as
empty. Owners and types seen in the file join the label lists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := journal.ReadCSV(f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				if err := s.App.ImportEntries(ctx, rows); err != nil {
					return fmt.Errorf("import: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d rows\n", len(rows))
				return nil
			})
		},
	}
}
