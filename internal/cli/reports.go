package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlreport/internal/app"
	"github.com/rustyeddy/pnlreport/internal/cli/config"
	"github.com/rustyeddy/pnlreport/journal"
	"github.com/rustyeddy/pnlreport/report"
)

func newReportCmd(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Dashboard and grouped P/L reports",
		Long: `Reports are rebuilt from the journal on every run.

Subcommands:
  dashboard - Totals plus this month's statistics
  owners    - P/L by owner
  types     - P/L by instrument type
  detail    - P/L by owner and type
  monthly   - Month by month P/L with overall statistics
  daily     - P/L per exit date as typed
  chart     - Chart series as JSON`,
	}

	grouped := func(use, short, label string, pick func(report.Snapshot, bool) []report.Bucket) *cobra.Command {
		var month bool
		c := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
					st := newStyles(rc.NoColor)
					scope := "all months"
					if month {
						scope = "this month"
					} else if rc.Config.View.ExcludeCurrentMonth {
						scope = "excluding this month"
					}
					fmt.Fprintln(cmd.OutOrStdout(), st.heading(fmt.Sprintf("%s (%s)", short, scope)))
					fmt.Fprintln(cmd.OutOrStdout(), st.bucketTable(label, pick(s.App.View().Snapshot, month)))
					return nil
				})
			},
		}
		c.Flags().BoolVar(&month, "month", false, "current calendar month only")
		return c
	}

	cmd.AddCommand(
		newDashboardCmd(rc),
		grouped("owners", "P/L by owner", "Owner", func(s report.Snapshot, m bool) []report.Bucket {
			if m {
				return s.MonthOwners
			}
			return s.Owners
		}),
		grouped("types", "P/L by type", "Type", func(s report.Snapshot, m bool) []report.Bucket {
			if m {
				return s.MonthTypes
			}
			return s.Types
		}),
		grouped("detail", "P/L by owner and type", "Owner / Type", func(s report.Snapshot, m bool) []report.Bucket {
			if m {
				return s.MonthOwnerTypes
			}
			return s.OwnerTypes
		}),
		newMonthlyCmd(rc),
		newDailyCmd(rc),
		newChartCmd(rc),
	)
	return cmd
}

func newDashboardCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Totals of the visible rows and this month's statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				st := newStyles(rc.NoColor)
				v := s.App.View()
				t := v.Snapshot.Totals

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, st.heading("Dashboard"))
				fmt.Fprintln(out, st.table([]string{"Net P/L", "Trades", "Win rate", "Profit factor"}, [][]string{{
					st.money(t.NetPL),
					fmt.Sprint(t.Trades),
					report.Percent(t.WinRate()),
					report.Ratio(t.ProfitFactor()),
				}}))
				fmt.Fprintln(out, st.heading("This month"))
				fmt.Fprintln(out, st.statsBlock(v.Analysis.Dashboard))
				fmt.Fprintln(out, st.heading("Owners this month"))
				fmt.Fprintln(out, st.bucketTable("Owner", v.Snapshot.MonthOwners))
				return nil
			})
		},
	}
}

func newMonthlyCmd(rc *config.RootConfig) *cobra.Command {
	var drill bool

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Month by month P/L, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				st := newStyles(rc.NoColor)
				v := s.App.View()
				out := cmd.OutOrStdout()

				months := v.Snapshot.Months
				if len(months) == 0 {
					fmt.Fprintln(out, st.dim.Render("No realized trades."))
					return nil
				}
				rows := make([][]string, len(months))
				for i, m := range months {
					rows[i] = []string{
						m.Label,
						st.money(m.PL),
						fmt.Sprint(m.Trades),
						report.Percent(m.WinRate()),
						report.Ratio(m.ProfitFactor()),
					}
				}
				fmt.Fprintln(out, st.heading("Monthly"))
				fmt.Fprintln(out, st.table([]string{"Month", "P/L", "Trades", "Win %", "PF"}, rows))

				if drill {
					for _, m := range months {
						fmt.Fprintln(out, st.heading(m.Label))
						fmt.Fprintln(out, st.bucketTable("Day", m.Days))
						fmt.Fprintln(out, st.bucketTable("Owner", m.Owners))
						fmt.Fprintln(out, st.bucketTable("Type", m.Types))
					}
				}

				fmt.Fprintln(out, st.heading("Overall"))
				fmt.Fprintln(out, st.statsBlock(v.Analysis.Overall))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&drill, "drill", false, "break each month down by day, owner and type")
	return cmd
}

func newDailyCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "P/L per exit date, grouped by the date text as typed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				st := newStyles(rc.NoColor)
				days := s.App.View().Snapshot.Daily
				if len(days) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), st.dim.Render("No rows with an exit date and P/L."))
					return nil
				}
				rows := make([][]string, len(days))
				for i, d := range days {
					rows[i] = []string{d.Key, st.money(d.PL), fmt.Sprint(d.Trades)}
				}
				fmt.Fprintln(cmd.OutOrStdout(), st.table([]string{"Exit", "P/L", "Trades"}, rows))
				return nil
			})
		},
	}
}

func newChartCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:       "chart <owners|types|daily|trend>",
		Short:     "Print chart labels, values and colors as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"owners", "types", "daily", "trend"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				snap := s.App.View().Snapshot
				var series report.Series
				switch args[0] {
				case "owners":
					series = report.LabelSeries(snap.Owners)
				case "types":
					series = report.LabelSeries(snap.Types)
				case "daily":
					series = report.DailySeries(snap.Daily)
				case "trend":
					series = report.TrendSeries(snap.Months)
				default:
					return fmt.Errorf("unknown chart %q", args[0])
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(series)
			})
		},
	}
}

func newDrillCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "drill <owner|type> <value>",
		Short: "List every row of one owner or type as Org-mode entries",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := app.ParseLabelKind(args[0])
			if err != nil {
				return err
			}
			value := strings.Join(args[1:], " ")
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				_, rows := s.App.DrillDown(kind, value)
				if len(rows) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No rows for %s %q.\n", kind, value)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), journal.FormatEntriesOrg(rows))
				return nil
			})
		},
	}
}
