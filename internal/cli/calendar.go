package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlreport/calendar"
	"github.com/rustyeddy/pnlreport/internal/cli/config"
	"github.com/rustyeddy/pnlreport/report"
)

func newCalendarCmd(rc *config.RootConfig) *cobra.Command {
	var spec calendar.Spec

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Daily P/L heatmap",
		Long: `Render a month grid per month of the selected range. Days inside the
range are green for profit, red for loss and plain without trades; days
outside it are dimmed.

Ranges: 7d, 15d, 1m, 3m, 12m, custom (with --from and --to).

Examples:
  pnl calendar --range 3m
  pnl calendar --range custom --from 2026-01-01 --to 2026-02-28`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				sel := rc.Config.Calendar.Spec()
				if cmd.Flags().Changed("range") {
					sel = spec
				}
				r, months, err := s.App.Heatmap(sel)
				if err != nil {
					return err
				}
				st := newStyles(rc.NoColor)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s to %s\n\n", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
				for _, m := range months {
					fmt.Fprintln(out, renderMonth(st, m))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&spec.Name, "range", calendar.LastMonth, "range: "+strings.Join(calendar.Names, "|"))
	cmd.Flags().StringVar(&spec.From, "from", "", "custom range start")
	cmd.Flags().StringVar(&spec.To, "to", "", "custom range end")
	return cmd
}

func renderMonth(st styles, m calendar.Month) string {
	var b strings.Builder
	b.WriteString(st.heading(fmt.Sprintf("%-20s", m.Label)))
	b.WriteString(" ")
	b.WriteString(st.money(m.Net))
	b.WriteString("\nSu Mo Tu We Th Fr Sa\n")

	col := m.Lead
	b.WriteString(strings.Repeat("   ", col))
	for _, d := range m.Days {
		num := fmt.Sprintf("%2d", d.Date.Day())
		switch d.State {
		case calendar.OutOfRange:
			num = st.dim.Render(num)
		case calendar.Profit:
			num = st.profit.Render(num)
		case calendar.Loss:
			num = st.loss.Render(num)
		}
		b.WriteString(num)
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString(" ")
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	var marked []string
	for _, d := range m.Days {
		if d.State == calendar.Profit || d.State == calendar.Loss {
			marked = append(marked, fmt.Sprintf("%s %s", d.Date.Format("02"), report.Money(d.PL)))
		}
	}
	if len(marked) > 0 {
		b.WriteString(strings.Join(marked, "  "))
		b.WriteString("\n")
	}
	return b.String()
}
