package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/pnlreport/internal/app"
	"github.com/rustyeddy/pnlreport/internal/cli/config"
	"github.com/rustyeddy/pnlreport/journal"
	"github.com/rustyeddy/pnlreport/report"
)

func newLabelsCmd(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Manage the owner and type lists",
		Long: `Owners and types offered for new rows. New values typed into rows are
added automatically; removing a label leaves existing rows unchanged.

Examples:
  pnl labels list owner
  pnl labels add type Options
  pnl labels remove owner "Owner 2"`,
	}

	var match string
	list := &cobra.Command{
		Use:   "list [owner|type]",
		Short: "List owners, types or both",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []app.LabelKind{app.Owners, app.Types}
			if len(args) == 1 {
				k, err := app.ParseLabelKind(args[0])
				if err != nil {
					return err
				}
				kinds = []app.LabelKind{k}
			}
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				for _, k := range kinds {
					items := s.App.MatchLabels(k, match)
					fmt.Fprintf(cmd.OutOrStdout(), "%ss: %s\n", k, strings.Join(items, ", "))
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&match, "match", "", "only labels containing this text")

	add := &cobra.Command{
		Use:   "add <owner|type> <value>",
		Short: "Add a label",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := app.ParseLabelKind(args[0])
			if err != nil {
				return err
			}
			value := strings.Join(args[1:], " ")
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				added, err := s.App.AddLabel(ctx, k, value)
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %q already listed\n", k, strings.TrimSpace(value))
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s %q\n", k, strings.TrimSpace(value))
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <owner|type> <value>",
		Short: "Remove a label",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := app.ParseLabelKind(args[0])
			if err != nil {
				return err
			}
			value := strings.Join(args[1:], " ")
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				if err := s.App.RemoveLabel(ctx, k, value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s %q\n", k, strings.TrimSpace(value))
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

func newPortfolioCmd(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Manage the portfolio ledger",
	}

	var p journal.PortfolioEntry
	add := &cobra.Command{
		Use:   "add",
		Short: "Append a portfolio row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				pos, err := s.App.AddPortfolio(ctx, p)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Added portfolio row %d (net %s)\n", pos+1, p.NetProfit().StringFixed(2))
				return nil
			})
		},
	}
	add.Flags().StringVar(&p.Name, "name", "", "portfolio name")
	add.Flags().StringVar(&p.StartDate, "start", "", "start date")
	add.Flags().StringVar(&p.EndDate, "end", "", "end date")
	add.Flags().StringVar(&p.Fund, "fund", "", "fund amount")
	add.Flags().StringVar(&p.Charges, "charges", "", "charges")
	add.Flags().StringVar(&p.Profit, "profit", "", "gross profit")
	add.Flags().StringVar(&p.Sharing, "sharing", "", "profit sharing")
	add.Flags().StringVar(&p.Remark, "remark", "", "remark")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the portfolio ledger with totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				st := newStyles(rc.NoColor)
				entries := s.App.Portfolio()
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), st.dim.Render("Portfolio is empty."))
					return nil
				}
				rows := make([][]string, 0, len(entries)+1)
				for i, e := range entries {
					rows = append(rows, []string{
						strconv.Itoa(i + 1), e.Name, e.StartDate, e.EndDate,
						e.Fund, e.Charges, e.Profit, e.Sharing,
						e.NetProfit().StringFixed(2), e.Remark,
					})
				}
				t := s.App.View().Portfolio
				rows = append(rows, totalsRow(t))
				fmt.Fprintln(cmd.OutOrStdout(), st.table(
					[]string{"#", "Name", "Start", "End", "Fund", "Charges", "Profit", "Sharing", "Net", "Remark"}, rows))
				return nil
			})
		},
	}

	var yes bool
	remove := &cobra.Command{
		Use:   "remove <row>",
		Short: "Delete a portfolio row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseRow(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("remove portfolio row %d: %w (pass --yes)", pos+1, app.ErrNotConfirmed)
			}
			return run(cmd, rc, func(ctx context.Context, s *config.Session) error {
				if err := s.App.RemovePortfolio(ctx, pos); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed portfolio row %d\n", pos+1)
				return nil
			})
		},
	}
	remove.Flags().BoolVar(&yes, "yes", false, "confirm the removal")

	cmd.AddCommand(add, list, remove)
	return cmd
}

func totalsRow(t report.PortfolioTotals) []string {
	return []string{
		"", "Total", "", "",
		t.Fund.StringFixed(2), t.Charges.StringFixed(2), t.Profit.StringFixed(2), t.Sharing.StringFixed(2),
		t.Net.StringFixed(2), "",
	}
}
