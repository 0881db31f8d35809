package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rustyeddy/pnlreport/report"
	"github.com/rustyeddy/pnlreport/stats"
)

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	profit lipgloss.Style
	loss   lipgloss.Style
	dim    lipgloss.Style
	border lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{title: plain, header: plain, profit: plain, loss: plain, dim: plain, border: plain}
	}
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		profit: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		loss:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		border: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

// money renders v green or red by sign.
func (s styles) money(v float64) string {
	if v < 0 {
		return s.loss.Render(report.Money(v))
	}
	return s.profit.Render(report.Money(v))
}

func (s styles) cell(c report.Cell) string {
	if !c.OK {
		return s.dim.Render(c.String())
	}
	return s.money(c.Value)
}

func (s styles) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.header.Padding(0, 1)
			}
			return st
		})
	return t.String()
}

func (s styles) heading(text string) string {
	return s.title.Render(text)
}

// bucketTable renders owner/type style breakdowns.
func (s styles) bucketTable(label string, buckets []report.Bucket) string {
	if len(buckets) == 0 {
		return s.dim.Render("No realized trades.")
	}
	rows := make([][]string, len(buckets))
	for i, b := range buckets {
		rows[i] = []string{
			b.Key,
			s.money(b.PL),
			fmt.Sprint(b.Trades),
			report.Percent(b.WinRate()),
			report.Ratio(b.RewardRisk()),
		}
	}
	return s.table([]string{label, "P/L", "Trades", "Win %", "R:R"}, rows)
}

// statsBlock renders the higher-order statistics as a two-column table.
func (s styles) statsBlock(st stats.Stats) string {
	if st.Trades == 0 {
		return s.dim.Render("No realized trades.")
	}
	rows := [][]string{
		{"Net P/L", s.money(st.NetPL)},
		{"Trades", fmt.Sprintf("%d (%d W / %d L)", st.Trades, st.Wins, st.Losses)},
		{"Win rate", report.Percent(st.WinRate)},
		{"Profit factor", report.Ratio(st.ProfitFactor)},
		{"Avg win / loss", report.Money(st.AvgWin) + " / " + report.Money(st.AvgLoss)},
		{"Expectancy", s.money(st.Expectancy)},
		{"R:R", report.Ratio(st.RewardRisk)},
		{"Max drawdown", maxDrawdown(st)},
		{"Recovery factor", report.Ratio(st.RecoveryFactor)},
		{"Best win streak", streak(st.BestWinStreak)},
		{"Worst loss streak", streak(st.WorstLossStreak)},
		{"Largest win", largest(st.LargestWin)},
		{"Largest loss", largest(st.LargestLoss)},
	}
	return s.table([]string{"Metric", "Value"}, rows)
}

func maxDrawdown(st stats.Stats) string {
	if st.MaxDrawdown == 0 {
		return report.Money(0)
	}
	return report.Money(st.MaxDrawdown) + " on " + st.MaxDrawdownDate.Format("2006-01-02")
}

func streak(k stats.Streak) string {
	if k.Length == 0 {
		return "--"
	}
	return fmt.Sprintf("%d (%s to %s)", k.Length, k.Start.Format("2006-01-02"), k.End.Format("2006-01-02"))
}

func largest(t *stats.Trade) string {
	if t == nil {
		return "--"
	}
	who := strings.TrimSpace(t.Owner + " " + t.Type)
	if who == "" {
		who = "--"
	}
	return fmt.Sprintf("%s on %s (%s)", report.Money(t.PL), t.Date.Format("2006-01-02"), who)
}
