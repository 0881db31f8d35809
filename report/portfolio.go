package report

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/pnlreport/journal"
)

// PortfolioTotals sums the portfolio ledger column by column.
type PortfolioTotals struct {
	Count   int
	Fund    decimal.Decimal
	Charges decimal.Decimal
	Profit  decimal.Decimal
	Sharing decimal.Decimal
	Net     decimal.Decimal
}

func Portfolio(rows []journal.PortfolioEntry) PortfolioTotals {
	t := PortfolioTotals{
		Fund:    decimal.Zero,
		Charges: decimal.Zero,
		Profit:  decimal.Zero,
		Sharing: decimal.Zero,
		Net:     decimal.Zero,
	}
	for _, p := range rows {
		t.Count++
		t.Fund = t.Fund.Add(dec(p.Fund))
		t.Charges = t.Charges.Add(dec(p.Charges))
		t.Profit = t.Profit.Add(dec(p.Profit))
		t.Sharing = t.Sharing.Add(dec(p.Sharing))
		t.Net = t.Net.Add(p.NetProfit())
	}
	return t
}

func dec(s string) decimal.Decimal {
	v, ok := journal.ParseAmount(s)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
