package journal

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PortfolioEntry is one row of the separate portfolio ledger. It shares
// nothing with the trade rows.
type PortfolioEntry struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Fund      string `json:"fund"`
	Charges   string `json:"charges"`
	Profit    string `json:"profit"`
	Sharing   string `json:"sharing"`
	Remark    string `json:"remark"`
}

// UnmarshalJSON reads a portfolio row leniently, like Entry.
func (p *PortfolioEntry) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = PortfolioEntry{
		Name:      jsonText(raw["name"]),
		StartDate: jsonText(raw["startDate"]),
		EndDate:   jsonText(raw["endDate"]),
		Fund:      jsonText(raw["fund"]),
		Charges:   jsonText(raw["charges"]),
		Profit:    jsonText(raw["profit"]),
		Sharing:   jsonText(raw["sharing"]),
		Remark:    jsonText(raw["remark"]),
	}
	return nil
}

// NetProfit is profit - charges - sharing. Blank or unreadable amounts
// count as zero. It is always recomputed, never stored.
func (p PortfolioEntry) NetProfit() decimal.Decimal {
	return amount(p.Profit).Sub(amount(p.Charges)).Sub(amount(p.Sharing))
}

func amount(s string) decimal.Decimal {
	v, ok := ParseAmount(s)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// Portfolio is the ordered ledger of portfolio rows.
type Portfolio struct {
	rows []PortfolioEntry
}

func NewPortfolio(rows []PortfolioEntry) *Portfolio {
	return &Portfolio{rows: append([]PortfolioEntry(nil), rows...)}
}

func (p *Portfolio) Entries() []PortfolioEntry {
	return append([]PortfolioEntry(nil), p.rows...)
}

func (p *Portfolio) Len() int { return len(p.rows) }

func (p *Portfolio) Append(e PortfolioEntry) int {
	p.rows = append(p.rows, e)
	return len(p.rows) - 1
}

func (p *Portfolio) Update(pos int, e PortfolioEntry) error {
	if pos < 0 || pos >= len(p.rows) {
		return fmt.Errorf("portfolio row %d: %w", pos+1, ErrNotFound)
	}
	p.rows[pos] = e
	return nil
}

func (p *Portfolio) Remove(pos int) error {
	if pos < 0 || pos >= len(p.rows) {
		return fmt.Errorf("portfolio row %d: %w", pos+1, ErrNotFound)
	}
	p.rows = append(p.rows[:pos], p.rows[pos+1:]...)
	return nil
}
