// Package stats derives trade statistics (win rate, profit factor,
// expectancy, drawdown, streaks) from a chronological sequence of realized
// trades. It knows nothing about windows: callers pre-filter the sequence.
package stats

import (
	"math"
	"sort"
	"time"
)

var (
	// Infinite marks a ratio whose denominator is zero while the numerator
	// is positive (profit factor, recovery factor).
	Infinite = math.Inf(1)
)

// LargeRatio stands in for a reward:risk ratio with no losses to divide by.
const LargeRatio = 999.0

// Trade is one realized trade.
type Trade struct {
	Date  time.Time
	PL    float64
	Owner string
	Type  string
}

// Streak is a run of consecutive wins or losses.
type Streak struct {
	Length int
	Start  time.Time
	End    time.Time
}

type Stats struct {
	Trades int
	Wins   int
	Losses int

	NetPL     float64
	GrossWin  float64
	GrossLoss float64 // absolute value

	WinRate      float64 // 0..1
	LossRate     float64
	ProfitFactor float64
	AvgWin       float64
	AvgLoss      float64 // absolute value
	Expectancy   float64
	RewardRisk   float64

	MaxDrawdown     float64
	MaxDrawdownDate time.Time
	RecoveryFactor  float64

	BestWinStreak   Streak
	WorstLossStreak Streak

	// nil when the sequence has no winning or no losing trade
	LargestWin  *Trade
	LargestLoss *Trade
}

// SortChronological stably orders trades by date.
func SortChronological(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool { return trades[i].Date.Before(trades[j].Date) })
}

// ProfitFactor is grossWin/grossLoss, Infinite when there are only wins
// and 0 when there is nothing at all.
func ProfitFactor(grossWin, grossLoss float64) float64 {
	switch {
	case grossLoss > 0:
		return grossWin / grossLoss
	case grossWin > 0:
		return Infinite
	}
	return 0
}

// RewardRisk is avgWin/avgLoss with LargeRatio standing in for a zero
// average loss.
func RewardRisk(avgWin, avgLoss float64) float64 {
	switch {
	case avgLoss > 0:
		return avgWin / avgLoss
	case avgWin > 0:
		return LargeRatio
	}
	return 0
}

// Calculate walks trades, which must already be in chronological order.
func Calculate(trades []Trade) Stats {
	var s Stats
	s.Trades = len(trades)
	if s.Trades == 0 {
		return s
	}

	var (
		running, peak float64
		curWin        Streak
		curLoss       Streak
	)

	for i := range trades {
		t := trades[i]
		s.NetPL += t.PL

		switch {
		case t.PL > 0:
			s.Wins++
			s.GrossWin += t.PL
			if s.LargestWin == nil || t.PL > s.LargestWin.PL {
				s.LargestWin = &trades[i]
			}
		case t.PL < 0:
			s.Losses++
			s.GrossLoss += -t.PL
			if s.LargestLoss == nil || t.PL < s.LargestLoss.PL {
				s.LargestLoss = &trades[i]
			}
		}

		// equity starts at zero, so an opening loss is already a drawdown
		running += t.PL
		if running > peak {
			peak = running
		}
		if dd := peak - running; dd > s.MaxDrawdown {
			s.MaxDrawdown = dd
			s.MaxDrawdownDate = t.Date
		}

		switch {
		case t.PL > 0:
			curLoss = Streak{}
			extend(&curWin, t.Date)
			if curWin.Length > s.BestWinStreak.Length {
				s.BestWinStreak = curWin
			}
		case t.PL < 0:
			curWin = Streak{}
			extend(&curLoss, t.Date)
			if curLoss.Length > s.WorstLossStreak.Length {
				s.WorstLossStreak = curLoss
			}
		default:
			curWin, curLoss = Streak{}, Streak{}
		}
	}

	s.WinRate = float64(s.Wins) / float64(s.Trades)
	s.LossRate = 1 - s.WinRate
	s.ProfitFactor = ProfitFactor(s.GrossWin, s.GrossLoss)
	if s.Wins > 0 {
		s.AvgWin = s.GrossWin / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	s.Expectancy = s.WinRate*s.AvgWin - s.LossRate*s.AvgLoss
	s.RewardRisk = RewardRisk(s.AvgWin, s.AvgLoss)

	switch {
	case s.MaxDrawdown > 0:
		s.RecoveryFactor = s.NetPL / s.MaxDrawdown
	case s.NetPL > 0:
		s.RecoveryFactor = Infinite
	}

	if s.LargestWin != nil {
		w := *s.LargestWin
		s.LargestWin = &w
	}
	if s.LargestLoss != nil {
		l := *s.LargestLoss
		s.LargestLoss = &l
	}
	return s
}

func extend(s *Streak, d time.Time) {
	if s.Length == 0 {
		s.Start = d
	}
	s.Length++
	s.End = d
}
