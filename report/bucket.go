package report

import (
	"sort"

	"github.com/rustyeddy/pnlreport/stats"
)

// Bucket accumulates trades sharing a key.
type Bucket struct {
	Key string

	// set on owner×type buckets only
	Owner string
	Type  string

	PL        float64
	Trades    int
	Wins      int
	Losses    int
	GrossWin  float64
	GrossLoss float64 // absolute value
}

func (b *Bucket) add(pl float64) {
	b.PL += pl
	b.Trades++
	switch {
	case pl > 0:
		b.Wins++
		b.GrossWin += pl
	case pl < 0:
		b.Losses++
		b.GrossLoss += -pl
	}
}

// WinRate is wins/trades, 0 for an empty bucket.
func (b Bucket) WinRate() float64 {
	if b.Trades == 0 {
		return 0
	}
	return float64(b.Wins) / float64(b.Trades)
}

// RewardRisk is average win over average loss.
func (b Bucket) RewardRisk() float64 {
	var avgWin, avgLoss float64
	if b.Wins > 0 {
		avgWin = b.GrossWin / float64(b.Wins)
	}
	if b.Losses > 0 {
		avgLoss = b.GrossLoss / float64(b.Losses)
	}
	return stats.RewardRisk(avgWin, avgLoss)
}

func (b Bucket) ProfitFactor() float64 {
	return stats.ProfitFactor(b.GrossWin, b.GrossLoss)
}

// grouper keeps buckets in first-seen order so ties stay stable.
type grouper struct {
	index   map[string]int
	buckets []Bucket
}

func newGrouper() *grouper {
	return &grouper{index: make(map[string]int)}
}

func (g *grouper) bucket(key string) *Bucket {
	i, ok := g.index[key]
	if !ok {
		i = len(g.buckets)
		g.index[key] = i
		g.buckets = append(g.buckets, Bucket{Key: key})
	}
	return &g.buckets[i]
}

// byPL returns the buckets ordered by P/L, highest first.
func (g *grouper) byPL() []Bucket {
	out := append([]Bucket(nil), g.buckets...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PL > out[j].PL })
	return out
}

// byKey returns the buckets ordered by key, ascending.
func (g *grouper) byKey() []Bucket {
	out := append([]Bucket(nil), g.buckets...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
