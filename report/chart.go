package report

import (
	"fmt"
	"unicode/utf16"
)

const (
	profitColor = "rgba(16, 185, 129, 0.7)"
	lossColor   = "rgba(239, 68, 68, 0.7)"
)

// Series is what a chart needs: aligned labels, values and colors.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// LabelSeries charts owner or type buckets, each label in its own color.
func LabelSeries(buckets []Bucket) Series {
	var s Series
	for _, b := range buckets {
		s.Labels = append(s.Labels, b.Key)
		s.Values = append(s.Values, b.PL)
		s.Colors = append(s.Colors, ColorFor(b.Key))
	}
	return s
}

// DailySeries charts daily bars green for profit and red for loss.
func DailySeries(days []DailyBucket) Series {
	var s Series
	for _, d := range days {
		s.Labels = append(s.Labels, d.Key)
		s.Values = append(s.Values, d.PL)
		s.Colors = append(s.Colors, signColor(d.PL))
	}
	return s
}

// TrendSeries charts months oldest first.
func TrendSeries(months []MonthBucket) Series {
	var s Series
	for _, m := range Trend(months) {
		s.Labels = append(s.Labels, m.Label)
		s.Values = append(s.Values, m.PL)
		s.Colors = append(s.Colors, signColor(m.PL))
	}
	return s
}

func signColor(v float64) string {
	if v >= 0 {
		return profitColor
	}
	return lossColor
}

// ColorFor derives a stable hsl color from a label so an owner keeps the
// same color across tables and charts.
func ColorFor(label string) string {
	if label == "" {
		return ""
	}
	var hash int64
	for _, c := range utf16.Encode([]rune(label)) {
		hash = int64(c) + (int64(int32(hash)<<5) - hash)
	}
	h := hash % 360
	if h < 0 {
		h = -h
	}
	return fmt.Sprintf("hsl(%d, 70%%, 60%%)", h)
}
