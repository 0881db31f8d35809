package journal

import "strings"

var (
	DefaultOwners = []string{"Owner 1", "Owner 2"}
	DefaultTypes  = []string{"Intraday", "Delivery", "F&O", "Currency", "Commodity"}
)

// Labels is a dropdown source: distinct, non-blank strings in insertion
// order. Removing a label never touches rows that still use it.
type Labels struct {
	items []string
}

// NewLabels builds a source from items, dropping blanks and duplicates.
func NewLabels(items []string) *Labels {
	return &Labels{items: NormalizeLabels(items)}
}

// NormalizeLabels trims, drops blanks and keeps the first of duplicates.
func NormalizeLabels(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// Add appends item if it is new and reports whether it did.
func (l *Labels) Add(item string) bool {
	item = strings.TrimSpace(item)
	if item == "" || l.Contains(item) {
		return false
	}
	l.items = append(l.items, item)
	return true
}

// Remove drops item and reports whether it was present.
func (l *Labels) Remove(item string) bool {
	item = strings.TrimSpace(item)
	for i, it := range l.items {
		if it == item {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Labels) Contains(item string) bool {
	for _, it := range l.items {
		if it == item {
			return true
		}
	}
	return false
}

// List returns a copy in insertion order.
func (l *Labels) List() []string {
	return append([]string(nil), l.items...)
}

// Match lists labels containing text, case-insensitively. Empty text
// matches everything.
func (l *Labels) Match(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	var out []string
	for _, it := range l.items {
		if strings.Contains(strings.ToLower(it), text) {
			out = append(out, it)
		}
	}
	return out
}
