// journal/journal.go
package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/pnlreport/dates"
)

var ErrNotFound = errors.New("not found")

// Entry is one row of the trade journal. Every field is kept as the text the
// user typed; consumers re-parse dates and amounts on every read.
type Entry struct {
	ID            string     `json:"id,omitempty"`
	Date          string     `json:"date"`
	Owner         string     `json:"owner"`
	Type          string     `json:"type"`
	ExitDate      string     `json:"exitDate"`
	PL            string     `json:"pl"`
	Remark        string     `json:"remark"`
	LastEdited    *time.Time `json:"lastEdited"`
	LastEditedMsg *string    `json:"lastEditedMsg"`
}

// RecycleEntry is a deleted row waiting in the bin.
type RecycleEntry struct {
	Entry
	DeletedAt time.Time `json:"deletedAt"`
}

// UnmarshalJSON reads a row leniently, the way a spreadsheet-backed endpoint
// sends it: numbers and booleans become their text, a blank or unreadable
// lastEdited becomes nil, and fields of any other shape read as blank.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = Entry{
		ID:       jsonText(raw["id"]),
		Date:     jsonText(raw["date"]),
		Owner:    jsonText(raw["owner"]),
		Type:     jsonText(raw["type"]),
		ExitDate: jsonText(raw["exitDate"]),
		PL:       jsonText(raw["pl"]),
		Remark:   jsonText(raw["remark"]),
	}
	if s := strings.TrimSpace(jsonText(raw["lastEdited"])); s != "" {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			e.LastEdited = &t
		}
	}
	if msg := jsonText(raw["lastEditedMsg"]); msg != "" {
		e.LastEditedMsg = &msg
	}
	return nil
}

// UnmarshalJSON keeps the lenient row decoding of Entry and adds the
// deletion time.
func (r *RecycleEntry) UnmarshalJSON(b []byte) error {
	if err := r.Entry.UnmarshalJSON(b); err != nil {
		return err
	}
	var extra struct {
		DeletedAt time.Time `json:"deletedAt"`
	}
	if err := json.Unmarshal(b, &extra); err != nil {
		return err
	}
	r.DeletedAt = extra.DeletedAt
	return nil
}

func jsonText(m json.RawMessage) string {
	m = bytes.TrimSpace(m)
	if len(m) == 0 {
		return ""
	}
	switch m[0] {
	case '"':
		var s string
		if err := json.Unmarshal(m, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f':
		return string(m)
	case 'n', '{', '[':
		return ""
	default:
		return string(m)
	}
}

// Amount returns the parsed P/L.
func (e Entry) Amount() (float64, bool) { return ParseAmount(e.PL) }

// Exit returns the parsed exit date.
func (e Entry) Exit() (time.Time, bool) { return dates.Parse(e.ExitDate) }

// Entered returns the parsed entry date.
func (e Entry) Entered() (time.Time, bool) { return dates.Parse(e.Date) }

// Realized reports whether the row counts toward aggregates: both the exit
// date and the P/L must parse.
func (e Entry) Realized() bool {
	if _, ok := e.Amount(); !ok {
		return false
	}
	_, ok := e.Exit()
	return ok
}

// EditLabel is the text shown next to a row about its last edit.
func (e Entry) EditLabel() string {
	if e.LastEditedMsg != nil && *e.LastEditedMsg != "" {
		if strings.HasPrefix(*e.LastEditedMsg, "Edited") {
			return *e.LastEditedMsg
		}
		return "Edited: " + *e.LastEditedMsg
	}
	if e.LastEdited != nil {
		// rows saved before the column name was recorded
		return "Edited: " + stampTime(*e.LastEdited)
	}
	return ""
}

// ParseAmount reads a P/L cell. Like a spreadsheet it accepts a leading
// numeric prefix ("12.5 approx" is 12.5) and rejects text with none.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, finite(v)
	}

	end := numericPrefix(s)
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, finite(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// numericPrefix returns the length of the longest prefix of s shaped like
// [+-]digits[.digits][e[+-]digits].
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// stampTime renders the short dd/mm HH:MM form used in edit labels.
func stampTime(t time.Time) string {
	return t.Local().Format("02/01 15:04")
}
