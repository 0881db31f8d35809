package journal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"120.5", 120.5, true},
		{" -42 ", -42, true},
		{"+3", 3, true},
		{".5", 0.5, true},
		{"1e3", 1000, true},
		{"12.5 approx", 12.5, true},
		{"7abc", 7, true},
		{"", 0, false},
		{"--", 0, false},
		{"abc", 0, false},
		{".", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestEntryRealized(t *testing.T) {
	t.Parallel()

	assert.True(t, Entry{ExitDate: "2026-02-15", PL: "10"}.Realized())
	assert.False(t, Entry{ExitDate: "", PL: "10"}.Realized())
	assert.False(t, Entry{ExitDate: "2026-02-15", PL: ""}.Realized())
	assert.False(t, Entry{ExitDate: "soon", PL: "10"}.Realized())
}

func TestEditLabelLegacyStamp(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 2, 3, 9, 7, 0, 0, time.Local)
	e := Entry{LastEdited: &ts}
	assert.Equal(t, "Edited: 03/02 09:07", e.EditLabel())

	msg := "Edited: 01/01 00:00"
	e.LastEditedMsg = &msg
	assert.Equal(t, msg, e.EditLabel())

	assert.Equal(t, "", Entry{}.EditLabel())
}

func TestEntryUnmarshalLenient(t *testing.T) {
	t.Parallel()

	var e Entry
	err := json.Unmarshal([]byte(`{"id":"a","pl":7,"exitDate":"2026-03-01","lastEdited":"","lastEditedMsg":null,"owner":true}`), &e)
	require.NoError(t, err)
	assert.Equal(t, "a", e.ID)
	assert.Equal(t, "7", e.PL)
	assert.Equal(t, "true", e.Owner)
	assert.Nil(t, e.LastEdited)
	assert.Nil(t, e.LastEditedMsg)

	var re RecycleEntry
	err = json.Unmarshal([]byte(`{"owner":"Bob","pl":"1","deletedAt":"2026-03-02T09:00:00Z"}`), &re)
	require.NoError(t, err)
	assert.Equal(t, "Bob", re.Owner)
	assert.Equal(t, 2, re.DeletedAt.Day())

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &e))
}
