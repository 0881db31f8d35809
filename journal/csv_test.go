package journal

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	header, err := csv.NewReader(strings.NewReader(buf.String())).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "owner", "type", "exit_date", "pl", "remark", "last_edited", "last_edited_msg"}, header)
}

func TestCSVExportImport(t *testing.T) {
	t.Parallel()

	edited := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	msg := "Owner: 02/01 03:04"
	rows := []Entry{
		{Date: "2026-01-01", Owner: "Alice", Type: "Intraday", ExitDate: "2026-01-02", PL: "-12.5", Remark: "stop, hit",
			LastEdited: &edited, LastEditedMsg: &msg},
		{Date: "2026-01-03", Owner: "Bob"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "stop, hit", got[0].Remark)
	assert.Equal(t, "-12.5", got[0].PL)
	require.NotNil(t, got[0].LastEdited)
	assert.True(t, edited.Equal(*got[0].LastEdited))
	assert.Equal(t, msg, *got[0].LastEditedMsg)
	assert.Nil(t, got[1].LastEdited)
	assert.Equal(t, "", got[1].PL)
}

func TestReadCSVReorderedColumns(t *testing.T) {
	t.Parallel()

	in := "PL,Owner,date\n10,Alice,2026-03-01\n5\n"
	got, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Entry{Date: "2026-03-01", Owner: "Alice", PL: "10"}, got[0])
	assert.Equal(t, Entry{PL: "5"}, got[1])
}

func TestReadCSVRequiresPL(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("owner,date\nA,2026-01-01\n"))
	assert.Error(t, err)

	got, err := ReadCSV(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, got)
}
