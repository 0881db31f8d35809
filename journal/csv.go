// journal/csv.go
package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var csvHeader = []string{"date", "owner", "type", "exit_date", "pl", "remark", "last_edited", "last_edited_msg"}

// WriteCSV exports rows in table order with a header line.
func WriteCSV(w io.Writer, rows []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range rows {
		var edited, msg string
		if e.LastEdited != nil {
			edited = e.LastEdited.UTC().Format(time.RFC3339)
		}
		if e.LastEditedMsg != nil {
			msg = *e.LastEditedMsg
		}
		if err := cw.Write([]string{e.Date, e.Owner, e.Type, e.ExitDate, e.PL, e.Remark, edited, msg}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV imports rows written by WriteCSV. Columns are matched by header
// name, so a sheet with fewer or reordered columns still loads; missing
// columns read as empty.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["pl"]; !ok {
		return nil, fmt.Errorf("csv header has no pl column")
	}

	var out []Entry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		e := Entry{
			Date:     get("date"),
			Owner:    get("owner"),
			Type:     get("type"),
			ExitDate: get("exit_date"),
			PL:       get("pl"),
			Remark:   get("remark"),
		}
		if s := get("last_edited"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				e.LastEdited = &t
			}
		}
		if s := get("last_edited_msg"); s != "" {
			e.LastEditedMsg = &s
		}
		out = append(out, e)
	}
	return out, nil
}
