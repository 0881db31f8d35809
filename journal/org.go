package journal

import (
	"fmt"
	"strings"
)

// FormatEntryOrg renders a row as an Org-mode block for pasting into a
// notes file. Structured facts go into the PROPERTIES drawer; the review
// heading is left for the reader.
func FormatEntryOrg(e Entry) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", orDash(e.Owner), orDash(e.Type), shortID(e.ID))

	pl := "--"
	if v, ok := e.Amount(); ok {
		pl = fmt.Sprintf("%.2f", v)
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", e.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", orDash(e.Date)))
	b.WriteString(fmt.Sprintf(":OWNER: %s\n", strings.TrimSpace(e.Owner)))
	b.WriteString(fmt.Sprintf(":TYPE: %s\n", strings.TrimSpace(e.Type)))
	b.WriteString(fmt.Sprintf(":EXIT_DATE: %s\n", orDash(e.ExitDate)))
	b.WriteString(fmt.Sprintf(":PL: %s\n", pl))
	if label := e.EditLabel(); label != "" {
		b.WriteString(fmt.Sprintf(":EDITED: %s\n", label))
	}
	b.WriteString(":END:\n")
	if e.Remark != "" {
		b.WriteString("\n")
		b.WriteString(e.Remark)
		b.WriteString("\n")
	}
	b.WriteString("\n*** Review\n- \n")

	return b.String()
}

// FormatEntriesOrg renders multiple rows separated by blank lines.
func FormatEntriesOrg(rows []Entry) string {
	var b strings.Builder
	for i, e := range rows {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatEntryOrg(e))
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "--"
	}
	return s
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
