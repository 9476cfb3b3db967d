package bot

import (
	"strconv"
	"strings"

	"kopilka/internal/core"
)

const dateLayout = "2006-01-02"

// renderReport lays the weekly totals out as a monospace markdown table,
// one row per date.
func renderReport(totals []core.DayTotal) string {
	if len(totals) == 0 {
		return "No entries for last week"
	}

	rows := make([][2]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, [2]string{t.Date.Format(dateLayout), formatAmount(t.Sum)})
	}

	var b strings.Builder
	b.WriteString("Report for last week:\n\n")
	b.WriteString(markdownTable([2]string{"date", "amount"}, rows))
	return b.String()
}

// markdownTable renders a two-column table with padded cells:
//
//	| date       | amount |
//	| ---------- | ------ |
//	| 2024-06-01 | 15     |
func markdownTable(header [2]string, rows [][2]string) string {
	widths := [2]int{len(header[0]), len(header[1])}
	for _, row := range rows {
		for i := range widths {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells [2]string) {
		b.WriteString("| ")
		b.WriteString(pad(cells[0], widths[0]))
		b.WriteString(" | ")
		b.WriteString(pad(cells[1], widths[1]))
		b.WriteString(" |\n")
	}

	writeRow(header)
	writeRow([2]string{strings.Repeat("-", widths[0]), strings.Repeat("-", widths[1])})
	for _, row := range rows {
		writeRow(row)
	}

	return strings.TrimRight(b.String(), "\n")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// formatAmount renders a value without trailing zeros: 150 not 150.000000.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
