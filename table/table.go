// Package table renders fixed-width ASCII tables for metric reports.
package table

import (
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Table is a renderable metric table. The footer row, when present, is
// separated from the data rows by its own border.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Footer []string
}

// Render produces the table string, with the title on its own line when
// set.
func (t Table) Render() string {
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(t.Title)
		sb.WriteString("\n")
	}

	w := tablewriter.NewWriter(&sb)
	w.SetAutoFormatHeaders(false)
	w.SetAlignment(tablewriter.ALIGN_LEFT)
	w.SetHeader(t.Header)
	w.AppendBulk(t.Rows)
	if len(t.Footer) > 0 {
		w.SetFooter(t.Footer)
	}
	w.Render()

	return sb.String()
}
