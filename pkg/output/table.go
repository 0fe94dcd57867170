package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sonemaro/linecount/pkg/logger"
	"github.com/sonemaro/linecount/pkg/tally"
)

const (
	title         = "Code Statistics by File Type:"
	separatorSize = 80
	headerFormat  = "%-10s %-8s %-8s %-8s %-8s %-8s"
	rowFormat     = "%-10s %-8d %-8d %-8d %-8d %-8d"
)

var separator = strings.Repeat("-", separatorSize)

func (f *formatter) formatTable(t *tally.Tally) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(f.emphasize(title))
	b.WriteString("\n")
	b.WriteString(separator + "\n")
	b.WriteString(fmt.Sprintf(headerFormat, "Extension", "Files", "Total", "Code", "Comment", "Blank"))
	b.WriteString("\n")
	b.WriteString(separator + "\n")

	rows := t.Rows()
	for _, row := range rows {
		f.log.WithFields(logger.Fields{
			"ext":   row.Extension,
			"files": row.Files,
		}).Trace("Formatting row")

		b.WriteString(formatRow(row.Extension, row.ExtensionStats))
		b.WriteString("\n")
	}

	total := t.GrandTotal()
	b.WriteString(separator + "\n")
	b.WriteString(f.emphasize(formatRow("TOTAL", total)))
	b.WriteString("\n")

	f.log.WithFields(logger.Fields{
		"rows":  len(rows),
		"files": total.Files,
		"lines": total.Total,
	}).Debug("Table formatted")

	return b.String()
}

func formatRow(label string, s tally.ExtensionStats) string {
	return fmt.Sprintf(rowFormat, label, s.Files, s.Total, s.Code, s.Comment, s.Blank)
}

func (f *formatter) emphasize(s string) string {
	if !f.config.WithColors {
		return s
	}

	f.log.Debug("Applying color formatting")
	c := color.New(color.Bold)
	c.EnableColor()
	return c.Sprint(s)
}
