package cmd

import (
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// writeTable prints rows as aligned columns with a styled header
func writeTable(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, h := range header {
		if i > 0 {
			io.WriteString(tw, "\t")
		}
		io.WriteString(tw, headerStyle.Render(h))
	}
	io.WriteString(tw, "\n")
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				io.WriteString(tw, "\t")
			}
			io.WriteString(tw, cell)
		}
		io.WriteString(tw, "\n")
	}
	tw.Flush()
}
