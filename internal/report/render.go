package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Render prints the sections as terminal tables with a colored summary
// line per section.
func Render(w io.Writer, sections []Section) {
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, color.New(color.Bold).Sprint(s.Label))

		if s.Err != "" {
			fmt.Fprintln(w, color.RedString("  failed: %s", s.Err))
			continue
		}
		if s.AllClear {
			fmt.Fprintln(w, color.GreenString("  all clear"))
			continue
		}

		table := tablewriter.NewWriter(w)
		table.SetHeader(s.Columns)
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, row := range s.Rows {
			table.Append(row)
		}
		table.Render()

		fmt.Fprintln(w, color.YellowString("  %d found", s.Count))
	}
}
