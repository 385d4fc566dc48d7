package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/alnah/go-inspect2pdf/internal/hints"
)

// printMediaFailures renders one table row per media reference that was
// replaced by a placeholder. Prints nothing when every image resolved.
func printMediaFailures(w io.Writer, results []ConversionResult) {
	rows := mediaFailureRows(results)
	if len(rows) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Media placeholders")
	tw.AppendHeader(table.Row{"Record", "Section", "Title", "URL", "Error"})
	for _, r := range rows {
		tw.AppendRow(r)
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	fmt.Fprintln(w)
	fmt.Fprintln(w, tw.Render())
	fmt.Fprintln(w, hints.ForMediaFailures()[1:])
}

// mediaFailureRows flattens the failures of successful conversions.
// Sections are numbered from 1 as in the rendered legends.
func mediaFailureRows(results []ConversionResult) []table.Row {
	var rows []table.Row
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for _, f := range r.FailedMedia {
			msg := ""
			if f.Err != nil {
				msg = f.Err.Error()
			}
			rows = append(rows, table.Row{r.InputPath, strconv.Itoa(f.Section + 1), f.Title, f.URL, msg})
		}
	}
	return rows
}
