package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/stagehire/catalog-backend/internal/modules/catalog/specs"
)

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
			// Merge repeated section labels in the first column.
			AutoMerge: i == 0,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderGroups prints one line per row, keeping decoded order.
func renderGroups(groups []specs.DisplayGroup) string {
	rows := make([][]string, 0)
	for _, g := range groups {
		for _, r := range g.Rows {
			rows = append(rows, []string{g.SectionLabel, r.Label, r.Value})
		}
	}
	return renderTable([]string{"Section", "Label", "Value"}, rows)
}
