package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableView is a rounded go-pretty table. Columns without an explicit
// alignment are left aligned; caption, when set, is printed under the table.
type tableView struct {
	headers []string
	aligns  []columnAlignment
	rows    [][]string
	caption string
}

func newTableView(aligns []columnAlignment, headers ...string) *tableView {
	return &tableView{headers: headers, aligns: aligns}
}

func (v *tableView) add(cells ...string) {
	v.rows = append(v.rows, cells)
}

func (v *tableView) render() string {
	columns := len(v.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(v.headers, columns))
	for _, cells := range v.rows {
		tw.AppendRow(toRow(cells, columns))
	}

	configs := make([]table.ColumnConfig, columns)
	for i := range configs {
		align := text.AlignLeft
		if i < len(v.aligns) && v.aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)
	if v.caption != "" {
		tw.SetCaption(v.caption)
	}
	return tw.Render()
}

// toRow pads or truncates cells to exactly columns entries.
func toRow(cells []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
