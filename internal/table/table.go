// Package table builds the auxiliary status table that sits under the
// pipeline diagram and measures its geometry.
//
// The table has one column per stage and one row per status slot. Column j,
// row i holds Stages[j].Statuses[i], or an empty cell when that stage has
// fewer statuses. The renderer positions bubbles from the measured Layout.
package table

import (
	"github.com/waabox/stageview/internal/domain"
)

// Cell is one slot of the status table.
type Cell struct {
	Name  string
	State domain.State
	Empty bool
}

// Table is the status grid for one pipeline snapshot.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// Build lays the pipeline statuses out as a grid.
func Build(p domain.Pipeline) Table {
	t := Table{Columns: make([]string, len(p.Stages))}
	for j, s := range p.Stages {
		t.Columns[j] = s.Name
	}
	rows := p.MaxStatuses()
	t.Rows = make([][]Cell, rows)
	for i := 0; i < rows; i++ {
		t.Rows[i] = make([]Cell, len(p.Stages))
		for j, s := range p.Stages {
			if i >= len(s.Statuses) {
				t.Rows[i][j] = Cell{Empty: true}
				continue
			}
			st := s.Statuses[i]
			t.Rows[i][j] = Cell{Name: st.Name, State: st.State}
		}
	}
	return t
}

// Metrics drives Measure.
type Metrics struct {
	// Top is the y of the table's first row on the surface.
	Top float64
	// RowHeight is the height of every row.
	RowHeight float64
}

// Measure computes the pixel geometry of t on a surface width pixels wide.
// Columns share the width equally.
func (t Table) Measure(width float64, m Metrics) Layout {
	cols := len(t.Columns)
	l := Layout{
		Rows:  make([]Row, len(t.Rows)),
		Cells: make([][]Rect, len(t.Rows)),
	}
	colWidth := 0.0
	if cols > 0 {
		colWidth = width / float64(cols)
	}
	for i := range t.Rows {
		top := m.Top + float64(i)*m.RowHeight
		l.Rows[i] = Row{Top: top, Height: m.RowHeight}
		l.Cells[i] = make([]Rect, cols)
		for j := 0; j < cols; j++ {
			l.Cells[i][j] = Rect{
				Top:    top,
				Left:   float64(j) * colWidth,
				Width:  colWidth,
				Height: m.RowHeight,
			}
		}
	}
	return l
}
