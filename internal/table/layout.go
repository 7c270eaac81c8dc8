package table

// Rect is a measured rectangle in surface pixels.
type Rect struct {
	Top, Left, Width, Height float64
}

// Bottom returns Top + Height.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Row is the vertical extent of a table row.
type Row struct {
	Top, Height float64
}

// Layout is the measured geometry of a status table. Cells is indexed
// [row][col]. It is read-only input to the renderer and must be measured
// again whenever the surface width changes.
type Layout struct {
	Rows  []Row
	Cells [][]Rect
}

// Cell returns the rectangle at row, col.
func (l Layout) Cell(row, col int) (Rect, bool) {
	if row < 0 || row >= len(l.Cells) {
		return Rect{}, false
	}
	cells := l.Cells[row]
	if col < 0 || col >= len(cells) {
		return Rect{}, false
	}
	return cells[col], true
}

// Bottom returns the largest bottom edge of any row, or 0 for an empty layout.
func (l Layout) Bottom() float64 {
	bottom := 0.0
	for _, r := range l.Rows {
		if b := r.Top + r.Height; b > bottom {
			bottom = b
		}
	}
	for _, row := range l.Cells {
		for _, c := range row {
			if c.Bottom() > bottom {
				bottom = c.Bottom()
			}
		}
	}
	return bottom
}

// Scale returns a copy of l with every coordinate multiplied by f.
func (l Layout) Scale(f float64) Layout {
	out := Layout{
		Rows:  make([]Row, len(l.Rows)),
		Cells: make([][]Rect, len(l.Cells)),
	}
	for i, r := range l.Rows {
		out.Rows[i] = Row{Top: r.Top * f, Height: r.Height * f}
	}
	for i, row := range l.Cells {
		out.Cells[i] = make([]Rect, len(row))
		for j, c := range row {
			out.Cells[i][j] = Rect{Top: c.Top * f, Left: c.Left * f, Width: c.Width * f, Height: c.Height * f}
		}
	}
	return out
}
