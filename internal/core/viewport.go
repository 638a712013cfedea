package core

// Viewport maps the logical play area (pixels) onto a block of screen cells.
// The play area occupies the screen below the first Top rows, which are left
// for the HUD.
type Viewport struct {
	AreaW, AreaH float64 // Play area size in pixels
	Cols, Rows   int     // Cells available to the play area
	Top          int     // First screen row of the play area
}

// NewViewport creates a viewport for a screen of cols x rows cells with
// hudRows rows reserved at the top.
func NewViewport(areaW, areaH float64, cols, rows, hudRows int) Viewport {
	playRows := rows - hudRows
	if playRows < 1 {
		playRows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return Viewport{
		AreaW: areaW,
		AreaH: areaH,
		Cols:  cols,
		Rows:  playRows,
		Top:   hudRows,
	}
}

// CellW returns the width of one cell in pixels.
func (v Viewport) CellW() float64 {
	return v.AreaW / float64(v.Cols)
}

// CellH returns the height of one cell in pixels.
func (v Viewport) CellH() float64 {
	return v.AreaH / float64(v.Rows)
}

// ToCell converts a pixel position to a screen cell.
func (v Viewport) ToCell(px, py float64) (int, int) {
	col := int(px / v.CellW())
	row := int(py/v.CellH()) + v.Top
	if px < 0 {
		col--
	}
	if py < 0 {
		row--
	}
	return col, row
}

// ToPixel converts a screen cell to the pixel at the cell's center.
// ok is false when the cell lies outside the play area.
func (v Viewport) ToPixel(col, row int) (px, py float64, ok bool) {
	r := row - v.Top
	if col < 0 || col >= v.Cols || r < 0 || r >= v.Rows {
		return 0, 0, false
	}
	px = (float64(col) + 0.5) * v.CellW()
	py = (float64(r) + 0.5) * v.CellH()
	return px, py, true
}

// BoxToRect converts a pixel box to the screen cells it covers.
// Every non-empty box covers at least one cell.
func (v Viewport) BoxToRect(b Box) Rect {
	x0, y0 := v.ToCell(b.Left, b.Top)
	x1, y1 := v.ToCell(b.Right, b.Bottom)
	w := x1 - x0
	h := y1 - y0
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return NewRect(x0, y0, w, h)
}

// HUDRows is the number of screen rows above the play area.
const HUDRows = 2
