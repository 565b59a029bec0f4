package grid

import "errors"

// ErrEmptySelection is returned when a drag covered no cells.
var ErrEmptySelection = errors.New("no cells selected")

// Span returns the rectangle spanned by two drag points, independent of the
// direction of the drag.
func Span(ax, ay, bx, by int) Rect {
	left, right := ax, bx
	if bx < ax {
		left, right = bx, ax
	}
	top, bottom := ay, by
	if by < ay {
		top, bottom = by, ay
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Selected reports whether the drag rectangle strictly overlaps the drawn
// bounds of the cell on a surface of the given size.
func (g Grid) Selected(c Cell, drag Rect, width, height int) bool {
	return overlaps(drag, g.CellRect(c, width, height))
}

// Selection returns the cells covered by drag, in row-major order.
func (g Grid) Selection(drag Rect, width, height int) []Cell {
	var selected []Cell
	for _, c := range g.Cells() {
		if g.Selected(c, drag, width, height) {
			selected = append(selected, c)
		}
	}
	return selected
}

// Resolve converts a row-major cell selection into a full-screen rectangle.
//
// The first cell supplies the top-left corner and the last cell the
// bottom-right corner; both are mapped through the screen cell size, not the
// margin-adjusted overlay cell size.
func (g Grid) Resolve(cells []Cell, screenWidth, screenHeight int) (Rect, error) {
	if len(cells) == 0 {
		return Rect{}, ErrEmptySelection
	}

	topLeft := g.ScreenCellRect(cells[0], screenWidth, screenHeight)
	bottomRight := g.ScreenCellRect(cells[len(cells)-1], screenWidth, screenHeight)

	return Rect{
		X:      topLeft.X,
		Y:      topLeft.Y,
		Width:  bottomRight.Right() - topLeft.X,
		Height: bottomRight.Bottom() - topLeft.Y,
	}, nil
}

// CellsIn returns the cells whose full-screen bounds overlap r, in row-major
// order. It is the inverse of Resolve for rectangles aligned to screen cells.
func (g Grid) CellsIn(r Rect, screenWidth, screenHeight int) []Cell {
	var cells []Cell
	for _, c := range g.Cells() {
		if overlaps(r, g.ScreenCellRect(c, screenWidth, screenHeight)) {
			cells = append(cells, c)
		}
	}
	return cells
}

// overlaps applies the open-interval test on both axes. A zero-size drag
// still selects the cell it lies strictly inside.
func overlaps(drag, cell Rect) bool {
	return drag.X < cell.Right() &&
		drag.Right() > cell.X &&
		drag.Y < cell.Bottom() &&
		drag.Bottom() > cell.Y
}
