package grid

import (
	"github.com/1broseidon/tatami/internal/config"
)

const (
	// DefaultRows and DefaultCols are the fixed grid dimensions.
	DefaultRows = 8
	DefaultCols = 8
	// DefaultMargin is the pixel gap between cells and at the window edge.
	DefaultMargin = 4
)

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Cell identifies one grid cell by row and column (0-based).
type Cell struct {
	Row int
	Col int
}

// Grid describes the logical selection grid. It holds no pixel state; cell
// bounds are derived from whatever surface size the caller passes in.
type Grid struct {
	Rows   int
	Cols   int
	Margin int
}

// Default returns the 8x8 grid with 4px margins.
func Default() Grid {
	return Grid{Rows: DefaultRows, Cols: DefaultCols, Margin: DefaultMargin}
}

// FromConfig returns the default grid with the configured margin.
func FromConfig(cfg *config.Config) Grid {
	g := Default()
	if cfg != nil {
		g.Margin = cfg.Margin
	}
	return g
}

// CellSize computes the drawn cell dimensions for a surface of the given size.
//
// Margins: (cols + 1) * margin horizontally (one before each column, one after
// the last), and likewise vertically.
func (g Grid) CellSize(width, height int) (cellWidth, cellHeight int) {
	if g.Rows <= 0 || g.Cols <= 0 {
		return 0, 0
	}
	cellWidth = (width - (g.Cols+1)*g.Margin) / g.Cols
	cellHeight = (height - (g.Rows+1)*g.Margin) / g.Rows
	return cellWidth, cellHeight
}

// CellRect returns the on-surface bounds of a cell.
func (g Grid) CellRect(c Cell, width, height int) Rect {
	cellWidth, cellHeight := g.CellSize(width, height)
	return Rect{
		X:      g.Margin + c.Col*(cellWidth+g.Margin),
		Y:      g.Margin + c.Row*(cellHeight+g.Margin),
		Width:  cellWidth,
		Height: cellHeight,
	}
}

// Cells returns every cell in row-major order.
func (g Grid) Cells() []Cell {
	if g.Rows <= 0 || g.Cols <= 0 {
		return nil
	}
	cells := make([]Cell, 0, g.Rows*g.Cols)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}
	return cells
}

// ScreenCellRect maps a cell onto full-screen coordinates, with no margins.
//
// Edges are computed as index*size/count rather than index*(size/count) so the
// last row and column always end exactly at the screen edge.
func (g Grid) ScreenCellRect(c Cell, screenWidth, screenHeight int) Rect {
	left := c.Col * screenWidth / g.Cols
	top := c.Row * screenHeight / g.Rows
	right := (c.Col + 1) * screenWidth / g.Cols
	bottom := (c.Row + 1) * screenHeight / g.Rows
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// ApplyRegion resolves a preset region against the full screen.
func ApplyRegion(screen Rect, region config.Region) Rect {
	adjusted := screen

	switch region.Type {
	case config.RegionFull:
		// No change

	case config.RegionLeftHalf:
		adjusted.Width = screen.Width / 2

	case config.RegionRightHalf:
		adjusted.X = screen.X + screen.Width/2
		adjusted.Width = screen.Width / 2

	case config.RegionTopHalf:
		adjusted.Height = screen.Height / 2

	case config.RegionBottomHalf:
		adjusted.Y = screen.Y + screen.Height/2
		adjusted.Height = screen.Height / 2

	case config.RegionCustom:
		adjusted.X = screen.X + (screen.Width * region.XPercent / 100)
		adjusted.Y = screen.Y + (screen.Height * region.YPercent / 100)
		adjusted.Width = screen.Width * region.WidthPercent / 100
		adjusted.Height = screen.Height * region.HeightPercent / 100
	}

	if adjusted.Width < 1 {
		adjusted.Width = 1
	}
	if adjusted.Height < 1 {
		adjusted.Height = 1
	}

	return adjusted
}
