// Package tui draws the nexus map on a character grid and drives it with
// terminal mouse and key input.
package tui

import (
	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/interact"
)

// Grid holds the state id under the center of every cell, row major.
// Empty strings are cells outside every state.
type Grid struct {
	Cols, Rows int
	Region     core.Rect
	cells      []string
}

// CellCenter returns the surface position of the center of cell (col, row).
func CellCenter(col, row int) core.Pt {
	return core.Pt{X: float64(col) + 0.5, Y: float64(row) + 0.5}
}

// CellToLogical maps the center of a cell to logical coordinates for a
// grid of cols by rows cells showing region.
func CellToLogical(region core.Rect, cols, rows, col, row int) core.Pt {
	c := CellCenter(col, row)
	return core.Pt{
		X: region.X + c.X*region.W/float64(cols),
		Y: region.Y + c.Y*region.H/float64(rows),
	}
}

// LogicalToCell returns the cell showing logical point p, and whether it
// is on the grid.
func LogicalToCell(region core.Rect, cols, rows int, p core.Pt) (int, int, bool) {
	if region.W <= 0 || region.H <= 0 {
		return 0, 0, false
	}
	col := int((p.X - region.X) / region.W * float64(cols))
	row := int((p.Y - region.Y) / region.H * float64(rows))
	if p.X < region.X || p.Y < region.Y || col >= cols || row >= rows {
		return 0, 0, false
	}
	return col, row, true
}

// Rasterize samples hit at every cell center.
func Rasterize(hit *interact.HitRegion, region core.Rect, cols, rows int) *Grid {
	g := &Grid{Cols: cols, Rows: rows, Region: region}
	if cols <= 0 || rows <= 0 {
		return g
	}
	g.cells = make([]string, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if s, ok := hit.Resolve(CellToLogical(region, cols, rows, col, row)); ok {
				g.cells[row*cols+col] = s.ID
			}
		}
	}
	return g
}

// At returns the state id at a cell.
func (g *Grid) At(col, row int) string {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return ""
	}
	return g.cells[row*g.Cols+col]
}

// Find returns the first cell showing id.
func (g *Grid) Find(id string) (int, int, bool) {
	for i, c := range g.cells {
		if c == id {
			return i % g.Cols, i / g.Cols, true
		}
	}
	return 0, 0, false
}
