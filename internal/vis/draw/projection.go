// Package draw provides rendering functions for the map.
package draw

import (
	"gioui.org/f32"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// Projection maps a logical region onto a surface of the given size.
type Projection struct {
	Region  core.Rect
	Surface core.Size
}

// Scale returns surface units per logical unit on each axis.
func (p Projection) Scale() (float32, float32) {
	if p.Region.W <= 0 || p.Region.H <= 0 {
		return 1, 1
	}
	return float32(p.Surface.W / p.Region.W), float32(p.Surface.H / p.Region.H)
}

// Point converts a logical point to surface coordinates.
func (p Projection) Point(pt core.Pt) f32.Point {
	sx, sy := p.Scale()
	return f32.Pt(float32(pt.X-p.Region.X)*sx, float32(pt.Y-p.Region.Y)*sy)
}

// Logical converts a surface point back to logical coordinates.
func (p Projection) Logical(pt f32.Point) core.Pt {
	sx, sy := p.Scale()
	return core.Pt{X: p.Region.X + float64(pt.X/sx), Y: p.Region.Y + float64(pt.Y/sy)}
}

// Visible reports whether a logical bounding box overlaps the region.
func (p Projection) Visible(minX, minY, maxX, maxY float64) bool {
	r := p.Region
	return maxX >= r.X && minX <= r.X+r.W && maxY >= r.Y && minY <= r.Y+r.H
}
