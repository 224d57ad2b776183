// Package interact handles user interactions like pan, zoom, and selection.
package interact

import (
	"math"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// Viewport owns the zoom level and the visible region of the map.
//
// Every mutation goes through the clamping logic so the region always has
// size space/zoom and lies inside the space. The region is translated to
// satisfy bounds, never resized.
type Viewport struct {
	space  core.Size
	levels core.ZoomLevels

	zoom   float64
	region core.Rect
	focal  core.Pt

	animations bool // transitions allowed
	animatable bool // last change may be interpolated
	revision   uint64
}

// NewViewport creates a viewport at the minimum zoom level.
// An invalid level sequence falls back to core.DefaultZoomLevels.
func NewViewport(space core.Size, levels core.ZoomLevels) *Viewport {
	if levels.Validate() != nil {
		levels = core.DefaultZoomLevels
	}
	v := &Viewport{
		space:      space,
		levels:     levels,
		animations: true,
	}
	v.zoom = levels.Min()
	v.region = v.fit(v.zoom, core.Pt{X: space.W / 2, Y: space.H / 2})
	v.focal = v.region.Center()
	return v
}

// Region returns the visible region in logical coordinates.
func (v *Viewport) Region() core.Rect { return v.region }

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Levels returns the allowed zoom levels.
func (v *Viewport) Levels() core.ZoomLevels { return v.levels }

// Space returns the logical coordinate space.
func (v *Viewport) Space() core.Size { return v.space }

// Focal returns the point the next focal-less zoom will center on.
func (v *Viewport) Focal() core.Pt { return v.focal }

// Animatable reports whether the last change may be rendered as a transition.
func (v *Viewport) Animatable() bool { return v.animatable }

// Revision increments on every change to the region.
func (v *Viewport) Revision() uint64 { return v.revision }

// SetAnimations enables or disables animated transitions for later changes.
func (v *Viewport) SetAnimations(enabled bool) { v.animations = enabled }

// AtMin reports whether the viewport is at the minimum zoom level.
func (v *Viewport) AtMin() bool { return v.zoom <= v.levels.Min() }

// SetZoom zooms around the recorded focal point.
func (v *Viewport) SetZoom(level float64) bool {
	return v.SetZoomAt(level, v.focal)
}

// SetZoomAt changes the zoom level and centers the region on focal,
// clamped into the space. A non-finite focal falls back to the recorded
// one. It reports whether anything changed.
func (v *Viewport) SetZoomAt(level float64, focal core.Pt) bool {
	if math.IsNaN(level) {
		return false
	}
	if !finite(focal.X) || !finite(focal.Y) {
		focal = v.focal
	}
	level = v.levels.Clamp(level)
	if level == v.zoom {
		return false
	}
	v.zoom = level
	v.apply(v.fit(level, focal), v.animations)
	return true
}

// ZoomIn steps to the next larger level.
func (v *Viewport) ZoomIn() bool {
	next := v.levels.Next(v.zoom)
	if next == v.zoom {
		return false
	}
	return v.SetZoom(next)
}

// ZoomOut steps to the next smaller level.
func (v *Viewport) ZoomOut() bool {
	prev := v.levels.Prev(v.zoom)
	if prev == v.zoom {
		return false
	}
	return v.SetZoom(prev)
}

// Reset returns to the minimum level showing the whole space.
func (v *Viewport) Reset() {
	v.zoom = v.levels.Min()
	v.apply(v.fit(v.zoom, core.Pt{X: v.space.W / 2, Y: v.space.H / 2}), v.animations)
}

// PanBy translates the region by a logical delta.
func (v *Viewport) PanBy(dx, dy float64) bool {
	return v.PanTo(core.Pt{X: v.region.X + dx, Y: v.region.Y + dy})
}

// PanTo moves the region origin, clamped into the space. Pans are never
// animated.
func (v *Viewport) PanTo(origin core.Pt) bool {
	if v.AtMin() || math.IsNaN(origin.X) || math.IsNaN(origin.Y) {
		return false
	}
	r := v.clamp(core.Rect{X: origin.X, Y: origin.Y, W: v.region.W, H: v.region.H})
	if r == v.region {
		return false
	}
	v.apply(r, false)
	return true
}

// ToLogical converts a point on a rendered surface of the given size to
// logical coordinates.
func (v *Viewport) ToLogical(p core.Pt, surface core.Size) core.Pt {
	sx, sy := v.scale(surface)
	return core.Pt{X: v.region.X + p.X*sx, Y: v.region.Y + p.Y*sy}
}

// ToSurface converts a logical point to surface coordinates.
func (v *Viewport) ToSurface(p core.Pt, surface core.Size) core.Pt {
	sx, sy := v.scale(surface)
	return core.Pt{X: (p.X - v.region.X) / sx, Y: (p.Y - v.region.Y) / sy}
}

// scale returns logical units per surface unit.
func (v *Viewport) scale(surface core.Size) (float64, float64) {
	if surface.W <= 0 || surface.H <= 0 {
		return 1, 1
	}
	return v.region.W / surface.W, v.region.H / surface.H
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func (v *Viewport) fit(level float64, focal core.Pt) core.Rect {
	w, h := v.space.W/level, v.space.H/level
	return v.clamp(core.Rect{X: focal.X - w/2, Y: focal.Y - h/2, W: w, H: h})
}

func (v *Viewport) clamp(r core.Rect) core.Rect {
	r.X = core.Clamp(r.X, 0, v.space.W-r.W)
	r.Y = core.Clamp(r.Y, 0, v.space.H-r.H)
	return r
}

func (v *Viewport) apply(r core.Rect, animatable bool) {
	v.region = r
	v.focal = r.Center()
	v.animatable = animatable
	v.revision++
}
