package draw

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/state"
)

// FlattenTolerance is the curve flattening tolerance in logical units.
const FlattenTolerance = 0.25

// smallLabels get a reduced font so they fit their shapes.
var smallLabels = map[string]bool{"MD": true, "NJ": true, "DE": true, "DC": true}

type cachedShape struct {
	shape  core.StateShape
	polys  [][]core.Pt
	anchor core.Pt

	minX, minY, maxX, maxY float64
}

// MapRenderer draws state shapes, selection fills and labels.
// Flattened outlines are computed once and reused every frame.
type MapRenderer struct {
	shapes []cachedShape
}

// NewMapRenderer flattens every shape the hit region accepted.
func NewMapRenderer(st *state.State) *MapRenderer {
	r := &MapRenderer{}
	for _, s := range st.Hit.Shapes() {
		p, ok := st.Hit.Outline(s.ID)
		if !ok {
			continue
		}
		bb := p.BoundingBox()
		r.shapes = append(r.shapes, cachedShape{
			shape:  s,
			polys:  core.Polygons(p, FlattenTolerance),
			anchor: st.Hit.LabelAnchor(s),
			minX:   bb.Min.X, minY: bb.Min.Y, maxX: bb.Max.X, maxY: bb.Max.Y,
		})
	}
	// Overlays paint last so they stay visible on top of their neighbours.
	var base, over []cachedShape
	for _, c := range r.shapes {
		if c.shape.Overlay {
			over = append(over, c)
		} else {
			base = append(base, c)
		}
	}
	r.shapes = append(base, over...)
	return r
}

// Layout draws the map for region onto the full constraint area.
func (r *MapRenderer) Layout(gtx layout.Context, th *material.Theme, st *state.State, region core.Rect) layout.Dimensions {
	size := gtx.Constraints.Max
	proj := Projection{Region: region, Surface: core.Size{W: float64(size.X), H: float64(size.Y)}}

	for _, c := range r.shapes {
		if !proj.Visible(c.minX, c.minY, c.maxX, c.maxY) {
			continue
		}
		polys := project(proj, c.polys)
		FillPolygons(gtx, polys, r.fill(st, c.shape.ID))
		border, width := ColorBorder, float32(1)
		if st.Selection.IsSelected(c.shape.ID) {
			border, width = ColorSelected, 2
		}
		StrokePolygons(gtx, polys, border, width)
	}

	for _, c := range r.shapes {
		if !proj.Region.Contains(c.anchor) {
			continue
		}
		r.label(gtx, th, c.shape.ID, proj.Point(c.anchor))
	}

	if !st.Viewport.AtMin() {
		DrawCircleOutline(gtx, proj.Point(st.Viewport.Focal()), 6, ColorFocal, 1.5)
	}

	return layout.Dimensions{Size: size}
}

func (r *MapRenderer) fill(st *state.State, id string) color.NRGBA {
	var col color.NRGBA
	switch {
	case st.Selection.IsSelected(id):
		col = StatusColor(st.Status(id))
	default:
		col = ColorState
	}
	if id == st.Hover {
		if col == ColorState {
			return ColorHover
		}
		return Lighten(col, 0.25)
	}
	return col
}

func (r *MapRenderer) label(gtx layout.Context, th *material.Theme, id string, at f32.Point) {
	size := unit.Sp(11)
	if smallLabels[id] {
		size = unit.Sp(8)
	}
	lbl := material.Label(th, size, id)
	lbl.Color = ColorLabel
	lbl.Alignment = text.Middle
	lbl.MaxLines = 1

	// Center a fixed-width box on the anchor.
	const boxW, boxH = 40, 16
	off := image.Pt(int(at.X)-boxW/2, int(at.Y)-boxH/2)
	defer op.Offset(off).Push(gtx.Ops).Pop()
	gtx.Constraints = layout.Exact(image.Pt(boxW, boxH))
	lbl.Layout(gtx)
}

func project(p Projection, polys [][]core.Pt) [][]f32.Point {
	out := make([][]f32.Point, len(polys))
	for i, poly := range polys {
		pts := make([]f32.Point, len(poly))
		for j, pt := range poly {
			pts[j] = p.Point(pt)
		}
		out[i] = pts
	}
	return out
}
