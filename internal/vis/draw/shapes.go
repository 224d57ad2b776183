package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// FillPolygons fills projected polygons as one non-zero path.
func FillPolygons(gtx layout.Context, polys [][]f32.Point, col color.NRGBA) {
	if len(polys) == 0 {
		return
	}
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: polygonPath(gtx, polys)}.Op())
}

// StrokePolygons outlines projected polygons.
func StrokePolygons(gtx layout.Context, polys [][]f32.Point, col color.NRGBA, width float32) {
	if len(polys) == 0 {
		return
	}
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: polygonPath(gtx, polys), Width: width}.Op())
}

func polygonPath(gtx layout.Context, polys [][]f32.Point) clip.PathSpec {
	var path clip.Path
	path.Begin(gtx.Ops)
	for _, poly := range polys {
		if len(poly) < 2 {
			continue
		}
		path.MoveTo(poly[0])
		for _, pt := range poly[1:] {
			path.LineTo(pt)
		}
		path.Close()
	}
	return path.End()
}

// DrawCircleOutline draws a ring of the given stroke width.
func DrawCircleOutline(gtx layout.Context, center f32.Point, radius float32, col color.NRGBA, strokeWidth float32) {
	ring := [][]f32.Point{circle(center, radius, 24)}
	StrokePolygons(gtx, ring, col, strokeWidth)
}

func circle(center f32.Point, r float32, segments int) []f32.Point {
	pts := make([]f32.Point, 0, segments)
	for i := 0; i < segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		pts = append(pts, f32.Pt(center.X+r*float32(math.Cos(angle)), center.Y+r*float32(math.Sin(angle))))
	}
	return pts
}
