package interact

import (
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

type hitShape struct {
	shape core.StateShape
	path  *gg.Path
	bbox  gg.Rect
}

// HitRegion maps logical points to state shapes.
type HitRegion struct {
	ordered []hitShape // overlays first, then regular shapes
	shapes  []core.StateShape
	byID    map[string]*gg.Path
}

// NewHitRegion parses every outline. Shapes whose outline does not parse
// are logged and left out of hit testing and rendering.
func NewHitRegion(shapes []core.StateShape) *HitRegion {
	h := &HitRegion{byID: make(map[string]*gg.Path, len(shapes))}
	var overlays, regular []hitShape
	for _, s := range shapes {
		p, err := s.Outline()
		if err != nil {
			slog.Warn("skipping state outline", "state", s.ID, "error", err)
			continue
		}
		hs := hitShape{shape: s, path: p, bbox: p.BoundingBox()}
		if s.Overlay {
			overlays = append(overlays, hs)
		} else {
			regular = append(regular, hs)
		}
		h.shapes = append(h.shapes, s)
		h.byID[s.ID] = p
	}
	h.ordered = append(overlays, regular...)
	return h
}

// Resolve returns the shape containing p. Overlays win over the shapes
// they sit on; otherwise the first match in data order wins.
func (h *HitRegion) Resolve(p core.Pt) (core.StateShape, bool) {
	pt := gg.Point{X: p.X, Y: p.Y}
	for _, hs := range h.ordered {
		if pt.X < hs.bbox.Min.X || pt.X > hs.bbox.Max.X || pt.Y < hs.bbox.Min.Y || pt.Y > hs.bbox.Max.Y {
			continue
		}
		if hs.path.Contains(pt) {
			return hs.shape, true
		}
	}
	return core.StateShape{}, false
}

// LabelAnchor returns where a shape's label goes: the explicit anchor if
// set, else the start of its outline.
func (h *HitRegion) LabelAnchor(s core.StateShape) core.Pt {
	if s.Anchor != nil {
		return *s.Anchor
	}
	start, _ := s.Start()
	return start
}

// Shapes returns the shapes that parsed, in data order.
func (h *HitRegion) Shapes() []core.StateShape { return h.shapes }

// Outline returns the parsed outline for a shape id.
func (h *HitRegion) Outline(id string) (*gg.Path, bool) {
	p, ok := h.byID[id]
	return p, ok
}
