// Package snapshot rasterizes the map to PNG for hosts without a GPU
// surface: the HTTP API, the CLI and tests.
package snapshot

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/gogpu/gg"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/metrics"
)

// Colors used by the renderer.
const (
	BackgroundHex = "#f5f6f8"
	StateHex      = "#d0d5dd"
	BorderHex     = "#ffffff"
	SelectedHex   = "#1e5aa0"
	LabelHex      = "#282c34"
)

const flattenTolerance = 0.25

// Options control one rendering.
type Options struct {
	Width, Height int

	// Region is the logical area drawn. A zero region draws the whole map.
	Region core.Rect

	// Statuses colors selected states. States not listed use the base fill.
	Statuses map[string]core.Status

	// FontPath is an optional TrueType font for state labels.
	FontPath string
	FontSize float64
}

// Render draws the map into an image.
func Render(m *core.Map, opts Options) (image.Image, error) {
	dc, err := render(m, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// RenderPNG renders and encodes as PNG.
func RenderPNG(w io.Writer, m *core.Map, opts Options) error {
	dc, err := render(m, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

func render(m *core.Map, opts Options) (*gg.Context, error) {
	start := time.Now()
	defer func() { metrics.SnapshotDuration.Observe(time.Since(start).Seconds()) }()

	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("snapshot size %dx%d must be positive", opts.Width, opts.Height)
	}
	region := opts.Region
	if region.W <= 0 || region.H <= 0 {
		region = core.Rect{W: m.Space.W, H: m.Space.H}
	}
	sx := float64(opts.Width) / region.W
	sy := float64(opts.Height) / region.H
	project := func(p core.Pt) (float64, float64) {
		return (p.X - region.X) * sx, (p.Y - region.Y) * sy
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.ClearWithColor(gg.Hex(BackgroundHex))

	labels := opts.FontPath != ""
	if labels {
		size := opts.FontSize
		if size <= 0 {
			size = 11
		}
		if err := dc.LoadFontFace(opts.FontPath, size); err != nil {
			slog.Warn("snapshot font unavailable, drawing without labels", "path", opts.FontPath, "error", err)
			labels = false
		}
	}

	// Overlays paint after the shapes they sit on.
	var base, over []core.StateShape
	for _, s := range m.Shapes {
		if s.Overlay {
			over = append(over, s)
		} else {
			base = append(base, s)
		}
	}

	for _, s := range append(base, over...) {
		p, err := s.Outline()
		if err != nil {
			slog.Warn("skipping state outline", "state", s.ID, "error", err)
			continue
		}
		polys := core.Polygons(p, flattenTolerance)

		fill, border, width := StateHex, BorderHex, 1.0
		if st, ok := opts.Statuses[s.ID]; ok {
			fill, border, width = st.Hex(), SelectedHex, 2.0
		}

		trace(dc, polys, project)
		dc.SetColor(gg.Hex(fill).Color())
		if err := dc.FillPreserve(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("fill %s: %w", s.ID, err)
		}
		dc.SetColor(gg.Hex(border).Color())
		dc.SetLineWidth(width)
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("stroke %s: %w", s.ID, err)
		}

		if labels {
			anchor, ok := labelAnchor(s)
			if ok && region.Contains(anchor) {
				x, y := project(anchor)
				dc.SetColor(gg.Hex(LabelHex).Color())
				dc.DrawStringAnchored(s.ID, x, y, 0.5, 0.5)
			}
		}
	}

	if err := dc.FlushGPU(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("flush: %w", err)
	}
	return dc, nil
}

func trace(dc *gg.Context, polys [][]core.Pt, project func(core.Pt) (float64, float64)) {
	dc.ClearPath()
	for _, poly := range polys {
		if len(poly) < 2 {
			continue
		}
		dc.NewSubPath()
		x, y := project(poly[0])
		dc.MoveTo(x, y)
		for _, pt := range poly[1:] {
			x, y = project(pt)
			dc.LineTo(x, y)
		}
		dc.ClosePath()
	}
}

func labelAnchor(s core.StateShape) (core.Pt, bool) {
	if s.Anchor != nil {
		return *s.Anchor, true
	}
	return s.Start()
}

// Statuses indexes summary rows by state id.
func Statuses(rows []core.SummaryRow) map[string]core.Status {
	out := make(map[string]core.Status, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Status
	}
	return out
}
