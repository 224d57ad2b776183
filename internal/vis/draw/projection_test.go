package draw

import (
	"image/color"
	"math"
	"testing"

	"gioui.org/f32"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

func TestProjectionRoundTrip(t *testing.T) {
	p := Projection{
		Region:  core.Rect{X: 479.5, Y: 296.5, W: 479.5, H: 296.5},
		Surface: core.Size{W: 959, H: 593},
	}
	tests := []struct {
		in   core.Pt
		want f32.Point
	}{
		{core.Pt{X: 479.5, Y: 296.5}, f32.Pt(0, 0)},
		{core.Pt{X: 959, Y: 593}, f32.Pt(959, 593)},
		{core.Pt{X: 700, Y: 500}, f32.Pt(441, 407)},
	}
	for _, tt := range tests {
		got := p.Point(tt.in)
		if math.Abs(float64(got.X-tt.want.X)) > 1e-3 || math.Abs(float64(got.Y-tt.want.Y)) > 1e-3 {
			t.Errorf("Point(%v) = %v, want %v", tt.in, got, tt.want)
		}
		back := p.Logical(got)
		if math.Abs(back.X-tt.in.X) > 1e-3 || math.Abs(back.Y-tt.in.Y) > 1e-3 {
			t.Errorf("Logical(Point(%v)) = %v", tt.in, back)
		}
	}
}

func TestProjectionVisible(t *testing.T) {
	p := Projection{Region: core.Rect{X: 100, Y: 100, W: 100, H: 100}, Surface: core.Size{W: 100, H: 100}}
	tests := []struct {
		minX, minY, maxX, maxY float64
		want                   bool
	}{
		{0, 0, 50, 50, false},
		{150, 150, 160, 160, true},
		{0, 0, 100, 100, true},
		{201, 0, 300, 300, false},
	}
	for _, tt := range tests {
		if got := p.Visible(tt.minX, tt.minY, tt.maxX, tt.maxY); got != tt.want {
			t.Errorf("Visible(%v,%v,%v,%v) = %v, want %v", tt.minX, tt.minY, tt.maxX, tt.maxY, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#e53935", color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 255}},
		{"fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#zzzzzz", color.NRGBA{A: 255}},
		{"#12345", color.NRGBA{A: 255}},
	}
	for _, tt := range tests {
		if got := ParseHex(tt.in); got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStatusColorDistinct(t *testing.T) {
	seen := map[color.NRGBA]core.Status{}
	for _, s := range []core.Status{core.StatusGreen, core.StatusYellow, core.StatusRed, core.StatusGray} {
		c := StatusColor(s)
		if prev, dup := seen[c]; dup {
			t.Errorf("StatusColor(%q) = StatusColor(%q)", s, prev)
		}
		seen[c] = s
	}
}
