package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/gg"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/mapdata"
)

func near(got color.Color, hex string) bool {
	want := gg.Hex(hex).Color()
	r1, g1, b1, _ := got.RGBA()
	r2, g2, b2, _ := want.RGBA()
	d := func(a, b uint32) uint32 {
		if a > b {
			return a - b
		}
		return b - a
	}
	const tol = 4 * 257
	return d(r1, r2) <= tol && d(g1, g2) <= tol && d(b1, b2) <= tol
}

func decode(t *testing.T, opts Options) image.Image {
	t.Helper()
	m, err := mapdata.Default()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := RenderPNG(&buf, m, opts); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return img
}

func TestRenderFullMap(t *testing.T) {
	img := decode(t, Options{
		Width:    959,
		Height:   593,
		Statuses: map[string]core.Status{"AL": core.StatusRed},
	})
	if b := img.Bounds(); b.Dx() != 959 || b.Dy() != 593 {
		t.Fatalf("bounds = %v, want 959x593", b)
	}

	tests := []struct {
		name string
		x, y int
		hex  string
	}{
		{"outside every state", 5, 5, BackgroundHex},
		{"inside Alabama", 665, 430, core.StatusRed.Hex()},
	}
	for _, tt := range tests {
		if got := img.At(tt.x, tt.y); !near(got, tt.hex) {
			t.Errorf("%s: pixel (%d,%d) = %v, want %s", tt.name, tt.x, tt.y, got, tt.hex)
		}
	}
}

func TestRenderZoomedRegion(t *testing.T) {
	img := decode(t, Options{
		Width:    959,
		Height:   593,
		Region:   core.Rect{X: 479.5, Y: 296.5, W: 479.5, H: 296.5},
		Statuses: map[string]core.Status{"AL": core.StatusGreen},
	})
	// (665,430) in logical space lands at (371,267) at zoom 2.
	if got := img.At(371, 267); !near(got, core.StatusGreen.Hex()) {
		t.Errorf("pixel (371,267) = %v, want %s", got, core.StatusGreen.Hex())
	}
}

func TestRenderBadSize(t *testing.T) {
	m, _ := mapdata.Default()
	if _, err := Render(m, Options{Width: 0, Height: 10}); err == nil {
		t.Errorf("Render with zero width succeeded")
	}
}
