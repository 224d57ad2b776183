package interact

import (
	"math"
	"testing"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

func newTestViewport() *Viewport {
	return NewViewport(core.MapSpace, core.DefaultZoomLevels)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestViewportInitial(t *testing.T) {
	v := newTestViewport()
	want := core.Rect{X: 0, Y: 0, W: 959, H: 593}
	if v.Region() != want || v.Zoom() != 1 {
		t.Errorf("initial = %+v @ %v, want %+v @ 1", v.Region(), v.Zoom(), want)
	}
}

func TestSetZoomAtClampsToEdge(t *testing.T) {
	v := newTestViewport()
	if !v.SetZoomAt(2, core.Pt{X: 700, Y: 500}) {
		t.Fatalf("SetZoomAt(2) reported no change")
	}
	// x = 700-239.75 already fits in [0, 479.5]; only y is translated.
	want := core.Rect{X: 460.25, Y: 296.5, W: 479.5, H: 296.5}
	if got := v.Region(); got != want {
		t.Errorf("Region() = %+v, want %+v", got, want)
	}
	if got, want := v.Focal(), (core.Pt{X: 700, Y: 444.75}); got != want {
		t.Errorf("Focal() = %v, want %v", got, want)
	}
}

func TestSetZoomBounds(t *testing.T) {
	levels := []float64{-1, 0.5, 1, 1.3, 1.5, 2, 2.75, 4, 9}
	focals := []core.Pt{
		{X: 0, Y: 0}, {X: 959, Y: 593}, {X: -500, Y: 200},
		{X: 480, Y: 300}, {X: 2000, Y: -40}, {X: 10, Y: 590},
	}

	for _, l := range levels {
		for _, f := range focals {
			v := newTestViewport()
			v.SetZoomAt(2.5, core.Pt{X: 300, Y: 300})
			v.SetZoomAt(l, f)
			r := v.Region()
			if !r.Within(core.MapSpace) {
				t.Errorf("SetZoomAt(%v, %v) region %+v outside space", l, f, r)
			}
			if !approx(r.W, 959/v.Zoom()) || !approx(r.H, 593/v.Zoom()) {
				t.Errorf("SetZoomAt(%v, %v) region %+v not sized for zoom %v", l, f, r, v.Zoom())
			}
			if v.Zoom() < 1 || v.Zoom() > 4 {
				t.Errorf("SetZoomAt(%v) zoom = %v, outside [1,4]", l, v.Zoom())
			}
		}
	}
}

func TestSetZoomSameLevelNoop(t *testing.T) {
	v := newTestViewport()
	v.SetZoomAt(4, core.Pt{X: 100, Y: 100})
	before, rev := v.Region(), v.Revision()
	if v.SetZoomAt(10, core.Pt{X: 900, Y: 500}) {
		t.Errorf("SetZoomAt above max at max should be a no-op")
	}
	if v.Region() != before || v.Revision() != rev {
		t.Errorf("region changed on no-op zoom")
	}
}

func TestSetZoomAtNonFiniteFocal(t *testing.T) {
	focals := []core.Pt{
		{X: math.NaN(), Y: 100},
		{X: 100, Y: math.NaN()},
		{X: math.Inf(1), Y: 100},
		{X: 100, Y: math.Inf(-1)},
	}
	for _, f := range focals {
		v := newTestViewport()
		if !v.SetZoomAt(2, f) {
			t.Fatalf("SetZoomAt(2, %v) reported no change", f)
		}
		want := core.Rect{X: 239.75, Y: 148.25, W: 479.5, H: 296.5}
		if got := v.Region(); got != want {
			t.Errorf("SetZoomAt(2, %v) = %+v, want %+v", f, got, want)
		}

		v.ZoomIn()
		if r := v.Region(); !r.Within(core.MapSpace) {
			t.Errorf("ZoomIn after %v: region %+v outside space", f, r)
		}
		if !v.PanBy(10, 10) {
			t.Errorf("PanBy after %v reported no change", f)
		}
		if r := v.Region(); !r.Within(core.MapSpace) {
			t.Errorf("PanBy after %v: region %+v outside space", f, r)
		}
	}
}

func TestResetIdempotent(t *testing.T) {
	v := newTestViewport()
	v.SetZoomAt(3, core.Pt{X: 100, Y: 500})
	v.Reset()
	once := v.Region()
	v.Reset()
	if v.Region() != once {
		t.Errorf("Reset twice = %+v, once = %+v", v.Region(), once)
	}
	if once != (core.Rect{W: 959, H: 593}) || v.Zoom() != 1 {
		t.Errorf("Reset = %+v @ %v", once, v.Zoom())
	}
	if !v.Animatable() {
		t.Errorf("Reset should be animatable")
	}
}

func TestPanAtMinZoomNoop(t *testing.T) {
	deltas := []core.Pt{{X: 10, Y: 0}, {X: -50, Y: 30}, {X: 1e6, Y: -1e6}}
	for _, d := range deltas {
		v := newTestViewport()
		before := v.Region()
		if v.PanBy(d.X, d.Y) {
			t.Errorf("PanBy(%v) at min zoom reported change", d)
		}
		if v.Region() != before {
			t.Errorf("PanBy(%v) at min zoom moved region to %+v", d, v.Region())
		}
	}
}

func TestPanClamps(t *testing.T) {
	v := newTestViewport()
	v.SetZoomAt(2, core.Pt{X: 479.5, Y: 296.5})
	v.PanBy(10, -5)
	r := v.Region()
	if !approx(r.X, 249.75) || !approx(r.Y, 143.25) {
		t.Errorf("PanBy(10,-5) origin = (%v,%v), want (249.75,143.25)", r.X, r.Y)
	}
	if v.Animatable() {
		t.Errorf("pans must not be animatable")
	}

	v.PanBy(-1e4, 1e4)
	r = v.Region()
	if r.X != 0 || !approx(r.Y, 296.5) {
		t.Errorf("PanBy far = (%v,%v), want (0,296.5)", r.X, r.Y)
	}
	if !approx(v.Focal().X, r.W/2) {
		t.Errorf("Focal() = %v, want region center", v.Focal())
	}
}

func TestZoomInOutRoundTrip(t *testing.T) {
	for _, l := range core.DefaultZoomLevels {
		v := newTestViewport()
		v.SetZoomAt(l, core.Pt{X: 600, Y: 200})
		v.ZoomIn()
		v.ZoomOut()
		want := l
		if l == 4 {
			want = 3.5 // ZoomIn is a no-op at max
		}
		if v.Zoom() != want {
			t.Errorf("from %v: ZoomIn+ZoomOut = %v, want %v", l, v.Zoom(), want)
		}
	}
}

func TestZoomBounds(t *testing.T) {
	v := newTestViewport()
	if v.ZoomOut() {
		t.Errorf("ZoomOut at min should be a no-op")
	}
	for v.ZoomIn() {
	}
	if v.Zoom() != 4 {
		t.Errorf("repeated ZoomIn stopped at %v, want 4", v.Zoom())
	}
}

func TestZoomInKeepsFocal(t *testing.T) {
	v := newTestViewport()
	v.SetZoomAt(2, core.Pt{X: 700, Y: 500})
	focal := v.Focal()
	v.ZoomIn()
	c := v.Region().Center()
	if !approx(c.X, focal.X) || !approx(c.Y, focal.Y) {
		t.Errorf("ZoomIn center = %v, want %v", c, focal)
	}
}

func TestAnimationsToggle(t *testing.T) {
	v := newTestViewport()
	v.SetAnimations(false)
	v.ZoomIn()
	if v.Animatable() {
		t.Errorf("zoom with animations off should not be animatable")
	}
	v.SetAnimations(true)
	v.ZoomIn()
	if !v.Animatable() {
		t.Errorf("zoom with animations on should be animatable")
	}
}

func TestSurfaceConversion(t *testing.T) {
	v := newTestViewport()
	v.SetZoomAt(2, core.Pt{X: 479.5, Y: 296.5})
	surface := core.Size{W: 959, H: 593}
	p := core.Pt{X: 100, Y: 50}
	l := v.ToLogical(p, surface)
	if !approx(l.X, 239.75+50) || !approx(l.Y, 148.25+25) {
		t.Errorf("ToLogical(%v) = %v", p, l)
	}
	back := v.ToSurface(l, surface)
	if !approx(back.X, p.X) || !approx(back.Y, p.Y) {
		t.Errorf("ToSurface(ToLogical(%v)) = %v", p, back)
	}
}

func TestNewViewportBadLevels(t *testing.T) {
	v := NewViewport(core.MapSpace, core.ZoomLevels{2, 1})
	if v.Levels().Max() != 4 {
		t.Errorf("invalid levels should fall back to defaults, got %v", v.Levels())
	}
}
