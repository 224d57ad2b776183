package interact

import (
	"testing"
	"time"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

func TestTransitionInterpolatesZoom(t *testing.T) {
	v := newTestViewport()
	tr := NewTransition(AnimationDuration)
	t0 := time.Unix(100, 0)
	full := tr.Update(v, t0)

	v.SetZoomAt(2, core.Pt{X: 479.5, Y: 296.5})
	target := v.Region()

	if got := tr.Update(v, t0); got != full || !tr.Active() {
		t.Errorf("at start: %+v active=%v, want %+v active", got, tr.Active(), full)
	}
	mid := tr.Update(v, t0.Add(AnimationDuration/2))
	want := core.Lerp(full, target, 0.5)
	if !approx(mid.W, want.W) || !approx(mid.X, want.X) {
		t.Errorf("halfway: %+v, want %+v", mid, want)
	}
	if got := tr.Update(v, t0.Add(AnimationDuration)); got != target || tr.Active() {
		t.Errorf("at end: %+v active=%v, want %+v", got, tr.Active(), target)
	}
}

func TestTransitionSnapsPan(t *testing.T) {
	v := newTestViewport()
	v.SetZoomAt(2, core.Pt{X: 479.5, Y: 296.5})
	tr := NewTransition(AnimationDuration)
	t0 := time.Unix(100, 0)
	tr.Update(v, t0)

	v.PanBy(15, 15)
	if got := tr.Update(v, t0); got != v.Region() || tr.Active() {
		t.Errorf("pan should snap, got %+v active=%v", got, tr.Active())
	}
}
