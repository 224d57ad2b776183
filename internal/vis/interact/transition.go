package interact

import (
	"time"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// AnimationDuration is the default length of a zoom transition.
const AnimationDuration = 250 * time.Millisecond

// Transition interpolates the drawn region between viewport changes.
type Transition struct {
	Duration time.Duration

	from, to core.Rect
	start    time.Time
	active   bool
	revision uint64
	synced   bool
}

// NewTransition creates a transition with the given duration.
func NewTransition(d time.Duration) *Transition {
	return &Transition{Duration: d}
}

// Active reports whether a transition is in progress.
func (t *Transition) Active() bool { return t.active }

// Update observes the viewport and returns the region to draw at now.
func (t *Transition) Update(v *Viewport, now time.Time) core.Rect {
	if !t.synced {
		t.to, t.revision, t.synced = v.Region(), v.Revision(), true
		return t.to
	}

	if v.Revision() != t.revision {
		shown := t.current(now)
		t.revision = v.Revision()
		t.to = v.Region()
		if v.Animatable() && t.Duration > 0 {
			t.from, t.start, t.active = shown, now, true
		} else {
			t.active = false
		}
	}
	return t.current(now)
}

func (t *Transition) current(now time.Time) core.Rect {
	if !t.active {
		return t.to
	}
	p := float64(now.Sub(t.start)) / float64(t.Duration)
	if p >= 1 {
		t.active = false
		return t.to
	}
	if p < 0 {
		p = 0
	}
	return core.Lerp(t.from, t.to, easeInOut(p))
}

func easeInOut(p float64) float64 {
	return p * p * (3 - 2*p)
}
