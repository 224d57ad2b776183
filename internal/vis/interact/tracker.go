package interact

import (
	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// PointerID identifies one pointer or touch contact.
type PointerID int

// GestureState is the tracker's current classification of input.
type GestureState int

const (
	Idle GestureState = iota
	Panning
	Pinching
)

func (s GestureState) String() string {
	return [...]string{"Idle", "Panning", "Pinching"}[s]
}

// DefaultTapSlop is the distance in surface units a press may travel and
// still count as a tap.
const DefaultTapSlop = 6.0

// Target is what a Tracker drives. *Viewport implements it.
type Target interface {
	Region() core.Rect
	Zoom() float64
	Levels() core.ZoomLevels
	SetZoomAt(level float64, focal core.Pt) bool
	ZoomIn() bool
	PanTo(origin core.Pt) bool
	SetAnimations(enabled bool)
}

// session is the state of one interaction. It never outlives it.
type session struct {
	// pan
	panID  PointerID
	start  core.Pt // surface position at press
	origin core.Pt // region origin at press
	scale  core.Pt // logical units per surface unit at press

	// pinch
	ids   [2]PointerID
	d0    float64
	zoom0 float64
	mid   core.Pt // logical midpoint, fixed for the whole pinch
}

// Tracker classifies pointer, touch and wheel input into pan, pinch and
// tap gestures and drives a Target with them.
//
// Pan moves are coalesced: Move records the latest origin and Flush applies
// it, once per frame. Input that does not fit the current state is ignored.
type Tracker struct {
	target  Target
	surface core.Size

	// view is the region last drawn, which lags the target while a
	// transition runs.
	view    core.Rect
	hasView bool

	TapSlop float64
	OnTap   func(logical core.Pt)

	state    GestureState
	pointers map[PointerID]core.Pt
	s        session

	pending    core.Pt
	hasPending bool

	tapID    PointerID
	tapStart core.Pt
	tapping  bool
}

// NewTracker creates a tracker driving target.
func NewTracker(target Target) *Tracker {
	return &Tracker{
		target:   target,
		TapSlop:  DefaultTapSlop,
		pointers: make(map[PointerID]core.Pt),
	}
}

// State returns the current gesture state.
func (t *Tracker) State() GestureState { return t.state }

// SetSurface sets the size of the surface the map is rendered on.
func (t *Tracker) SetSurface(size core.Size) { t.surface = size }

// Surface returns the rendered surface size.
func (t *Tracker) Surface() core.Size { return t.surface }

// SetView records the region currently drawn on the surface. Taps, hover
// and pinch midpoints are converted against it, so they land on what the
// user sees during a zoom transition.
func (t *Tracker) SetView(r core.Rect) {
	t.view, t.hasView = r, true
}

// View returns the region positions are converted against: the last drawn
// region, or the target's region before anything was drawn.
func (t *Tracker) View() core.Rect {
	if t.hasView {
		return t.view
	}
	return t.target.Region()
}

// ToLogical converts a surface position to logical coordinates using the
// drawn region.
func (t *Tracker) ToLogical(p core.Pt) core.Pt {
	r := t.View()
	sc := t.scaleOf(r)
	return core.Pt{X: r.X + p.X*sc.X, Y: r.Y + p.Y*sc.Y}
}

// scale is the target's logical units per surface unit. Pans move the
// target origin, so they use it rather than the drawn region.
func (t *Tracker) scale() core.Pt { return t.scaleOf(t.target.Region()) }

func (t *Tracker) scaleOf(r core.Rect) core.Pt {
	if t.surface.W <= 0 || t.surface.H <= 0 {
		return core.Pt{X: 1, Y: 1}
	}
	return core.Pt{X: r.W / t.surface.W, Y: r.H / t.surface.H}
}

// Press registers a new pointer.
func (t *Tracker) Press(id PointerID, pos core.Pt) {
	if _, ok := t.pointers[id]; ok || len(t.pointers) >= 2 {
		return
	}
	t.pointers[id] = pos

	switch len(t.pointers) {
	case 1:
		t.tapID, t.tapStart, t.tapping = id, pos, true
		if t.target.Zoom() > t.target.Levels().Min() {
			t.startPan(id, pos)
		}
	case 2:
		t.startPinch()
	}
}

func (t *Tracker) startPan(id PointerID, pos core.Pt) {
	r := t.target.Region()
	t.s = session{
		panID:  id,
		start:  pos,
		origin: r.Origin(),
		scale:  t.scale(),
	}
	t.state = Panning
	t.target.SetAnimations(false)
}

func (t *Tracker) startPinch() {
	var ids [2]PointerID
	i := 0
	for id := range t.pointers {
		ids[i] = id
		i++
	}
	a, b := t.pointers[ids[0]], t.pointers[ids[1]]

	// An unapplied pan move is dropped, applied ones stay.
	t.hasPending = false
	t.tapping = false
	t.s = session{
		ids:   ids,
		d0:    a.Dist(b),
		zoom0: t.target.Zoom(),
		mid:   t.ToLogical(core.Mid(a, b)),
	}
	t.state = Pinching
	t.target.SetAnimations(false)
}

// Move updates a pointer position.
func (t *Tracker) Move(id PointerID, pos core.Pt) {
	if _, ok := t.pointers[id]; !ok {
		return
	}
	t.pointers[id] = pos

	if t.tapping && id == t.tapID && pos.Dist(t.tapStart) > t.TapSlop {
		t.tapping = false
	}

	switch t.state {
	case Panning:
		if id != t.s.panID {
			return
		}
		d := t.s.start.Sub(pos)
		t.pending = core.Pt{
			X: t.s.origin.X + d.X*t.s.scale.X,
			Y: t.s.origin.Y + d.Y*t.s.scale.Y,
		}
		t.hasPending = true
	case Pinching:
		if id != t.s.ids[0] && id != t.s.ids[1] {
			return
		}
		if t.s.d0 <= 0 {
			return
		}
		d := t.pointers[t.s.ids[0]].Dist(t.pointers[t.s.ids[1]])
		levels := t.target.Levels()
		candidate := levels.Clamp(t.s.zoom0 * d / t.s.d0)
		t.target.SetZoomAt(levels.Nearest(candidate), t.s.mid)
	}
}

// Pending reports whether a pan move is waiting for Flush.
func (t *Tracker) Pending() bool { return t.hasPending }

// Flush applies the latest pan move. It reports whether the region changed.
func (t *Tracker) Flush() bool {
	if !t.hasPending {
		return false
	}
	t.hasPending = false
	return t.target.PanTo(t.pending)
}

// Release ends the pointer's participation. A press and release that
// stayed within TapSlop and never became a pinch is reported to OnTap.
func (t *Tracker) Release(id PointerID, pos core.Pt) {
	if _, ok := t.pointers[id]; !ok {
		return
	}
	t.Move(id, pos)
	delete(t.pointers, id)
	t.Flush()

	tap := t.tapping && id == t.tapID
	t.tapping = false

	if len(t.pointers) == 0 || t.state == Pinching {
		t.end()
	}
	if tap && t.OnTap != nil {
		t.OnTap(t.ToLogical(pos))
	}
}

// Cancel discards the current interaction, keeping any applied pan.
func (t *Tracker) Cancel() {
	t.hasPending = false
	t.tapping = false
	clear(t.pointers)
	t.end()
}

func (t *Tracker) end() {
	if t.state != Idle {
		t.target.SetAnimations(true)
	}
	t.state = Idle
	t.s = session{}
	// A finger left on the surface after a pinch does not resume panning.
	clear(t.pointers)
}

// Wheel handles one wheel tick. Negative dy zooms in. Modified wheel
// events belong to the host (browser or OS zoom) and are ignored.
func (t *Tracker) Wheel(dy float64, modified bool) bool {
	if modified || dy == 0 {
		return false
	}
	if dy < 0 {
		return t.target.ZoomIn()
	}
	levels := t.target.Levels()
	prev := levels.Prev(t.target.Zoom())
	return t.target.SetZoomAt(prev, t.target.Region().Center())
}
