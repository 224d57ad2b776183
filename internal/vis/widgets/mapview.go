// Package widgets provides Gio UI widgets for the checker.
package widgets

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/draw"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/interact"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/state"
)

// MapView is the interactive map area.
type MapView struct {
	state    *state.State
	renderer *draw.MapRenderer
}

// NewMapView creates a map widget.
func NewMapView(st *state.State) *MapView {
	return &MapView{
		state:    st,
		renderer: draw.NewMapRenderer(st),
	}
}

// Layout renders the map and feeds pointer input to the gesture tracker.
func (m *MapView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, draw.ColorBackground)

	m.state.Tracker.SetSurface(core.Size{W: float64(bounds.X), H: float64(bounds.Y)})
	m.handlePointerEvents(gtx)

	region, animating := m.state.Frame(gtx.Now)
	m.renderer.Layout(gtx, th, m.state, region)
	if animating {
		gtx.Execute(op.InvalidateCmd{})
	}

	return layout.Dimensions{Size: bounds}
}

func (m *MapView) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, m)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  m,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll | pointer.Move | pointer.Leave,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			m.handlePointerEvent(pe)
		}
	}
}

func (m *MapView) handlePointerEvent(ev pointer.Event) {
	t := m.state.Tracker
	id := interact.PointerID(ev.PointerID)
	pos := core.Pt{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}

	switch ev.Kind {
	case pointer.Press:
		if ev.Source == pointer.Mouse && !ev.Buttons.Contain(pointer.ButtonPrimary) {
			return
		}
		t.Press(id, pos)
	case pointer.Drag:
		t.Move(id, pos)
	case pointer.Release:
		t.Release(id, pos)
	case pointer.Cancel:
		t.Cancel()
	case pointer.Scroll:
		t.Wheel(float64(ev.Scroll.Y), ev.Modifiers.Contain(key.ModCtrl))
	case pointer.Move:
		m.state.Hover, _ = m.state.Resolve(t.ToLogical(pos))
	case pointer.Leave:
		m.state.Hover = ""
	}
}
