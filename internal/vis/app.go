// Package vis implements the Gio desktop front end of the nexus checker.
package vis

import (
	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/draw"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/state"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/widgets"
)

// App is the main application.
type App struct {
	state    *state.State
	theme    *material.Theme
	mapView  *widgets.MapView
	toolbar  *widgets.Toolbar
	question *widgets.QuestionCard
	summary  *widgets.Summary
}

// NewApp creates the application around prepared state.
func NewApp(st *state.State) *App {
	return &App{
		state:    st,
		theme:    material.NewTheme(),
		mapView:  widgets.NewMapView(st),
		toolbar:  widgets.NewToolbar(st),
		question: widgets.NewQuestionCard(st),
		summary:  widgets.NewSummary(st),
	}
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}

			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	vp := a.state.Viewport
	switch e.Name {
	case "+", "=":
		vp.ZoomIn()
	case "-":
		vp.ZoomOut()
	case "0":
		vp.Reset()
	case key.NameLeftArrow:
		vp.PanBy(-40/vp.Zoom(), 0)
	case key.NameRightArrow:
		vp.PanBy(40/vp.Zoom(), 0)
	case key.NameUpArrow:
		vp.PanBy(0, -40/vp.Zoom())
	case key.NameDownArrow:
		vp.PanBy(0, 40/vp.Zoom())
	case key.NameEscape:
		a.state.Flow.Cancel()
	case key.NameDeleteBackward:
		a.state.Flow.Back()
	case "Y":
		if e.Modifiers.Contain(key.ModCtrl) {
			a.state.Redo()
			return
		}
		a.state.Answer(core.Yes)
	case "N":
		a.state.Answer(core.No)
	case "S":
		a.state.Answer(core.NotSure)
	case "Z":
		if e.Modifiers.Contain(key.ModCtrl) {
			a.state.Undo()
		}
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, draw.ColorBackground)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.Stack{Alignment: layout.S}.Layout(gtx,
						layout.Expanded(func(gtx layout.Context) layout.Dimensions {
							return a.mapView.Layout(gtx, a.theme)
						}),
						layout.Stacked(func(gtx layout.Context) layout.Dimensions {
							return a.question.Layout(gtx, a.theme)
						}),
					)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.summary.Layout(gtx, a.theme)
				}),
			)
		}),
	)
}
