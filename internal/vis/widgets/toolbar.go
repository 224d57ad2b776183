package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/nexus-checker/internal/vis/state"
)

// Toolbar provides zoom and history buttons.
type Toolbar struct {
	state *state.State

	zoomOutBtn widget.Clickable
	zoomInBtn  widget.Clickable
	resetBtn   widget.Clickable

	undoBtn widget.Clickable
	redoBtn widget.Clickable
}

// NewToolbar creates a new toolbar.
func NewToolbar(st *state.State) *Toolbar {
	return &Toolbar{
		state: st,
	}
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 48

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 255}, clip.Rect(rect).Op())

	t.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle, Spacing: layout.SpaceStart}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 14, "Sales tax nexus")
				label.Color = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
				return label.Layout(gtx)
			}),

			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutHistoryControls(gtx, th)
			}),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutSeparator(gtx)
			}),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutZoomControls(gtx, th)
			}),
		)
	})
}

func (t *Toolbar) layoutZoomControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	vp := t.state.Viewport
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.buttonBase(gtx, th, &t.zoomOutBtn, "-", vp.AtMin())
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := material.Label(th, 12, fmt.Sprintf("%gx", vp.Zoom()))
			label.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
			return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, label.Layout)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.buttonBase(gtx, th, &t.zoomInBtn, "+", vp.Zoom() >= vp.Levels().Max())
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.buttonBase(gtx, th, &t.resetBtn, "Reset", vp.AtMin())
		}),
	)
}

func (t *Toolbar) layoutHistoryControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	sel := t.state.Selection
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.buttonBase(gtx, th, &t.undoBtn, "<-", !sel.CanUndo())
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.buttonBase(gtx, th, &t.redoBtn, "->", !sel.CanRedo())
		}),
	)
}

func (t *Toolbar) layoutSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		rect := image.Rect(0, 0, 1, 24)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(rect).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func (t *Toolbar) buttonBase(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, disabled bool) layout.Dimensions {
	return flatButton(gtx, th, btn, text, color.NRGBA{R: 55, G: 58, B: 65, A: 255}, disabled)
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	vp := t.state.Viewport
	for t.zoomInBtn.Clicked(gtx) {
		vp.ZoomIn()
	}
	for t.zoomOutBtn.Clicked(gtx) {
		vp.ZoomOut()
	}
	for t.resetBtn.Clicked(gtx) {
		vp.Reset()
	}
	for t.undoBtn.Clicked(gtx) {
		t.state.Undo()
	}
	for t.redoBtn.Clicked(gtx) {
		t.state.Redo()
	}
}

// flatButton is the shared square button used across panels.
func flatButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, bg color.NRGBA, disabled bool) layout.Dimensions {
	fg := color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	if disabled {
		fg.A = 110
	} else if btn.Hovered() {
		bg.R, bg.G, bg.B = brighten(bg.R), brighten(bg.G), brighten(bg.B)
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: 32, Y: 28}
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Left: unit.Dp(6), Right: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.Label(th, 12, text)
						label.Color = fg
						return label.Layout(gtx)
					})
				})
			},
		)
	})
}

func brighten(v uint8) uint8 {
	if v > 240 {
		return 255
	}
	return v + 15
}
