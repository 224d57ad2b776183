package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/nexus-checker/internal/vis/state"
)

// Progress shows how far the open question flow has come. Pressing an
// earlier segment steps back to that question.
type Progress struct {
	state *state.State
}

// NewProgress creates a progress bar for the question flow.
func NewProgress(st *state.State) *Progress {
	return &Progress{
		state: st,
	}
}

const progressMargin = 12

// Layout renders the progress bar.
func (p *Progress) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 40
	k, n := p.state.Flow.Progress()
	if n == 0 {
		return layout.Dimensions{}
	}

	p.handlePointerEvents(gtx, height, n)

	trackY := 10
	trackHeight := 6
	trackWidth := gtx.Constraints.Max.X - 2*progressMargin
	gap := 3
	segW := (trackWidth - gap*(n-1)) / n

	for i := 0; i < n; i++ {
		x := progressMargin + i*(segW+gap)
		col := color.NRGBA{R: 60, G: 65, B: 70, A: 255}
		switch {
		case i < k-1:
			col = color.NRGBA{R: 100, G: 180, B: 255, A: 255}
		case i == k-1:
			col = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		seg := image.Rect(x, trackY, x+segW, trackY+trackHeight)
		paint.FillShape(gtx.Ops, col, clip.Rect(seg).Op())
	}

	label := material.Label(th, 12, fmt.Sprintf("Question %d of %d", k, n))
	label.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	label.Alignment = text.Start
	layout.Inset{Top: unit.Dp(18), Left: unit.Dp(progressMargin)}.Layout(gtx, label.Layout)

	return layout.Dimensions{Size: image.Point{X: gtx.Constraints.Max.X, Y: height}}
}

func (p *Progress) handlePointerEvents(gtx layout.Context, height, steps int) {
	trackWidth := gtx.Constraints.Max.X - 2*progressMargin

	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, p)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: p,
			Kinds:  pointer.Press,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok && pe.Kind == pointer.Press {
			p.seekToPosition(pe.Position.X, trackWidth, steps)
		}
	}
}

func (p *Progress) seekToPosition(screenX float32, trackWidth, steps int) {
	if trackWidth <= 0 {
		return
	}
	x := float64(screenX) - progressMargin
	target := int(x / float64(trackWidth) * float64(steps))
	if target < 0 {
		target = 0
	}
	for {
		k, _ := p.state.Flow.Progress()
		if k-1 <= target || !p.state.Flow.Back() {
			return
		}
	}
}
