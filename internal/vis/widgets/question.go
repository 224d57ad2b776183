package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/state"
)

// QuestionCard asks the open flow's current question.
type QuestionCard struct {
	state    *state.State
	progress *Progress

	yesBtn      widget.Clickable
	noBtn       widget.Clickable
	unsureBtn   widget.Clickable
	backBtn     widget.Clickable
	cancelBtn   widget.Clickable
	deselectBtn widget.Clickable
}

// NewQuestionCard creates the question panel.
func NewQuestionCard(st *state.State) *QuestionCard {
	return &QuestionCard{state: st, progress: NewProgress(st)}
}

var (
	colorCard    = color.NRGBA{R: 35, G: 38, B: 42, A: 255}
	colorText    = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	colorSubtle  = color.NRGBA{R: 150, G: 155, B: 160, A: 255}
	colorButton  = color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	colorPrimary = color.NRGBA{R: 40, G: 100, B: 170, A: 255}
)

// Layout renders the card. It draws nothing when no flow is open.
func (q *QuestionCard) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	q.handleClicks(gtx)

	flow := q.state.Flow.Current()
	if flow == nil {
		return layout.Dimensions{}
	}
	question, ok := flow.Question()
	if !ok {
		return layout.Dimensions{}
	}
	name := flow.StateID
	if shape, ok := q.state.Map.Shape(flow.StateID); ok {
		name = shape.Name
	}

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
			paint.FillShape(gtx.Ops, colorCard, clip.Rect(rect).Op())
			return layout.Dimensions{Size: gtx.Constraints.Min}
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						title := material.H6(th, name)
						title.Color = colorText
						return title.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return q.progress.Layout(gtx, th)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						body := material.Body1(th, question.Text)
						body.Color = colorText
						return body.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return q.layoutAnswers(gtx, th)
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return q.layoutNavigation(gtx, th, flow.Step == 0)
					}),
				)
			})
		},
	)
}

func (q *QuestionCard) layoutAnswers(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return flatButton(gtx, th, &q.yesBtn, "Yes", colorPrimary, false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return flatButton(gtx, th, &q.noBtn, "No", colorPrimary, false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return flatButton(gtx, th, &q.unsureBtn, "Not sure", colorPrimary, false)
		}),
	)
}

func (q *QuestionCard) layoutNavigation(gtx layout.Context, th *material.Theme, first bool) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return flatButton(gtx, th, &q.backBtn, "Back", colorButton, first)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return flatButton(gtx, th, &q.cancelBtn, "Close", colorButton, false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return flatButton(gtx, th, &q.deselectBtn, "Remove state", colorButton, false)
		}),
	)
}

func (q *QuestionCard) handleClicks(gtx layout.Context) {
	for q.yesBtn.Clicked(gtx) {
		q.state.Answer(core.Yes)
	}
	for q.noBtn.Clicked(gtx) {
		q.state.Answer(core.No)
	}
	for q.unsureBtn.Clicked(gtx) {
		q.state.Answer(core.NotSure)
	}
	for q.backBtn.Clicked(gtx) {
		q.state.Flow.Back()
	}
	for q.cancelBtn.Clicked(gtx) {
		q.state.Flow.Cancel()
	}
	for q.deselectBtn.Clicked(gtx) {
		if f := q.state.Flow.Current(); f != nil {
			q.state.Deselect(f.StateID)
		}
	}
}
