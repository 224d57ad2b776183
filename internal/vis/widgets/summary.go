package widgets

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/draw"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/state"
)

// Summary lists every selected state with its status and threshold.
// Pressing a row reopens that state's questions.
type Summary struct {
	state *state.State
	list  widget.List
	rows  map[string]*widget.Clickable
}

// NewSummary creates the summary panel.
func NewSummary(st *state.State) *Summary {
	s := &Summary{state: st, rows: make(map[string]*widget.Clickable)}
	s.list.Axis = layout.Vertical
	return s
}

// Layout renders the panel at a fixed width.
func (s *Summary) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := gtx.Dp(unit.Dp(300))
	gtx.Constraints = layout.Exact(image.Pt(width, gtx.Constraints.Max.Y))
	paint.FillShape(gtx.Ops, colorCard, clip.Rect(image.Rect(0, 0, width, gtx.Constraints.Max.Y)).Op())

	rows := s.state.Summary()
	for _, r := range rows {
		if btn := s.rows[r.ID]; btn != nil {
			for btn.Clicked(gtx) {
				s.state.Select(r.ID)
			}
		}
	}

	return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		if len(rows) == 0 {
			hint := material.Body2(th, "Click a state to check whether you have nexus there.")
			hint.Color = colorSubtle
			return hint.Layout(gtx)
		}
		return material.List(th, &s.list).Layout(gtx, len(rows), func(gtx layout.Context, i int) layout.Dimensions {
			return s.layoutRow(gtx, th, rows[i])
		})
	})
}

func (s *Summary) layoutRow(gtx layout.Context, th *material.Theme, r core.SummaryRow) layout.Dimensions {
	btn := s.rows[r.ID]
	if btn == nil {
		btn = new(widget.Clickable)
		s.rows[r.ID] = btn
	}
	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Start}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					sz := gtx.Dp(unit.Dp(12))
					paint.FillShape(gtx.Ops, draw.StatusColor(r.Status), clip.Ellipse(image.Rect(0, 2, sz, sz+2)).Op(gtx.Ops))
					return layout.Dimensions{Size: image.Pt(sz, sz+2)}
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							name := material.Body1(th, r.Name)
							name.Color = colorText
							return name.Layout(gtx)
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							lbl := material.Caption(th, r.Label+" · "+r.Threshold)
							lbl.Color = colorSubtle
							return lbl.Layout(gtx)
						}),
					)
				}),
			)
		})
	})
}
