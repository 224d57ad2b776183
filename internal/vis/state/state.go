// Package state manages the checker's interactive state.
package state

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/metrics"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/interact"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/observer"
)

// State holds everything a host needs to draw and drive the map.
type State struct {
	Map        *core.Map
	Viewport   *interact.Viewport
	Hit        *interact.HitRegion
	Tracker    *interact.Tracker
	Transition *interact.Transition
	Selection  *Selection
	Flow       *FlowState
	Observers  observer.Multi

	// Hover is the state under the pointer, if the host tracks hovering.
	Hover string
}

// Options tune a new State.
type Options struct {
	Levels    core.ZoomLevels
	Animation time.Duration
	TapSlop   float64
	Answers   core.AnswerBook
}

// New builds the state for m. Taps on the map select the state under them.
func New(m *core.Map, opts Options) *State {
	switch {
	case opts.Animation == 0:
		opts.Animation = interact.AnimationDuration
	case opts.Animation < 0:
		opts.Animation = 0
	}
	vp := interact.NewViewport(m.Space, opts.Levels)
	s := &State{
		Map:        m,
		Viewport:   vp,
		Hit:        interact.NewHitRegion(m.Shapes),
		Transition: interact.NewTransition(opts.Animation),
		Selection:  NewSelection(opts.Answers),
		Flow:       NewFlowState(),
	}
	s.Tracker = interact.NewTracker(vp)
	if opts.TapSlop > 0 {
		s.Tracker.TapSlop = opts.TapSlop
	}
	s.Tracker.OnTap = func(p core.Pt) { s.Tap(p) }
	return s
}

// Resolve returns the id of the state at logical point p.
func (s *State) Resolve(p core.Pt) (string, bool) {
	shape, ok := s.Hit.Resolve(p)
	metrics.ObserveResolve(ok)
	return shape.ID, ok
}

// Tap selects the state at logical point p. It returns the selected id,
// or "" when p is outside every state.
func (s *State) Tap(p core.Pt) string {
	id, ok := s.Resolve(p)
	if !ok {
		return ""
	}
	s.Select(id)
	return id
}

// Select marks a state selected and opens its question flow, seeded with
// its current answers.
func (s *State) Select(id string) {
	if _, ok := s.Map.Shape(id); !ok {
		return
	}
	s.Selection.Select(id)
	s.Observers.OnStateSelected(id)
	rule, _ := s.Map.Rule(id)
	prior, _ := s.Selection.Answers(id)
	s.Flow.Start(id, rule, prior)
}

// Answer answers the open question. When it was the last one the answers
// are committed.
func (s *State) Answer(a core.Answer) error {
	f := s.Flow.Current()
	if f == nil {
		return fmt.Errorf("no question open")
	}
	id := f.StateID
	done, set, err := s.Flow.Answer(a)
	if err != nil || !done {
		return err
	}
	s.Commit(id, set)
	return nil
}

// Commit stores a state's answers as one undoable action.
func (s *State) Commit(id string, set core.AnswerSet) {
	s.Selection.Execute(NewCommitAction(s.Selection, id, set))
	s.notify(id)
}

// Deselect drops a state and its answers.
func (s *State) Deselect(id string) {
	if !s.Selection.IsSelected(id) {
		return
	}
	if f := s.Flow.Current(); f != nil && f.StateID == id {
		s.Flow.Cancel()
	}
	s.Selection.Execute(NewDeselectAction(s.Selection, id))
	s.Observers.OnStateCleared(id)
}

// Undo reverts the last commit or deselect.
func (s *State) Undo() bool {
	a := s.Selection.Undo()
	if a == nil {
		return false
	}
	s.Flow.Cancel()
	s.notify(a.StateID())
	return true
}

// Redo reapplies the last undone action.
func (s *State) Redo() bool {
	a := s.Selection.Redo()
	if a == nil {
		return false
	}
	s.Flow.Cancel()
	s.notify(a.StateID())
	return true
}

func (s *State) notify(id string) {
	set, ok := s.Selection.Answers(id)
	switch {
	case !ok && s.Selection.IsSelected(id):
		s.Observers.OnStateSelected(id)
		return
	case !ok:
		s.Observers.OnStateCleared(id)
		return
	}
	s.Observers.OnAnswersCommitted(id, set, s.Status(id))
}

// Status classifies a state from its recorded answers.
func (s *State) Status(id string) core.Status {
	rule, ok := s.Map.Rule(id)
	if !ok {
		return core.StatusGray
	}
	set, _ := s.Selection.Answers(id)
	return core.Classify(rule, set)
}

// Summary returns a row for every selected state.
func (s *State) Summary() []core.SummaryRow {
	return s.Map.Summary(s.Selection.Book(), s.Selection.Order())
}

// Frame applies pending pan input and advances the region animation.
// It returns the region to draw and whether another frame is needed.
// Input arriving before the next frame is converted against that region.
func (s *State) Frame(now time.Time) (core.Rect, bool) {
	s.Tracker.Flush()
	r := s.Transition.Update(s.Viewport, now)
	s.Tracker.SetView(r)
	return r, s.Transition.Active()
}
