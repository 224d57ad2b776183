package state

import (
	"fmt"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// Question is one step of a state's flow.
type Question struct {
	Text     string
	Economic bool
	Index    int // physical prompt index; -1 for the economic question
}

// Flow accumulates the answers for one state while its questions are asked.
type Flow struct {
	StateID string
	Rule    core.Rule
	Step    int
	Partial core.AnswerSet
}

// Question returns the question at the current step.
func (f *Flow) Question() (Question, bool) {
	step := f.Step
	if f.Rule.HasQuestion() {
		if step == 0 {
			return Question{Text: *f.Rule.Question, Economic: true, Index: -1}, true
		}
		step--
	}
	if step < 0 || step >= len(f.Rule.PhysicalPrompts) {
		return Question{}, false
	}
	return Question{Text: f.Rule.PhysicalPrompts[step], Index: step}, true
}

// FlowState owns the flow in progress, if any.
type FlowState struct {
	cur *Flow
}

// NewFlowState creates an idle flow controller.
func NewFlowState() *FlowState {
	return &FlowState{}
}

// Start opens the flow for a state, seeded with any prior answers.
// Rules without questions start nothing and return false.
func (fs *FlowState) Start(id string, rule core.Rule, prior core.AnswerSet) bool {
	if rule.Steps() == 0 {
		fs.cur = nil
		return false
	}
	fs.cur = &Flow{StateID: id, Rule: rule, Partial: prior.Clone()}
	return true
}

// Active reports whether a flow is open.
func (fs *FlowState) Active() bool { return fs.cur != nil }

// Current returns the open flow or nil.
func (fs *FlowState) Current() *Flow { return fs.cur }

// Question returns the current question of the open flow.
func (fs *FlowState) Question() (Question, bool) {
	if fs.cur == nil {
		return Question{}, false
	}
	return fs.cur.Question()
}

// Progress returns the 1-based step and the step count.
func (fs *FlowState) Progress() (int, int) {
	if fs.cur == nil {
		return 0, 0
	}
	return fs.cur.Step + 1, fs.cur.Rule.Steps()
}

// Answer records a for the current question and advances. When the last
// question is answered the flow closes and done is true with the full set.
func (fs *FlowState) Answer(a core.Answer) (done bool, set core.AnswerSet, err error) {
	if fs.cur == nil {
		return false, core.AnswerSet{}, fmt.Errorf("no question open")
	}
	if !a.Valid() {
		return false, core.AnswerSet{}, fmt.Errorf("invalid answer %q", a)
	}
	q, ok := fs.cur.Question()
	if !ok {
		return false, core.AnswerSet{}, fmt.Errorf("flow for %s has no step %d", fs.cur.StateID, fs.cur.Step)
	}
	if q.Economic {
		fs.cur.Partial.Economic = a
	} else {
		fs.cur.Partial.Set(q.Index, a)
	}
	fs.cur.Step++
	if fs.cur.Step < fs.cur.Rule.Steps() {
		return false, core.AnswerSet{}, nil
	}
	set = fs.cur.Partial
	fs.cur = nil
	return true, set, nil
}

// Back returns to the previous question, keeping its answer.
func (fs *FlowState) Back() bool {
	if fs.cur == nil || fs.cur.Step == 0 {
		return false
	}
	fs.cur.Step--
	return true
}

// Cancel drops the open flow and its partial answers.
func (fs *FlowState) Cancel() {
	fs.cur = nil
}
