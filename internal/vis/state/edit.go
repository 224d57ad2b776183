package state

import (
	"slices"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// EditAction is an undoable change to the selection.
type EditAction interface {
	Do(sel *Selection)
	Undo(sel *Selection)
	StateID() string
	Description() string
}

// Selection tracks the selected states, their answers, and the undo history.
type Selection struct {
	order   []string
	answers core.AnswerBook

	undoStack []EditAction
	redoStack []EditAction
}

// NewSelection creates a selection seeded from stored answers. Answered
// states start selected, in id order.
func NewSelection(book core.AnswerBook) *Selection {
	s := &Selection{answers: make(core.AnswerBook, len(book))}
	for id, set := range book {
		s.answers[id] = set.Clone()
		s.order = append(s.order, id)
	}
	slices.Sort(s.order)
	return s
}

// Select adds id to the selection. It reports whether id was new.
func (s *Selection) Select(id string) bool {
	if s.IsSelected(id) {
		return false
	}
	s.order = append(s.order, id)
	return true
}

func (s *Selection) remove(id string) int {
	i := slices.Index(s.order, id)
	if i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return i
}

func (s *Selection) insert(id string, i int) {
	if s.IsSelected(id) {
		return
	}
	if i < 0 || i > len(s.order) {
		i = len(s.order)
	}
	s.order = slices.Insert(s.order, i, id)
}

// IsSelected checks if a state is selected.
func (s *Selection) IsSelected(id string) bool {
	return slices.Contains(s.order, id)
}

// Order returns the selected ids in selection order.
func (s *Selection) Order() []string {
	return slices.Clone(s.order)
}

// Answers returns the recorded answers for a state.
func (s *Selection) Answers(id string) (core.AnswerSet, bool) {
	set, ok := s.answers[id]
	return set.Clone(), ok
}

// Book returns a copy of every recorded answer set.
func (s *Selection) Book() core.AnswerBook {
	out := make(core.AnswerBook, len(s.answers))
	for id, set := range s.answers {
		out[id] = set.Clone()
	}
	return out
}

// Execute performs an action and adds it to the undo stack.
func (s *Selection) Execute(action EditAction) {
	action.Do(s)
	s.undoStack = append(s.undoStack, action)
	s.redoStack = nil
}

// Undo undoes the last action.
func (s *Selection) Undo() EditAction {
	if len(s.undoStack) == 0 {
		return nil
	}
	action := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	action.Undo(s)
	s.redoStack = append(s.redoStack, action)
	return action
}

// Redo redoes the last undone action.
func (s *Selection) Redo() EditAction {
	if len(s.redoStack) == 0 {
		return nil
	}
	action := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	action.Do(s)
	s.undoStack = append(s.undoStack, action)
	return action
}

// CanUndo returns true if there are actions to undo.
func (s *Selection) CanUndo() bool { return len(s.undoStack) > 0 }

// CanRedo returns true if there are actions to redo.
func (s *Selection) CanRedo() bool { return len(s.redoStack) > 0 }

// CommitAction replaces a state's answers.
type CommitAction struct {
	ID  string
	New core.AnswerSet

	old    core.AnswerSet
	hadOld bool
}

// NewCommitAction captures the answers being replaced.
func NewCommitAction(sel *Selection, id string, set core.AnswerSet) *CommitAction {
	old, had := sel.answers[id]
	return &CommitAction{ID: id, New: set.Clone(), old: old.Clone(), hadOld: had}
}

func (a *CommitAction) Do(sel *Selection) {
	sel.Select(a.ID)
	sel.answers[a.ID] = a.New.Clone()
}

func (a *CommitAction) Undo(sel *Selection) {
	if a.hadOld {
		sel.answers[a.ID] = a.old.Clone()
		return
	}
	delete(sel.answers, a.ID)
}

func (a *CommitAction) StateID() string     { return a.ID }
func (a *CommitAction) Description() string { return "Answer " + a.ID }

// DeselectAction removes a state and its answers.
type DeselectAction struct {
	ID string

	index  int
	old    core.AnswerSet
	hadOld bool
}

// NewDeselectAction captures what deselecting id will drop.
func NewDeselectAction(sel *Selection, id string) *DeselectAction {
	old, had := sel.answers[id]
	return &DeselectAction{ID: id, index: slices.Index(sel.order, id), old: old.Clone(), hadOld: had}
}

func (a *DeselectAction) Do(sel *Selection) {
	sel.remove(a.ID)
	delete(sel.answers, a.ID)
}

func (a *DeselectAction) Undo(sel *Selection) {
	sel.insert(a.ID, a.index)
	if a.hadOld {
		sel.answers[a.ID] = a.old.Clone()
	}
}

func (a *DeselectAction) StateID() string     { return a.ID }
func (a *DeselectAction) Description() string { return "Deselect " + a.ID }
