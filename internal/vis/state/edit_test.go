package state

import (
	"slices"
	"testing"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

func TestSelectionSeeded(t *testing.T) {
	sel := NewSelection(core.AnswerBook{
		"TX": {Economic: core.No},
		"CA": {Economic: core.Yes},
	})
	if got := sel.Order(); !slices.Equal(got, []string{"CA", "TX"}) {
		t.Errorf("Order() = %v, want [CA TX]", got)
	}
	if sel.Select("CA") {
		t.Errorf("Select(CA) on a selected state returned true")
	}
	if !sel.Select("NY") || !sel.IsSelected("NY") {
		t.Errorf("Select(NY) did not select")
	}
}

func TestCommitUndoRedo(t *testing.T) {
	sel := NewSelection(nil)
	sel.Select("CA")

	sel.Execute(NewCommitAction(sel, "CA", core.AnswerSet{Economic: core.No}))
	sel.Execute(NewCommitAction(sel, "CA", core.AnswerSet{Economic: core.Yes}))

	if got, _ := sel.Answers("CA"); got.Economic != core.Yes {
		t.Errorf("after commits, economic = %q, want yes", got.Economic)
	}

	sel.Undo()
	if got, _ := sel.Answers("CA"); got.Economic != core.No {
		t.Errorf("after undo, economic = %q, want no", got.Economic)
	}
	sel.Undo()
	if _, ok := sel.Answers("CA"); ok {
		t.Errorf("after second undo, CA still has answers")
	}
	if !sel.IsSelected("CA") {
		t.Errorf("undoing a commit deselected the state")
	}
	if sel.Undo() != nil {
		t.Errorf("Undo on empty stack returned an action")
	}

	sel.Redo()
	if got, _ := sel.Answers("CA"); got.Economic != core.No {
		t.Errorf("after redo, economic = %q, want no", got.Economic)
	}
	if !sel.CanRedo() {
		t.Errorf("CanRedo = false, want true")
	}
	sel.Execute(NewCommitAction(sel, "TX", core.AnswerSet{}))
	if sel.CanRedo() {
		t.Errorf("new action did not clear the redo stack")
	}
}

func TestDeselectUndoRestoresPosition(t *testing.T) {
	sel := NewSelection(nil)
	for _, id := range []string{"CA", "NY", "TX"} {
		sel.Select(id)
	}
	sel.Execute(NewCommitAction(sel, "NY", core.AnswerSet{Economic: core.NotSure}))

	a := NewDeselectAction(sel, "NY")
	sel.Execute(a)
	if sel.IsSelected("NY") {
		t.Errorf("NY still selected after deselect")
	}
	if _, ok := sel.Answers("NY"); ok {
		t.Errorf("NY answers kept after deselect")
	}
	if a.Description() != "Deselect NY" {
		t.Errorf("Description() = %q", a.Description())
	}

	sel.Undo()
	if got := sel.Order(); !slices.Equal(got, []string{"CA", "NY", "TX"}) {
		t.Errorf("Order() after undo = %v, want [CA NY TX]", got)
	}
	if got, _ := sel.Answers("NY"); got.Economic != core.NotSure {
		t.Errorf("answers after undo = %+v", got)
	}
}
