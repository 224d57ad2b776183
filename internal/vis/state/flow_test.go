package state

import (
	"testing"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

func strp(s string) *string { return &s }

func testRule() core.Rule {
	return core.Rule{
		Question:         strp("Sales over $100,000?"),
		Logic:            core.LogicRevenue,
		RevenueThreshold: 100000,
		PhysicalPrompts:  []string{"Employees?", "Inventory?"},
	}
}

func TestFlowSteps(t *testing.T) {
	fs := NewFlowState()
	if !fs.Start("XX", testRule(), core.AnswerSet{}) {
		t.Fatal("Start returned false for a rule with questions")
	}

	tests := []struct {
		wantText string
		economic bool
		k, n     int
		answer   core.Answer
	}{
		{"Sales over $100,000?", true, 1, 3, core.No},
		{"Employees?", false, 2, 3, core.NotSure},
		{"Inventory?", false, 3, 3, core.No},
	}
	for i, tt := range tests {
		q, ok := fs.Question()
		if !ok {
			t.Fatalf("step %d: no question", i)
		}
		if q.Text != tt.wantText || q.Economic != tt.economic {
			t.Errorf("step %d: Question() = %+v, want %q economic=%v", i, q, tt.wantText, tt.economic)
		}
		if k, n := fs.Progress(); k != tt.k || n != tt.n {
			t.Errorf("step %d: Progress() = %d of %d, want %d of %d", i, k, n, tt.k, tt.n)
		}
		done, set, err := fs.Answer(tt.answer)
		if err != nil {
			t.Fatalf("step %d: Answer: %v", i, err)
		}
		last := i == len(tests)-1
		if done != last {
			t.Errorf("step %d: done = %v, want %v", i, done, last)
		}
		if last {
			if set.Economic != core.No || set.Physical[0] != core.NotSure || set.Physical[1] != core.No {
				t.Errorf("final set = %+v", set)
			}
		}
	}
	if fs.Active() {
		t.Errorf("flow still active after last answer")
	}
}

func TestFlowWithoutQuestion(t *testing.T) {
	r := testRule()
	r.Question = nil
	fs := NewFlowState()
	fs.Start("XX", r, core.AnswerSet{})

	q, _ := fs.Question()
	if q.Economic || q.Index != 0 || q.Text != "Employees?" {
		t.Errorf("first question = %+v, want physical prompt 0", q)
	}
	if _, n := fs.Progress(); n != 2 {
		t.Errorf("steps = %d, want 2", n)
	}
}

func TestFlowNoSteps(t *testing.T) {
	fs := NewFlowState()
	if fs.Start("OR", core.Rule{Logic: core.LogicNone}, core.AnswerSet{}) {
		t.Errorf("Start returned true for a rule without questions")
	}
	if fs.Active() {
		t.Errorf("flow active for a rule without questions")
	}
	if _, _, err := fs.Answer(core.Yes); err == nil {
		t.Errorf("Answer with no flow succeeded")
	}
}

func TestFlowBackAndInvalid(t *testing.T) {
	fs := NewFlowState()
	fs.Start("XX", testRule(), core.AnswerSet{})

	if fs.Back() {
		t.Errorf("Back at step 0 returned true")
	}
	if _, _, err := fs.Answer(core.Answer("maybe")); err == nil {
		t.Errorf("Answer(maybe) succeeded")
	}
	fs.Answer(core.Yes)
	if !fs.Back() {
		t.Fatalf("Back at step 1 returned false")
	}
	if k, _ := fs.Progress(); k != 1 {
		t.Errorf("after Back, step = %d, want 1", k)
	}
	if fs.Current().Partial.Economic != core.Yes {
		t.Errorf("Back dropped the previous answer")
	}
	fs.Cancel()
	if fs.Active() {
		t.Errorf("Cancel left the flow open")
	}
}

func TestFlowSeededWithPrior(t *testing.T) {
	prior := core.AnswerSet{Economic: core.Yes}
	prior.Set(1, core.Yes)
	fs := NewFlowState()
	fs.Start("XX", testRule(), prior)

	fs.Answer(core.No)
	fs.Current().Partial.Set(0, core.No)
	if prior.Economic != core.Yes {
		t.Errorf("flow wrote through to prior answers")
	}
	if _, ok := prior.Physical[0]; ok {
		t.Errorf("flow shared the prior physical map")
	}
}
