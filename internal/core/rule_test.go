package core

import "testing"

func strp(s string) *string { return &s }

func TestRuleThreshold(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{Rule{Logic: LogicRevenue, RevenueThreshold: 100000}, "$100,000 in sales"},
		{Rule{Logic: LogicOr, RevenueThreshold: 100000, TransactionThreshold: 200}, "$100,000 or 200 transactions"},
		{Rule{Logic: LogicAnd, RevenueThreshold: 500000, TransactionThreshold: 100}, "$500,000 and 100 transactions"},
		{Rule{Logic: LogicNone}, "No statewide sales tax"},
		{Rule{Logic: LogicRevenue, RevenueThreshold: 1000000}, "$1,000,000 in sales"},
	}

	for _, tt := range tests {
		if got := tt.rule.Threshold(); got != tt.want {
			t.Errorf("Threshold(%+v) = %q, want %q", tt.rule, got, tt.want)
		}
	}
}

func TestRuleSteps(t *testing.T) {
	r := Rule{Question: strp("Q?"), PhysicalPrompts: []string{"a", "b"}}
	if got := r.Steps(); got != 3 {
		t.Errorf("Steps() = %d, want 3", got)
	}
	r.Question = nil
	if got := r.Steps(); got != 2 {
		t.Errorf("Steps() without question = %d, want 2", got)
	}
}

func TestParseRuleBook(t *testing.T) {
	data := []byte(`{
		"Alabama": {"question": "Over $250,000?", "threshold_logic": "revenue",
			"revenue_threshold": 250000, "physical_prompts": ["Office?"]},
		"Oregon": {"question": null, "threshold_logic": "none", "physical_prompts": []}
	}`)
	rb, err := ParseRuleBook(data)
	if err != nil {
		t.Fatalf("ParseRuleBook: %v", err)
	}
	al, ok := rb.Lookup("Alabama")
	if !ok || al.RevenueThreshold != 250000 || al.Steps() != 2 {
		t.Errorf("Lookup(Alabama) = %+v, %v", al, ok)
	}
	or, ok := rb.Lookup("Oregon")
	if !ok || or.HasQuestion() || or.Logic != LogicNone {
		t.Errorf("Lookup(Oregon) = %+v, %v", or, ok)
	}
	if _, ok := rb.Lookup("Atlantis"); ok {
		t.Errorf("Lookup(Atlantis) should miss")
	}

	if _, err := ParseRuleBook([]byte(`{"X": {"threshold_logic": "maybe"}}`)); err == nil {
		t.Errorf("unknown logic should fail")
	}
}
