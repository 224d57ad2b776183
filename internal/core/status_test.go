package core

import "testing"

func TestClassify(t *testing.T) {
	rule := Rule{Question: strp("Q?"), Logic: LogicRevenue, PhysicalPrompts: []string{"a", "b"}}
	none := Rule{Logic: LogicNone}

	set := func(econ Answer, phys ...Answer) AnswerSet {
		s := AnswerSet{Economic: econ}
		for i, a := range phys {
			s.Set(i, a)
		}
		return s
	}

	tests := []struct {
		name string
		rule Rule
		set  AnswerSet
		want Status
	}{
		{"unanswered", rule, AnswerSet{}, StatusGray},
		{"all no", rule, set(No, No, No), StatusGreen},
		{"partial no", rule, set(No, No), StatusGray},
		{"economic yes", rule, set(Yes), StatusRed},
		{"physical yes", rule, set(No, No, Yes), StatusRed},
		{"unsure", rule, set(No, NotSure, No), StatusYellow},
		{"yes beats unsure", rule, set(NotSure, Yes, No), StatusRed},
		{"no sales tax", none, set(Yes), StatusGray},
	}

	for _, tt := range tests {
		if got := Classify(tt.rule, tt.set); got != tt.want {
			t.Errorf("Classify(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	shapes := []StateShape{
		{ID: "TX", Name: "Texas"},
		{ID: "AL", Name: "Alabama"},
		{ID: "OR", Name: "Oregon"},
	}
	rules := RuleBook{
		"Texas":   {Question: strp("Q?"), Logic: LogicRevenue, RevenueThreshold: 500000},
		"Alabama": {Question: strp("Q?"), Logic: LogicRevenue, RevenueThreshold: 250000},
		"Oregon":  {Logic: LogicNone},
	}
	answers := AnswerBook{
		"TX": {Economic: Yes},
		"AL": {Economic: No},
	}

	rows := Summarize(shapes, rules, answers, []string{"TX", "AL", "OR", "ZZ"})
	if len(rows) != 3 {
		t.Fatalf("Summarize() = %d rows, want 3", len(rows))
	}
	want := []struct {
		id     string
		status Status
	}{
		{"AL", StatusGreen},
		{"OR", StatusGray},
		{"TX", StatusRed},
	}
	for i, w := range want {
		if rows[i].ID != w.id || rows[i].Status != w.status {
			t.Errorf("row %d = %s/%s, want %s/%s", i, rows[i].ID, rows[i].Status, w.id, w.status)
		}
	}
	if rows[0].Threshold != "$250,000 in sales" {
		t.Errorf("AL threshold = %q", rows[0].Threshold)
	}
}
