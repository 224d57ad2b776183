package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Logic describes how a state's economic nexus thresholds combine.
type Logic string

const (
	LogicAnd     Logic = "and"     // revenue AND transaction count
	LogicOr      Logic = "or"      // revenue OR transaction count
	LogicRevenue Logic = "revenue" // revenue only
	LogicNone    Logic = "none"    // no statewide sales tax
)

// Valid reports whether l is a known logic value.
func (l Logic) Valid() bool {
	switch l {
	case LogicAnd, LogicOr, LogicRevenue, LogicNone:
		return true
	}
	return false
}

// Rule is the nexus questionnaire for one state.
type Rule struct {
	Question             *string  `json:"question"`
	Logic                Logic    `json:"threshold_logic"`
	RevenueThreshold     float64  `json:"revenue_threshold,omitempty"`
	TransactionThreshold int      `json:"transaction_threshold,omitempty"`
	PhysicalPrompts      []string `json:"physical_prompts"`
}

// HasQuestion reports whether the rule asks an economic question.
func (r Rule) HasQuestion() bool {
	return r.Question != nil && *r.Question != ""
}

// Steps returns the number of questions in the state's flow.
func (r Rule) Steps() int {
	n := len(r.PhysicalPrompts)
	if r.HasQuestion() {
		n++
	}
	return n
}

// Threshold describes the economic threshold in plain words.
func (r Rule) Threshold() string {
	rev := formatDollars(r.RevenueThreshold)
	switch r.Logic {
	case LogicAnd:
		return fmt.Sprintf("%s and %d transactions", rev, r.TransactionThreshold)
	case LogicOr:
		return fmt.Sprintf("%s or %d transactions", rev, r.TransactionThreshold)
	case LogicRevenue:
		return rev + " in sales"
	default:
		return "No statewide sales tax"
	}
}

func formatDollars(v float64) string {
	digits := fmt.Sprintf("%d", int64(v))
	var b strings.Builder
	b.WriteByte('$')
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// RuleBook maps state names to their rules.
type RuleBook map[string]Rule

// ParseRuleBook decodes a rules document keyed by state name.
func ParseRuleBook(data []byte) (RuleBook, error) {
	var rb RuleBook
	if err := json.Unmarshal(data, &rb); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	for name, r := range rb {
		if !r.Logic.Valid() {
			return nil, fmt.Errorf("parse rules: %s: unknown threshold logic %q", name, r.Logic)
		}
	}
	return rb, nil
}

// Lookup returns the rule for a state name.
func (rb RuleBook) Lookup(name string) (Rule, bool) {
	r, ok := rb[name]
	return r, ok
}
