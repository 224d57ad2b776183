package core

// Map is the loaded map artwork plus the rules that apply to it.
type Map struct {
	Space  Size
	Shapes []StateShape
	Rules  RuleBook

	byID map[string]int
}

// NewMap indexes shapes by id.
func NewMap(space Size, shapes []StateShape, rules RuleBook) *Map {
	m := &Map{
		Space:  space,
		Shapes: shapes,
		Rules:  rules,
		byID:   make(map[string]int, len(shapes)),
	}
	for i, s := range shapes {
		m.byID[s.ID] = i
	}
	return m
}

// Shape returns the shape with the given id.
func (m *Map) Shape(id string) (StateShape, bool) {
	i, ok := m.byID[id]
	if !ok {
		return StateShape{}, false
	}
	return m.Shapes[i], true
}

// Rule returns the rule for the state with the given id.
func (m *Map) Rule(id string) (Rule, bool) {
	s, ok := m.Shape(id)
	if !ok {
		return Rule{}, false
	}
	return m.Rules.Lookup(s.Name)
}

// Summary builds summary rows for the given states.
func (m *Map) Summary(answers AnswerBook, ids []string) []SummaryRow {
	return Summarize(m.Shapes, m.Rules, answers, ids)
}
