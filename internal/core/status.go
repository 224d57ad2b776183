package core

import "sort"

// Status is the summary color for one state.
type Status string

const (
	StatusGreen  Status = "green"  // no nexus indicated
	StatusYellow Status = "yellow" // at least one unsure answer
	StatusRed    Status = "red"    // nexus indicated
	StatusGray   Status = "gray"   // not evaluated or no sales tax
)

// Label is the human text shown next to the color.
func (s Status) Label() string {
	switch s {
	case StatusGreen:
		return "No nexus indicated"
	case StatusYellow:
		return "Review needed"
	case StatusRed:
		return "Nexus indicated"
	default:
		return "Not evaluated"
	}
}

// Hex is the fill color used for the status on maps and in the summary.
func (s Status) Hex() string {
	switch s {
	case StatusGreen:
		return "#4caf50"
	case StatusYellow:
		return "#ffc107"
	case StatusRed:
		return "#e53935"
	default:
		return "#9e9e9e"
	}
}

// Classify derives a state's status from its rule and answers.
//
// Any yes means nexus. Otherwise any not-sure needs review. All questions
// answered no clears the state. Anything else is not yet evaluated.
func Classify(r Rule, set AnswerSet) Status {
	if r.Logic == LogicNone || r.Steps() == 0 {
		return StatusGray
	}
	all := set.All()
	unsure := false
	for _, a := range all {
		switch a {
		case Yes:
			return StatusRed
		case NotSure:
			unsure = true
		}
	}
	if unsure {
		return StatusYellow
	}
	if len(all) >= r.Steps() {
		return StatusGreen
	}
	return StatusGray
}

// SummaryRow is one line of the summary table.
type SummaryRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    Status `json:"status"`
	Label     string `json:"label"`
	Threshold string `json:"threshold"`
}

// Summarize builds summary rows for every state in ids, sorted by name.
// States without a rule are reported gray.
func Summarize(shapes []StateShape, rules RuleBook, answers AnswerBook, ids []string) []SummaryRow {
	byID := make(map[string]StateShape, len(shapes))
	for _, s := range shapes {
		byID[s.ID] = s
	}
	rows := make([]SummaryRow, 0, len(ids))
	for _, id := range ids {
		shape, ok := byID[id]
		if !ok {
			continue
		}
		row := SummaryRow{ID: id, Name: shape.Name, Status: StatusGray}
		if r, ok := rules.Lookup(shape.Name); ok {
			row.Status = Classify(r, answers[id])
			row.Threshold = r.Threshold()
		}
		row.Label = row.Status.Label()
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}
