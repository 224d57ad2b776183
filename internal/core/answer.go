package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Answer is a user's response to one question.
type Answer string

const (
	Yes     Answer = "yes"
	No      Answer = "no"
	NotSure Answer = "not_sure"
)

// Valid reports whether a is one of the three accepted answers.
func (a Answer) Valid() bool {
	return a == Yes || a == No || a == NotSure
}

// ParseAnswer accepts the stored form plus a few short aliases.
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return Yes, nil
	case "no", "n":
		return No, nil
	case "not_sure", "not sure", "unsure", "s", "?":
		return NotSure, nil
	}
	return "", fmt.Errorf("unknown answer %q", s)
}

// AnswerSet holds every answer given for one state.
// The JSON form is flat: {"economic": "yes", "physical_0": "no", ...}.
type AnswerSet struct {
	Economic Answer
	Physical map[int]Answer
}

const physicalPrefix = "physical_"

// MarshalJSON implements json.Marshaler.
func (s AnswerSet) MarshalJSON() ([]byte, error) {
	m := make(map[string]Answer, len(s.Physical)+1)
	if s.Economic != "" {
		m["economic"] = s.Economic
	}
	for i, a := range s.Physical {
		m[physicalPrefix+strconv.Itoa(i)] = a
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *AnswerSet) UnmarshalJSON(data []byte) error {
	var m map[string]Answer
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = AnswerSet{}
	for k, a := range m {
		if !a.Valid() {
			return fmt.Errorf("answer %s: invalid value %q", k, a)
		}
		switch {
		case k == "economic":
			s.Economic = a
		case strings.HasPrefix(k, physicalPrefix):
			i, err := strconv.Atoi(strings.TrimPrefix(k, physicalPrefix))
			if err != nil || i < 0 {
				return fmt.Errorf("answer %s: bad index", k)
			}
			s.Set(i, a)
		default:
			return fmt.Errorf("answer %s: unknown key", k)
		}
	}
	return nil
}

// Set records the answer to physical prompt i.
func (s *AnswerSet) Set(i int, a Answer) {
	if s.Physical == nil {
		s.Physical = make(map[int]Answer)
	}
	s.Physical[i] = a
}

// Empty reports whether no answers were recorded.
func (s AnswerSet) Empty() bool {
	return s.Economic == "" && len(s.Physical) == 0
}

// All returns every recorded answer, economic first, physical by index.
func (s AnswerSet) All() []Answer {
	var out []Answer
	if s.Economic != "" {
		out = append(out, s.Economic)
	}
	idx := make([]int, 0, len(s.Physical))
	for i := range s.Physical {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		out = append(out, s.Physical[i])
	}
	return out
}

// Clone returns a deep copy.
func (s AnswerSet) Clone() AnswerSet {
	c := AnswerSet{Economic: s.Economic}
	for i, a := range s.Physical {
		c.Set(i, a)
	}
	return c
}

// AnswerBook maps state ids to their answers.
type AnswerBook map[string]AnswerSet
