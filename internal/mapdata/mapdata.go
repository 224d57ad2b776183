// Package mapdata loads the state outlines and nexus rules bundled with the
// binary, or overrides read from disk.
package mapdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

//go:embed states.json
var statesJSON []byte

//go:embed rules.json
var rulesJSON []byte

// Document is the on-disk form of the state outline list.
type Document struct {
	Width  float64           `json:"width"`
	Height float64           `json:"height"`
	States []core.StateShape `json:"states"`
}

// ParseDocument decodes a states document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse states: %w", err)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		doc.Width, doc.Height = core.MapSpace.W, core.MapSpace.H
	}
	seen := make(map[string]bool, len(doc.States))
	for _, s := range doc.States {
		if s.ID == "" {
			return nil, fmt.Errorf("parse states: shape %q has no id", s.Name)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("parse states: duplicate id %s", s.ID)
		}
		seen[s.ID] = true
	}
	return &doc, nil
}

// Load returns the map. Empty paths select the embedded data.
func Load(statesPath, rulesPath string) (*core.Map, error) {
	sdata, err := read(statesPath, statesJSON)
	if err != nil {
		return nil, err
	}
	rdata, err := read(rulesPath, rulesJSON)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(sdata)
	if err != nil {
		return nil, err
	}
	rules, err := core.ParseRuleBook(rdata)
	if err != nil {
		return nil, err
	}
	return core.NewMap(core.Size{W: doc.Width, H: doc.Height}, doc.States, rules), nil
}

// Default returns the embedded map.
func Default() (*core.Map, error) {
	return Load("", "")
}

func read(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
