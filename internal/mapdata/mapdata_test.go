package mapdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

func TestDefault(t *testing.T) {
	m, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if m.Space != core.MapSpace {
		t.Errorf("Space = %v, want %v", m.Space, core.MapSpace)
	}
	if len(m.Shapes) != 51 {
		t.Errorf("len(Shapes) = %d, want 51", len(m.Shapes))
	}
	for _, s := range m.Shapes {
		if _, err := s.Outline(); err != nil {
			t.Errorf("%s: Outline: %v", s.ID, err)
		}
		if _, ok := m.Rules.Lookup(s.Name); !ok {
			t.Errorf("%s: no rule for %q", s.ID, s.Name)
		}
	}

	dc, ok := m.Shape("DC")
	if !ok || !dc.Overlay {
		t.Errorf("DC should be an overlay, got %+v", dc)
	}
	r, ok := m.Rule("CA")
	if !ok || r.Logic != core.LogicRevenue || r.RevenueThreshold != 500000 {
		t.Errorf("Rule(CA) = %+v, %v", r, ok)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	states := filepath.Join(dir, "states.json")
	doc := `{"width": 100, "height": 50, "states": [{"id": "XX", "name": "Nowhere", "d": "m 0,0 10,0 0,10 z"}]}`
	if err := os.WriteFile(states, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(states, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Space != (core.Size{W: 100, H: 50}) || len(m.Shapes) != 1 {
		t.Errorf("Load = %+v", m)
	}

	if _, err := Load(filepath.Join(dir, "missing.json"), ""); err == nil {
		t.Errorf("Load with missing file should fail")
	}
}

func TestParseDocumentDuplicate(t *testing.T) {
	_, err := ParseDocument([]byte(`{"states": [{"id": "A", "d": "m 0,0 1,0 z"}, {"id": "A", "d": "m 0,0 1,0 z"}]}`))
	if err == nil {
		t.Errorf("duplicate ids should fail")
	}
}
