package answers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/config"
)

func sample() core.AnswerSet {
	var s core.AnswerSet
	s.Economic = core.No
	s.Set(0, core.Yes)
	s.Set(2, core.NotSure)
	return s
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "a", "CA"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}

	if err := s.Save(ctx, "a", "CA", sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "b", "TX", sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "a", "CA")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Economic != core.No || got.Physical[0] != core.Yes || got.Physical[2] != core.NotSure {
		t.Errorf("Get(a, CA) = %+v, want saved set", got)
	}

	book, err := s.Load(ctx, "a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(book) != 1 {
		t.Errorf("Load(a) has %d entries, want 1", len(book))
	}
	if _, ok := book["TX"]; ok {
		t.Errorf("Load(a) leaked namespace b")
	}

	if err := s.Delete(ctx, "a", "CA"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "a", "CA"); err != nil {
		t.Errorf("second Delete = %v, want nil", err)
	}
	if _, err := s.Get(ctx, "a", "CA"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	set := sample()
	if err := s.Save(ctx, "a", "CA", set); err != nil {
		t.Fatal(err)
	}
	set.Set(5, core.Yes)

	got, _ := s.Get(ctx, "a", "CA")
	if _, ok := got.Physical[5]; ok {
		t.Errorf("stored set changed through caller's map")
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	exerciseStore(t, s)
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	if err := s.Save(ctx, "team/one", "NY", sample()); err != nil {
		t.Fatal(err)
	}

	reopened, _ := NewFileStore(dir)
	got, err := reopened.Get(ctx, "team/one", "NY")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Economic != core.No {
		t.Errorf("Economic = %q, want %q", got.Economic, core.No)
	}
	if _, err := os.Stat(filepath.Join(dir, "team_one.json")); err != nil {
		t.Errorf("namespace file not sanitized: %v", err)
	}
}

func TestLoadOrEmptyCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "x.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := NewFileStore(dir)

	book := LoadOrEmpty(context.Background(), s, "x")
	if book == nil || len(book) != 0 {
		t.Errorf("LoadOrEmpty(corrupt) = %v, want empty book", book)
	}
}

func TestLoadOrEmptyInvalidValue(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "x.json"), []byte(`{"CA":{"economic":"maybe"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := NewFileStore(dir)

	if book := LoadOrEmpty(context.Background(), s, "x"); len(book) != 0 {
		t.Errorf("LoadOrEmpty(invalid answer) = %v, want empty", book)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, config.StoreConfig{Kind: "memory"})
	if err != nil {
		t.Fatalf("Open(memory): %v", err)
	}
	exerciseStore(t, s)

	if _, err := Open(ctx, config.StoreConfig{Kind: "floppy"}); err == nil {
		t.Errorf("Open(floppy) succeeded, want error")
	}
}
