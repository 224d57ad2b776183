package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elektrokombinacija/nexus-checker/internal/bootstrap"
	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/config"
)

func openEnv(t *testing.T) *bootstrap.Env {
	t.Helper()
	cfg := config.Default("test")
	cfg.Store.Kind = "memory"
	env, err := bootstrap.Open(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(env.Close)
	return env
}

func TestRunUsage(t *testing.T) {
	env := openEnv(t)
	var out bytes.Buffer
	if err := run(context.Background(), env, "ns", nil, &out); !errors.Is(err, errUsage) {
		t.Errorf("run() = %v, want usage", err)
	}
	if err := run(context.Background(), env, "ns", []string{"bogus"}, &out); !errors.Is(err, errUsage) {
		t.Errorf("run(bogus) = %v, want usage", err)
	}
}

func TestSummary(t *testing.T) {
	env := openEnv(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := run(ctx, env, "ns", []string{"summary"}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "no answers") {
		t.Errorf("empty summary = %q", out.String())
	}

	if err := env.Store.Save(ctx, "ns", "AL", core.AnswerSet{Economic: core.Yes}); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := run(ctx, env, "ns", []string{"summary"}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Alabama") || !strings.Contains(out.String(), "Nexus indicated") {
		t.Errorf("summary = %q, want Alabama with nexus indicated", out.String())
	}

	out.Reset()
	if err := run(ctx, env, "ns", []string{"summary", "-json"}, &out); err != nil {
		t.Fatal(err)
	}
	var rows []core.SummaryRow
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "AL" || rows[0].Status != core.StatusRed {
		t.Errorf("rows = %+v, want AL red", rows)
	}
}

func TestResolve(t *testing.T) {
	env := openEnv(t)
	tests := []struct {
		arg  string
		want string
		err  bool
	}{
		{"670,430", "AL Alabama", false},
		{"5, 5", "no state", false},
		{"670", "", true},
		{"a,b", "", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		err := run(context.Background(), env, "ns", []string{"resolve", tt.arg}, &out)
		if (err != nil) != tt.err {
			t.Errorf("resolve %s: err = %v, want error %v", tt.arg, err, tt.err)
			continue
		}
		if !strings.Contains(out.String(), tt.want) {
			t.Errorf("resolve %s = %q, want %q", tt.arg, out.String(), tt.want)
		}
	}
}

func TestSnapshot(t *testing.T) {
	env := openEnv(t)
	path := filepath.Join(t.TempDir(), "map.png")

	var out bytes.Buffer
	args := []string{"snapshot", "-o", path, "-w", "320", "-h", "200", "-zoom", "2", "-at", "670,430"}
	if err := run(context.Background(), env, "ns", args, &out); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Errorf("size = %v, want 320x200", b)
	}

	if err := run(context.Background(), env, "ns", []string{"snapshot"}, &out); err == nil {
		t.Errorf("snapshot without -o succeeded")
	}
}
