package bootstrap

import (
	"context"
	"testing"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/config"
)

func TestOpenMemory(t *testing.T) {
	cfg := config.Default("test")
	cfg.Store.Kind = "memory"

	env, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer env.Close()

	if env.Events != nil {
		t.Errorf("Events set without nats.url")
	}
	if got := len(env.Observers("ns")); got != 2 {
		t.Errorf("len(Observers) = %d, want 2", got)
	}

	st := env.NewState(context.Background(), "ns")
	st.Commit("TX", core.AnswerSet{Economic: core.No})

	got, err := env.Store.Get(context.Background(), "ns", "TX")
	if err != nil {
		t.Fatalf("Get after commit: %v", err)
	}
	if got.Economic != core.No {
		t.Errorf("stored economic = %q, want no", got.Economic)
	}

	again := env.NewState(context.Background(), "ns")
	if !again.Selection.IsSelected("TX") {
		t.Errorf("new state did not load stored answers")
	}
}

func TestAnimation(t *testing.T) {
	tests := []struct {
		ms   int
		want int64
	}{
		{0, -1},
		{250, 250e6},
	}
	for _, tt := range tests {
		if got := animation(tt.ms); int64(got) != tt.want {
			t.Errorf("animation(%d) = %v, want %v", tt.ms, got, tt.want)
		}
	}
}
