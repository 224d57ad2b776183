// Package bootstrap wires configuration into the map, the answer store and
// the event publisher shared by every command.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elektrokombinacija/nexus-checker/internal/answers"
	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/events"
	"github.com/elektrokombinacija/nexus-checker/internal/mapdata"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/config"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/observer"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/state"
)

// Env holds the long-lived dependencies of a command.
type Env struct {
	Config *config.Config
	Map    *core.Map
	Store  answers.Store
	Events *events.Publisher // nil when nats.url is empty
}

// Open loads map data, opens the answer store and, if configured,
// connects the event publisher.
func Open(ctx context.Context, cfg *config.Config) (*Env, error) {
	m, err := mapdata.Load(cfg.Map.StatesPath, cfg.Map.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}

	store, err := answers.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	env := &Env{Config: cfg, Map: m, Store: store}
	if cfg.NATS.URL != "" {
		pub, err := events.NewPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			store.Close()
			return nil, err
		}
		env.Events = pub
	}

	slog.Info("environment ready",
		"service", cfg.Service,
		"states", len(m.Shapes),
		"store", cfg.Store.Kind,
		"events", env.Events != nil,
	)
	return env, nil
}

// Observers returns the sinks that persist and publish changes made in
// namespace.
func (e *Env) Observers(namespace string) observer.Multi {
	obs := observer.Multi{
		observer.LogObserver{},
		observer.NewStoreObserver(e.Store, namespace),
	}
	if e.Events != nil {
		obs = append(obs, &observer.EventObserver{Publisher: e.Events, Namespace: namespace})
	}
	return obs
}

// NewState builds interactive state seeded with the answers stored in
// namespace and wired to its observers.
func (e *Env) NewState(ctx context.Context, namespace string) *state.State {
	vc := e.Config.Viewport
	st := state.New(e.Map, state.Options{
		Levels:    vc.Levels(),
		Animation: animation(vc.AnimationMS),
		TapSlop:   vc.TapSlop,
		Answers:   answers.LoadOrEmpty(ctx, e.Store, namespace),
	})
	st.Observers = e.Observers(namespace)
	return st
}

func animation(ms int) time.Duration {
	if ms == 0 {
		return -1
	}
	return time.Duration(ms) * time.Millisecond
}

// Close releases the store and drains the publisher.
func (e *Env) Close() {
	if e.Events != nil {
		e.Events.Close()
	}
	if err := e.Store.Close(); err != nil {
		slog.Warn("close store", "error", err)
	}
}
