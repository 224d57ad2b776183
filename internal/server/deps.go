// Package server exposes the map, rules and per-session answers over HTTP
// for hosts that embed the checker.
package server

import (
	"github.com/elektrokombinacija/nexus-checker/internal/answers"
	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/interact"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/observer"
)

// Dependencies holds everything the handlers need.
type Dependencies struct {
	Map       *core.Map
	Hit       *interact.HitRegion
	Levels    core.ZoomLevels
	Store     answers.Store
	Namespace string

	// Events receives answer changes; nil disables publishing.
	Events observer.Publisher

	// FontPath enables labels in PNG snapshots.
	FontPath string
	Version  string
}

// NewDependencies builds the hit region for m.
func NewDependencies(m *core.Map, store answers.Store, namespace string) *Dependencies {
	return &Dependencies{
		Map:       m,
		Hit:       interact.NewHitRegion(m.Shapes),
		Levels:    core.DefaultZoomLevels,
		Store:     store,
		Namespace: namespace,
		Version:   "dev",
	}
}

// sessionNamespace scopes a session's answers under the service namespace.
func (d *Dependencies) sessionNamespace(session string) string {
	return d.Namespace + ":" + session
}

// observers returns the sinks notified after a successful write.
func (d *Dependencies) observers(session string) observer.Multi {
	obs := observer.Multi{observer.LogObserver{}}
	if d.Events != nil {
		obs = append(obs, &observer.EventObserver{Publisher: d.Events, Namespace: d.sessionNamespace(session)})
	}
	return obs
}
