// Package answers persists the answers given per state.
//
// Answers are grouped by namespace (one per user session or embedding
// host) and keyed by state id inside it.
package answers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/metrics"
)

// ErrNotFound is returned by Get when a state has no stored answers.
var ErrNotFound = errors.New("answers: not found")

// Store is a namespaced key-value store of answer sets.
type Store interface {
	Load(ctx context.Context, namespace string) (core.AnswerBook, error)
	Get(ctx context.Context, namespace, id string) (core.AnswerSet, error)
	Save(ctx context.Context, namespace, id string, set core.AnswerSet) error
	Delete(ctx context.Context, namespace, id string) error
	Close() error
}

// LoadOrEmpty loads a namespace. A read or parse failure is logged and
// treated as no prior answers.
func LoadOrEmpty(ctx context.Context, s Store, namespace string) core.AnswerBook {
	book, err := s.Load(ctx, namespace)
	if err != nil {
		slog.Warn("answers unavailable, starting empty", "namespace", namespace, "error", err)
		return core.AnswerBook{}
	}
	if book == nil {
		book = core.AnswerBook{}
	}
	return book
}

// instrumented counts store traffic in the metrics package.
type instrumented struct {
	Store
	kind string
}

// WithMetrics wraps s so saves and failures are counted under kind.
func WithMetrics(s Store, kind string) Store {
	return &instrumented{Store: s, kind: kind}
}

func (i *instrumented) Load(ctx context.Context, namespace string) (core.AnswerBook, error) {
	book, err := i.Store.Load(ctx, namespace)
	i.observe("load", err)
	return book, err
}

func (i *instrumented) Save(ctx context.Context, namespace, id string, set core.AnswerSet) error {
	err := i.Store.Save(ctx, namespace, id, set)
	i.observe("save", err)
	if err == nil {
		metrics.AnswersSaved.WithLabelValues(i.kind).Inc()
	}
	return err
}

func (i *instrumented) Delete(ctx context.Context, namespace, id string) error {
	err := i.Store.Delete(ctx, namespace, id)
	i.observe("delete", err)
	return err
}

func (i *instrumented) observe(op string, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) {
		metrics.StoreErrors.WithLabelValues(i.kind, op).Inc()
	}
}
