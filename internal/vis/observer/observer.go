// Package observer fans selection and answer changes out to sinks.
package observer

import (
	"context"
	"log/slog"
	"time"

	"github.com/elektrokombinacija/nexus-checker/internal/answers"
	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/events"
)

// Observer is notified of selection and answer changes.
type Observer interface {
	// OnStateSelected is called when a state is clicked and selected.
	OnStateSelected(id string)

	// OnAnswersCommitted is called when a state's answers change.
	OnAnswersCommitted(id string, set core.AnswerSet, status core.Status)

	// OnStateCleared is called when a state is deselected and its answers dropped.
	OnStateCleared(id string)
}

// Multi forwards every notification to each observer in order.
type Multi []Observer

func (m Multi) OnStateSelected(id string) {
	for _, o := range m {
		o.OnStateSelected(id)
	}
}

func (m Multi) OnAnswersCommitted(id string, set core.AnswerSet, status core.Status) {
	for _, o := range m {
		o.OnAnswersCommitted(id, set, status)
	}
}

func (m Multi) OnStateCleared(id string) {
	for _, o := range m {
		o.OnStateCleared(id)
	}
}

// Funcs adapts plain functions to Observer. Nil fields are skipped.
type Funcs struct {
	Selected  func(id string)
	Committed func(id string, set core.AnswerSet, status core.Status)
	Cleared   func(id string)
}

func (f Funcs) OnStateSelected(id string) {
	if f.Selected != nil {
		f.Selected(id)
	}
}

func (f Funcs) OnAnswersCommitted(id string, set core.AnswerSet, status core.Status) {
	if f.Committed != nil {
		f.Committed(id, set, status)
	}
}

func (f Funcs) OnStateCleared(id string) {
	if f.Cleared != nil {
		f.Cleared(id)
	}
}

// storeTimeout bounds each write made on behalf of the UI thread.
const storeTimeout = 3 * time.Second

// StoreObserver writes every change through to an answer store.
type StoreObserver struct {
	Store     answers.Store
	Namespace string
}

// NewStoreObserver creates an observer persisting into namespace.
func NewStoreObserver(s answers.Store, namespace string) *StoreObserver {
	return &StoreObserver{Store: s, Namespace: namespace}
}

func (o *StoreObserver) OnStateSelected(id string) {}

func (o *StoreObserver) OnAnswersCommitted(id string, set core.AnswerSet, status core.Status) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := o.Store.Save(ctx, o.Namespace, id, set); err != nil {
		slog.Error("save answers", "state", id, "namespace", o.Namespace, "error", err)
	}
}

func (o *StoreObserver) OnStateCleared(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := o.Store.Delete(ctx, o.Namespace, id); err != nil {
		slog.Error("delete answers", "state", id, "namespace", o.Namespace, "error", err)
	}
}

// Publisher is the subset of events.Publisher the event sink uses.
type Publisher interface {
	Publish(ev events.AnswerEvent) error
}

// EventObserver publishes answer changes.
type EventObserver struct {
	Publisher Publisher
	Namespace string
}

func (o *EventObserver) OnStateSelected(id string) {}

func (o *EventObserver) OnAnswersCommitted(id string, set core.AnswerSet, status core.Status) {
	set = set.Clone()
	o.publish(events.AnswerEvent{Kind: events.Committed, StateID: id, Answers: &set, Status: status})
}

func (o *EventObserver) OnStateCleared(id string) {
	o.publish(events.AnswerEvent{Kind: events.Cleared, StateID: id})
}

func (o *EventObserver) publish(ev events.AnswerEvent) {
	ev.Namespace = o.Namespace
	if err := o.Publisher.Publish(ev); err != nil {
		slog.Warn("publish answer event", "state", ev.StateID, "kind", ev.Kind, "error", err)
	}
}

// LogObserver logs every notification at debug level.
type LogObserver struct{}

func (LogObserver) OnStateSelected(id string) {
	slog.Debug("state selected", "state", id)
}

func (LogObserver) OnAnswersCommitted(id string, set core.AnswerSet, status core.Status) {
	slog.Debug("answers committed", "state", id, "status", status, "answers", len(set.All()))
}

func (LogObserver) OnStateCleared(id string) {
	slog.Debug("state cleared", "state", id)
}
