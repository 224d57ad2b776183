// Package events publishes answer changes to NATS.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// Kind of answer event.
type Kind string

const (
	Committed Kind = "committed"
	Cleared   Kind = "cleared"
)

// AnswerEvent is the payload published for every answer change.
type AnswerEvent struct {
	Kind      Kind            `json:"kind"`
	Namespace string          `json:"namespace"`
	StateID   string          `json:"state_id"`
	Answers   *core.AnswerSet `json:"answers,omitempty"`
	Status    core.Status     `json:"status,omitempty"`
	At        time.Time       `json:"at"`
}

// Subject returns the subject an event is published on.
func Subject(base, stateID string) string {
	return base + "." + stateID
}

// Publisher sends AnswerEvents over a plain NATS connection.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS. The connection keeps retrying in the
// background, so a broker that is down at startup is not fatal.
func NewPublisher(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn, subject: subject}, nil
}

// Publish encodes ev as JSON.
func (p *Publisher) Publish(ev AnswerEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.conn.Publish(Subject(p.subject, ev.StateID), data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}
