// Package nats implements the outbound event relay over NATS JetStream.
// Ledger events published on the in-process bus are republished to
// JetStream subjects for external subscribers; what those subscribers do
// with the notifications is out of scope for the core.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/kestrelworks/meritd/internal/port/eventbus"
)

const streamName = "MERITD"

// subjectPrefix namespaces all relayed subjects, e.g. "meritd.task.completed".
const subjectPrefix = "meritd."

// Relay forwards bus events to NATS JetStream.
type Relay struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// Connect establishes a connection to NATS and ensures the JetStream stream
// exists.
func Connect(ctx context.Context, url string) (*Relay, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{subjectPrefix + ">"},
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream stream create: %w", err)
	}

	slog.Info("nats connected", "url", url, "stream", streamName)
	return &Relay{nc: nc, js: js}, nil
}

// Bind subscribes the relay to every ledger event kind. The returned
// function cancels all subscriptions.
func (r *Relay) Bind(bus eventbus.Bus) (cancel func()) {
	var cancels []func()
	for _, kind := range eventbus.Kinds() {
		cancels = append(cancels, bus.Subscribe(kind, r.forward))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

// Subject maps an event kind to its JetStream subject.
func Subject(kind eventbus.Kind) string {
	return subjectPrefix + string(kind)
}

// forward publishes one event to its subject. Relay failures are logged and
// do not abort the triggering call; the ledger mutation already happened.
func (r *Relay) forward(ctx context.Context, ev eventbus.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("marshal relay event", "kind", ev.Kind(), "error", err)
		return
	}

	if _, err := r.js.Publish(ctx, Subject(ev.Kind()), data); err != nil {
		slog.Error("nats publish failed", "subject", Subject(ev.Kind()), "error", err)
	}
}

// Close shuts down the NATS connection.
func (r *Relay) Close() error {
	r.nc.Close()
	return nil
}
