package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/kestrelworks/meritd/internal/port/eventbus"
)

// Bind subscribes the hub to every ledger event kind and forwards each
// published event to connected clients. The returned function cancels all
// subscriptions.
func (h *Hub) Bind(bus eventbus.Bus) (cancel func()) {
	var cancels []func()
	for _, kind := range eventbus.Kinds() {
		cancels = append(cancels, bus.Subscribe(kind, h.relay))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

// relay marshals one event and broadcasts it under its kind.
func (h *Hub) relay(ctx context.Context, ev eventbus.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("marshal ws event payload", "kind", ev.Kind(), "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    string(ev.Kind()),
		Payload: json.RawMessage(data),
	})
}
