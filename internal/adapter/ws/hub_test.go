package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kestrelworks/meritd/internal/adapter/membus"
	"github.com/kestrelworks/meritd/internal/port/eventbus"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()
	if hub == nil {
		t.Fatal("expected non-nil hub")
	}
	if hub.ConnectionCount() != 0 {
		t.Fatalf("expected 0 connections, got %d", hub.ConnectionCount())
	}
}

func TestHubBroadcastNoConnections(t *testing.T) {
	hub := NewHub()

	// Broadcast with no connections should not panic.
	hub.Broadcast(context.Background(), Message{
		Type:    "test",
		Payload: json.RawMessage(`{"key":"value"}`),
	})
}

func TestHubRemoveNonexistent(t *testing.T) {
	hub := NewHub()

	// Removing a connection that was never added should not panic.
	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := &conn{ws: nil, cancel: cancel}
	hub.remove(c)
}

func TestBindSubscribesAllKinds(t *testing.T) {
	hub := NewHub()
	bus := membus.New()

	cancel := hub.Bind(bus)
	defer cancel()

	// Relaying with no connected clients should not panic for any kind.
	bus.Publish(context.Background(), eventbus.AgentRegistered{AgentID: "ada", Name: "Ada"})
	bus.Publish(context.Background(), eventbus.TaskCompleted{TaskID: "t1", AgentID: "ada", Quality: 90})
}
