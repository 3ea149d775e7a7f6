package membus

import (
	"context"
	"testing"

	"github.com/kestrelworks/meritd/internal/port/eventbus"
)

func TestPublishDispatchesInSubscriptionOrder(t *testing.T) {
	bus := New()

	var order []int
	for i := 1; i <= 3; i++ {
		n := i
		bus.Subscribe(eventbus.KindTaskCreated, func(_ context.Context, _ eventbus.Event) {
			order = append(order, n)
		})
	}

	bus.Publish(context.Background(), eventbus.TaskCreated{TaskID: "t1", Title: "x"})

	if len(order) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(order))
	}
	for i, n := range order {
		if n != i+1 {
			t.Fatalf("expected subscription order [1 2 3], got %v", order)
		}
	}
}

func TestPublishOnlyMatchingKind(t *testing.T) {
	bus := New()

	var got []eventbus.Kind
	bus.Subscribe(eventbus.KindBadgeAwarded, func(_ context.Context, ev eventbus.Event) {
		got = append(got, ev.Kind())
	})

	bus.Publish(context.Background(), eventbus.TaskCreated{TaskID: "t1"})
	bus.Publish(context.Background(), eventbus.BadgeAwarded{AgentID: "a1"})

	if len(got) != 1 || got[0] != eventbus.KindBadgeAwarded {
		t.Fatalf("expected only badge.awarded, got %v", got)
	}
}

func TestCancelRemovesSubscription(t *testing.T) {
	bus := New()

	calls := 0
	cancel := bus.Subscribe(eventbus.KindTaskCreated, func(_ context.Context, _ eventbus.Event) {
		calls++
	})

	bus.Publish(context.Background(), eventbus.TaskCreated{TaskID: "t1"})
	cancel()
	bus.Publish(context.Background(), eventbus.TaskCreated{TaskID: "t2"})

	if calls != 1 {
		t.Fatalf("expected 1 call after cancel, got %d", calls)
	}
}
