package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kestrelworks/meritd/internal/port/eventbus"
)

const meterName = "meritd"

// Metrics holds all meritd metric instruments.
type Metrics struct {
	AgentsRegistered metric.Int64Counter
	TasksCreated     metric.Int64Counter
	TasksCompleted   metric.Int64Counter
	ReviewsSubmitted metric.Int64Counter
	BadgesAwarded    metric.Int64Counter
	TaskQuality      metric.Int64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.AgentsRegistered, err = meter.Int64Counter("meritd.agents.registered",
		metric.WithDescription("Number of agents registered"))
	if err != nil {
		return nil, err
	}

	m.TasksCreated, err = meter.Int64Counter("meritd.tasks.created",
		metric.WithDescription("Number of tasks created"))
	if err != nil {
		return nil, err
	}

	m.TasksCompleted, err = meter.Int64Counter("meritd.tasks.completed",
		metric.WithDescription("Number of tasks completed"))
	if err != nil {
		return nil, err
	}

	m.ReviewsSubmitted, err = meter.Int64Counter("meritd.reviews.submitted",
		metric.WithDescription("Number of peer reviews submitted"))
	if err != nil {
		return nil, err
	}

	m.BadgesAwarded, err = meter.Int64Counter("meritd.badges.awarded",
		metric.WithDescription("Number of badges awarded"))
	if err != nil {
		return nil, err
	}

	m.TaskQuality, err = meter.Int64Histogram("meritd.task.quality",
		metric.WithDescription("Quality score reported at task completion"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Bind subscribes the instruments to the event bus so every ledger mutation
// is counted without plumbing metrics through the services. The returned
// function cancels all subscriptions.
func (m *Metrics) Bind(bus eventbus.Bus) (cancel func()) {
	cancels := []func(){
		bus.Subscribe(eventbus.KindAgentRegistered, func(ctx context.Context, _ eventbus.Event) {
			m.AgentsRegistered.Add(ctx, 1)
		}),
		bus.Subscribe(eventbus.KindTaskCreated, func(ctx context.Context, _ eventbus.Event) {
			m.TasksCreated.Add(ctx, 1)
		}),
		bus.Subscribe(eventbus.KindTaskCompleted, func(ctx context.Context, ev eventbus.Event) {
			m.TasksCompleted.Add(ctx, 1)
			if done, ok := ev.(eventbus.TaskCompleted); ok {
				m.TaskQuality.Record(ctx, int64(done.Quality))
			}
		}),
		bus.Subscribe(eventbus.KindReviewSubmitted, func(ctx context.Context, _ eventbus.Event) {
			m.ReviewsSubmitted.Add(ctx, 1)
		}),
		bus.Subscribe(eventbus.KindBadgeAwarded, func(ctx context.Context, ev eventbus.Event) {
			if awarded, ok := ev.(eventbus.BadgeAwarded); ok {
				m.BadgesAwarded.Add(ctx, 1, metric.WithAttributes(
					attribute.String("badge.id", string(awarded.Badge.ID)),
				))
				return
			}
			m.BadgesAwarded.Add(ctx, 1)
		}),
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}
