// Package eventbus defines the typed publish/subscribe port. The set of
// event kinds is closed and every kind has a fixed payload shape. Dispatch is
// synchronous and in subscription order; handlers do not return errors, so a
// panicking handler aborts the triggering call.
package eventbus

import (
	"context"

	"github.com/kestrelworks/meritd/internal/domain/ability"
	"github.com/kestrelworks/meritd/internal/domain/badge"
)

// Kind enumerates the event kinds published by the core.
type Kind string

const (
	KindAgentRegistered Kind = "agent.registered"
	KindAbilityUpdated  Kind = "ability.updated"
	KindTaskCreated     Kind = "task.created"
	KindTaskAccepted    Kind = "task.accepted"
	KindTaskCompleted   Kind = "task.completed"
	KindReviewSubmitted Kind = "review.submitted"
	KindBadgeAwarded    Kind = "badge.awarded"
)

// Kinds returns every event kind, in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindAgentRegistered,
		KindAbilityUpdated,
		KindTaskCreated,
		KindTaskAccepted,
		KindTaskCompleted,
		KindReviewSubmitted,
		KindBadgeAwarded,
	}
}

// Event is implemented by every payload type below.
type Event interface {
	Kind() Kind
}

// AgentRegistered is published when a new agent joins the ledger.
type AgentRegistered struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
}

func (AgentRegistered) Kind() Kind { return KindAgentRegistered }

// AbilityUpdated is published after an ability score changes.
type AbilityUpdated struct {
	AgentID   string            `json:"agent_id"`
	Dimension ability.Dimension `json:"dimension"`
	Score     int               `json:"score"`
	Source    string            `json:"source"`
}

func (AbilityUpdated) Kind() Kind { return KindAbilityUpdated }

// TaskCreated is published when a task enters the ledger in the open state.
type TaskCreated struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
}

func (TaskCreated) Kind() Kind { return KindTaskCreated }

// TaskAccepted is published when an agent takes a task.
type TaskAccepted struct {
	TaskID  string `json:"task_id"`
	AgentID string `json:"agent_id"`
}

func (TaskAccepted) Kind() Kind { return KindTaskAccepted }

// TaskCompleted is published when the assignee reports completion.
type TaskCompleted struct {
	TaskID  string `json:"task_id"`
	AgentID string `json:"agent_id"`
	Quality int    `json:"quality"`
}

func (TaskCompleted) Kind() Kind { return KindTaskCompleted }

// ReviewSubmitted is published when a peer review is recorded.
type ReviewSubmitted struct {
	ReviewID   string `json:"review_id"`
	ReviewerID string `json:"reviewer_id"`
	TargetID   string `json:"target_id"`
	Rating     int    `json:"rating"`
}

func (ReviewSubmitted) Kind() Kind { return KindReviewSubmitted }

// BadgeAwarded is published on the first (and only the first) award of a
// badge to an agent, with the badge's display metadata.
type BadgeAwarded struct {
	AgentID string      `json:"agent_id"`
	Badge   badge.Badge `json:"badge"`
}

func (BadgeAwarded) Kind() Kind { return KindBadgeAwarded }

// Handler processes one published event.
type Handler func(ctx context.Context, ev Event)

// Bus is the port interface for the process-wide event facility.
type Bus interface {
	// Publish delivers ev to every handler subscribed to its kind,
	// synchronously and in subscription order.
	Publish(ctx context.Context, ev Event)

	// Subscribe registers a handler for one event kind. The returned
	// function cancels the subscription.
	Subscribe(kind Kind, h Handler) (cancel func())
}
