// Package agent defines the Agent aggregate: identity plus all derived
// ability, reputation, task and review state.
package agent

import (
	"time"

	"github.com/kestrelworks/meritd/internal/domain/ability"
	"github.com/kestrelworks/meritd/internal/domain/badge"
	"github.com/kestrelworks/meritd/internal/domain/reputation"
)

// TaskStats accumulates per-agent task outcomes.
type TaskStats struct {
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Abandoned int `json:"abandoned"`

	// AverageCompletionTime is an incremental running mean in seconds.
	AverageCompletionTime float64 `json:"average_completion_time"`

	// SatisfactionScore is a running mean of completion quality, rounded to
	// the nearest integer after every update (not only at read time).
	SatisfactionScore int `json:"satisfaction_score"`
}

// Profile is the free-form identity metadata supplied at registration.
type Profile struct {
	Name      string   `json:"name,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Specialty []string `json:"specialty,omitempty"`
}

// Agent is an actor with tracked abilities, reputation, and task history.
type Agent struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Bio       string   `json:"bio,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Specialty []string `json:"specialty,omitempty"`

	Abilities  map[ability.Dimension]*ability.Ability `json:"abilities"`
	Reputation reputation.Reputation                  `json:"reputation"`
	Tasks      TaskStats                              `json:"tasks"`

	ReviewsGiven    []string `json:"reviews_given"`
	ReviewsReceived []string `json:"reviews_received"`

	Badges []badge.ID `json:"badges"`

	// ConsecutiveEarly counts tasks finished ahead of their estimate in a
	// row; any late completion resets it to zero.
	ConsecutiveEarly int `json:"consecutive_early"`

	RegisteredAt time.Time `json:"registered_at"`
	LastActive   time.Time `json:"last_active"`
}

// New creates an Agent with every catalog dimension initialized to zero.
func New(id string, profile Profile, now time.Time) *Agent {
	name := profile.Name
	if name == "" {
		name = id
	}

	a := &Agent{
		ID:           id,
		Name:         name,
		Bio:          profile.Bio,
		Tags:         profile.Tags,
		Specialty:    profile.Specialty,
		Abilities:    make(map[ability.Dimension]*ability.Ability, len(ability.Dimensions())),
		Reputation:   reputation.Reputation{Tier: reputation.TierNovice},
		RegisteredAt: now,
		LastActive:   now,
	}
	for _, d := range ability.Dimensions() {
		a.Abilities[d.Dimension] = &ability.Ability{Level: ability.LevelEntry}
	}
	return a
}

// HasBadge reports whether the agent already holds the badge.
func (a *Agent) HasBadge(id badge.ID) bool {
	for _, held := range a.Badges {
		if held == id {
			return true
		}
	}
	return false
}

// SuccessRate returns (completed - failed) / completed, or zero when the
// agent has not completed any task.
func (a *Agent) SuccessRate() float64 {
	if a.Tasks.Completed == 0 {
		return 0
	}
	return float64(a.Tasks.Completed-a.Tasks.Failed) / float64(a.Tasks.Completed)
}

// ActiveWithin reports whether the agent was last active inside the window
// ending at now.
func (a *Agent) ActiveWithin(window time.Duration, now time.Time) bool {
	return now.Sub(a.LastActive) < window
}
