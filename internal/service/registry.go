// Package service implements the scoring and matching engine: registration,
// ability tracking, task lifecycle, peer reviews, badge evaluation, and the
// read-side projections over the agent population.
package service

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/kestrelworks/meritd/internal/domain"
	"github.com/kestrelworks/meritd/internal/domain/ability"
	"github.com/kestrelworks/meritd/internal/domain/agent"
	"github.com/kestrelworks/meritd/internal/domain/badge"
	"github.com/kestrelworks/meritd/internal/domain/review"
	"github.com/kestrelworks/meritd/internal/domain/task"
	"github.com/kestrelworks/meritd/internal/port/eventbus"
)

// ActiveWindow is the wall-clock window within which an agent counts as
// recently active, for both system stats and the recommendation boost.
const ActiveWindow = 24 * time.Hour

// Registry owns all ledger state: the agent, task, and review collections.
// It replaces ambient/static registries so independent instances can coexist.
// Insertion order is tracked explicitly because leaderboard and
// recommendation ties break by original iteration order.
//
// The core contract assumes a single logical caller per transaction; the
// mutex is the external synchronization needed because the HTTP host serves
// concurrently.
type Registry struct {
	mu sync.RWMutex

	agents     map[string]*agent.Agent
	agentOrder []string

	tasks     map[string]*task.Task
	taskOrder []string

	reviews     map[string]*review.Review
	reviewOrder []string

	bus eventbus.Bus
	now func() time.Time
}

// NewRegistry creates an empty Registry publishing to bus.
func NewRegistry(bus eventbus.Bus) *Registry {
	return &Registry{
		agents:  make(map[string]*agent.Agent),
		tasks:   make(map[string]*task.Task),
		reviews: make(map[string]*review.Review),
		bus:     bus,
		now:     time.Now,
	}
}

// SetClock replaces the registry clock. Intended for tests.
func (r *Registry) SetClock(now func() time.Time) { r.now = now }

// --- helpers below assume r.mu is held by the caller ---

func (r *Registry) agentByID(id string) (*agent.Agent, error) {
	a, ok := r.agents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (r *Registry) taskByID(id string) (*task.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// agentsInOrder returns all agents in registration order.
func (r *Registry) agentsInOrder() []*agent.Agent {
	out := make([]*agent.Agent, 0, len(r.agentOrder))
	for _, id := range r.agentOrder {
		out = append(out, r.agents[id])
	}
	return out
}

// tasksInOrder returns all tasks in creation order.
func (r *Registry) tasksInOrder() []*task.Task {
	out := make([]*task.Task, 0, len(r.taskOrder))
	for _, id := range r.taskOrder {
		out = append(out, r.tasks[id])
	}
	return out
}

// setAbility applies a clamped score to one dimension, records history,
// re-evaluates badges, and publishes ability.updated.
func (r *Registry) setAbility(ctx context.Context, a *agent.Agent, dim ability.Dimension, score int, source string) (*ability.Ability, error) {
	if !dim.Valid() {
		return nil, domain.ErrNotFound
	}

	ab := a.Abilities[dim]
	ab.Record(score, source, r.now())
	if source == "task" {
		ab.Verified = true
	}

	r.checkBadges(ctx, a)

	r.bus.Publish(ctx, eventbus.AbilityUpdated{
		AgentID:   a.ID,
		Dimension: dim,
		Score:     ab.Score,
		Source:    source,
	})
	return ab, nil
}

// awardBadge appends the badge to the agent's set if not already held and
// publishes badge.awarded on first award only.
func (r *Registry) awardBadge(ctx context.Context, a *agent.Agent, id badge.ID) (bool, error) {
	b, ok := badge.Lookup(id)
	if !ok {
		return false, domain.ErrNotFound
	}
	if a.HasBadge(id) {
		return false, nil
	}

	a.Badges = append(a.Badges, id)
	r.bus.Publish(ctx, eventbus.BadgeAwarded{AgentID: a.ID, Badge: b})
	return true, nil
}

// checkBadges runs the idempotent badge rule set against the agent's current
// derived state. Badges are never revoked.
func (r *Registry) checkBadges(ctx context.Context, a *agent.Agent) {
	if a.Abilities[ability.Coding].Level == ability.LevelExpert {
		_, _ = r.awardBadge(ctx, a, badge.CodeMaster)
	}
	if a.Reputation.TotalRatings >= 10 {
		_, _ = r.awardBadge(ctx, a, badge.TeamPlayer)
	}
	if a.Tasks.Completed > 0 && a.Tasks.SatisfactionScore == 100 {
		_, _ = r.awardBadge(ctx, a, badge.Perfectionist)
	}
	if a.ConsecutiveEarly >= 5 {
		_, _ = r.awardBadge(ctx, a, badge.Speed)
	}
	if a.Tasks.Completed >= 50 {
		_, _ = r.awardBadge(ctx, a, badge.Veteran)
	}

	capable := 0
	for _, ab := range a.Abilities {
		if ab.Level.AtLeastIntermediate() {
			capable++
		}
	}
	if capable >= 5 {
		_, _ = r.awardBadge(ctx, a, badge.MultiTalented)
	}
}

// roundMean is the running-mean fold with per-step rounding used for the
// satisfaction score. Rounding happens after every update, not at read time;
// the resulting drift is preserved deliberately.
func roundMean(prev, sample, count int) int {
	return int(math.Round(float64(prev*(count-1)+sample) / float64(count)))
}
