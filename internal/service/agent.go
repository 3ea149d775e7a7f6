package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kestrelworks/meritd/internal/domain"
	"github.com/kestrelworks/meritd/internal/domain/ability"
	"github.com/kestrelworks/meritd/internal/domain/agent"
	"github.com/kestrelworks/meritd/internal/domain/badge"
	"github.com/kestrelworks/meritd/internal/domain/reputation"
	"github.com/kestrelworks/meritd/internal/port/eventbus"
)

// AgentService handles agent registration, ability mutation, and profile reads.
type AgentService struct {
	reg *Registry
}

// NewAgentService creates an AgentService over the shared registry.
func NewAgentService(reg *Registry) *AgentService {
	return &AgentService{reg: reg}
}

// Register adds a new agent with every catalog dimension at zero, publishes
// agent.registered, and awards the first-task badge.
func (s *AgentService) Register(ctx context.Context, id string, profile agent.Profile) (*agent.Agent, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: agent id is required", domain.ErrValidation)
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	if _, exists := s.reg.agents[id]; exists {
		return nil, fmt.Errorf("%w: agent %q already registered", domain.ErrValidation, id)
	}

	a := agent.New(id, profile, s.reg.now())
	s.reg.agents[id] = a
	s.reg.agentOrder = append(s.reg.agentOrder, id)

	s.reg.bus.Publish(ctx, eventbus.AgentRegistered{AgentID: id, Name: a.Name})
	_, _ = s.reg.awardBadge(ctx, a, badge.FirstTask)

	return a, nil
}

// UpdateAbility clamps the raw score into [0,100], recomputes the level,
// appends to the dimension's history window, re-evaluates badges, and
// returns the updated ability snapshot.
func (s *AgentService) UpdateAbility(ctx context.Context, agentID string, dim ability.Dimension, score int, source string) (*ability.Ability, error) {
	if source == "" {
		source = "self"
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	a, err := s.reg.agentByID(agentID)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", agentID, err)
	}

	ab, err := s.reg.setAbility(ctx, a, dim, score, source)
	if err != nil {
		return nil, fmt.Errorf("dimension %s: %w", dim, err)
	}
	return ab, nil
}

// AbilityView is one dimension of a profile, joined with catalog metadata.
type AbilityView struct {
	Dimension ability.Dimension `json:"dimension"`
	Name      string            `json:"name"`
	Weight    float64           `json:"weight"`
	ability.Ability
}

// ReputationView is the reputation block of a profile.
type ReputationView struct {
	Score           int             `json:"score"`
	Tier            reputation.Tier `json:"tier"`
	TotalRatings    int             `json:"total_ratings"`
	PositiveRatings int             `json:"positive_ratings"`
	AverageRating   float64         `json:"average_rating"`
}

// StatsView is the task-statistics block of a profile.
type StatsView struct {
	TasksCompleted       int     `json:"tasks_completed"`
	TasksFailed          int     `json:"tasks_failed"`
	SuccessRate          float64 `json:"success_rate"` // percentage
	SatisfactionScore    int     `json:"satisfaction_score"`
	AvgCompletionMinutes int     `json:"avg_completion_minutes"`
}

// ProfileView is the full read-side projection of one agent.
type ProfileView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Bio       string   `json:"bio,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Specialty []string `json:"specialty,omitempty"`

	Abilities  []AbilityView  `json:"abilities"`
	Reputation ReputationView `json:"reputation"`
	Stats      StatsView      `json:"stats"`
	Badges     []badge.Badge  `json:"badges"`

	ConsecutiveEarly int       `json:"consecutive_early"`
	RegisteredAt     time.Time `json:"registered_at"`
	LastActive       time.Time `json:"last_active"`
}

// Profile returns the agent's full profile projection.
func (s *AgentService) Profile(_ context.Context, agentID string) (*ProfileView, error) {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	a, err := s.reg.agentByID(agentID)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", agentID, err)
	}
	return profileOf(a), nil
}

func profileOf(a *agent.Agent) *ProfileView {
	p := &ProfileView{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		Tags:      a.Tags,
		Specialty: a.Specialty,
		Reputation: ReputationView{
			Score:           a.Reputation.Score,
			Tier:            reputation.TierOf(a.Reputation.Score),
			TotalRatings:    a.Reputation.TotalRatings,
			PositiveRatings: a.Reputation.PositiveRatings,
			AverageRating:   a.Reputation.AverageRating,
		},
		Stats: StatsView{
			TasksCompleted:       a.Tasks.Completed,
			TasksFailed:          a.Tasks.Failed,
			SuccessRate:          math.Round(a.SuccessRate()*1000) / 10,
			SatisfactionScore:    a.Tasks.SatisfactionScore,
			AvgCompletionMinutes: int(math.Round(a.Tasks.AverageCompletionTime / 60)),
		},
		ConsecutiveEarly: a.ConsecutiveEarly,
		RegisteredAt:     a.RegisteredAt,
		LastActive:       a.LastActive,
	}

	for _, d := range ability.Dimensions() {
		p.Abilities = append(p.Abilities, AbilityView{
			Dimension: d.Dimension,
			Name:      d.Name,
			Weight:    d.Weight,
			Ability:   *a.Abilities[d.Dimension],
		})
	}

	for _, id := range a.Badges {
		if b, ok := badge.Lookup(id); ok {
			p.Badges = append(p.Badges, b)
		}
	}

	return p
}
