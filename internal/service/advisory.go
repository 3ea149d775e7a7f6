package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kestrelworks/meritd/internal/domain/ability"
	"github.com/kestrelworks/meritd/internal/domain/reputation"
)

// Advisory thresholds and linear goal rates.
const (
	weakAbilityScore    = 50 // below this a dimension is an improvement target
	lowAbilityScore     = 40 // below this a dimension is a growth area
	goalAbilityScore    = 60 // abilities below this get an ability goal
	lowRatingCount      = 5
	lowBadgeCount       = 3
	failureRateCeiling  = 0.3
	dailyReputationGoal = 5
	dailyTaskGoal       = 2
)

// Suggestion is one advisory item.
type Suggestion struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
	Action   string `json:"action"`
}

// ActionAdvice is the suggestion projection for one agent.
type ActionAdvice struct {
	AgentID           string       `json:"agent_id"`
	Suggestions       []Suggestion `json:"suggestions"`
	TopAbility        *AbilityView `json:"top_ability,omitempty"`
	RecommendedAction string       `json:"recommended_action"`
}

// PersonalityAnalysis is the coarse personality projection derived from the
// single highest-scoring dimension and the reputation tier.
type PersonalityAnalysis struct {
	Personality    string   `json:"personality"`
	Traits         []string `json:"traits"`
	TrustLevel     string   `json:"trust_level"`
	Strengths      []string `json:"strengths"`
	GrowthAreas    []string `json:"growth_areas"`
	Recommendation string   `json:"recommendation"`
}

// Goal is one short-horizon numeric target.
type Goal struct {
	Type      string            `json:"type"`
	Dimension ability.Dimension `json:"dimension,omitempty"`
	Current   int               `json:"current"`
	Target    int               `json:"target"`
	Action    string            `json:"action"`
}

// GoalPlan is the goal projection over a requested day count.
type GoalPlan struct {
	PeriodDays int    `json:"period_days"`
	Goals      []Goal `json:"goals"`
	Summary    string `json:"summary"`
}

// AdvisoryService derives suggestions, personality labels, and goals purely
// from the current profile projections. It never mutates ledger state.
type AdvisoryService struct {
	agents *AgentService
}

// NewAdvisoryService creates an AdvisoryService reading through the agent
// service's profile projection.
func NewAdvisoryService(agents *AgentService) *AdvisoryService {
	return &AdvisoryService{agents: agents}
}

// Suggestions flags weak abilities, low review counts, badge scarcity, and a
// high failure rate.
func (s *AdvisoryService) Suggestions(ctx context.Context, agentID string) (*ActionAdvice, error) {
	p, err := s.agents.Profile(ctx, agentID)
	if err != nil {
		return nil, err
	}

	advice := &ActionAdvice{AgentID: agentID}

	var weak []string
	for _, a := range p.Abilities {
		if a.Score < weakAbilityScore {
			weak = append(weak, a.Name)
		}
	}
	if len(weak) > 0 {
		advice.Suggestions = append(advice.Suggestions, Suggestion{
			Type:     "ability",
			Priority: "high",
			Message:  "Consider improving: " + strings.Join(weak, ", "),
			Action:   "take_assessment",
		})
	}

	if p.Reputation.TotalRatings < lowRatingCount {
		advice.Suggestions = append(advice.Suggestions, Suggestion{
			Type:     "reputation",
			Priority: "high",
			Message:  "Take on more tasks and collect positive reviews to build reputation",
			Action:   "accept_tasks",
		})
	}

	if len(p.Badges) < lowBadgeCount {
		advice.Suggestions = append(advice.Suggestions, Suggestion{
			Type:     "badges",
			Priority: "medium",
			Message:  "Complete more tasks and challenges to earn badges",
			Action:   "earn_badges",
		})
	}

	if float64(p.Stats.TasksFailed) > float64(p.Stats.TasksCompleted)*failureRateCeiling {
		advice.Suggestions = append(advice.Suggestions, Suggestion{
			Type:     "quality",
			Priority: "high",
			Message:  "Failure rate is high; assess task difficulty before accepting",
			Action:   "improve_quality",
		})
	}

	if top := topAbility(p.Abilities); top != nil {
		advice.TopAbility = top
	}

	advice.RecommendedAction = "continue"
	if len(advice.Suggestions) > 0 {
		advice.RecommendedAction = advice.Suggestions[0].Action
	}
	return advice, nil
}

// Analysis derives the personality label from the highest-scoring dimension
// and maps the reputation tier to a trust level.
func (s *AdvisoryService) Analysis(ctx context.Context, agentID string) (*PersonalityAnalysis, error) {
	p, err := s.agents.Profile(ctx, agentID)
	if err != nil {
		return nil, err
	}

	personality := "balanced"
	traits := []string{"steady", "well-rounded"}
	if top := topAbility(p.Abilities); top != nil {
		switch top.Dimension {
		case ability.Coding:
			personality = "technical"
			traits = []string{"efficiency-minded", "logical", "loves optimizing"}
		case ability.Creativity:
			personality = "creative"
			traits = []string{"quick-thinking", "innovative", "seeks originality"}
		case ability.Communication:
			personality = "social"
			traits = []string{"communicative", "collaborative", "helpful"}
		case ability.Reasoning:
			personality = "analytical"
			traits = []string{"rational", "data-driven", "decisive"}
		}
	}

	out := &PersonalityAnalysis{
		Personality: personality,
		Traits:      traits,
		TrustLevel:  trustLevel(p.Reputation.Tier),
	}

	if top := topAbility(p.Abilities); top != nil {
		out.Strengths = []string{top.Name}
	}
	for _, a := range p.Abilities {
		if a.Score < lowAbilityScore {
			out.GrowthAreas = append(out.GrowthAreas, a.Name)
		}
	}

	focus := "overall development"
	if len(out.GrowthAreas) > 0 {
		focus = out.GrowthAreas[0]
	}
	out.Recommendation = fmt.Sprintf("As a %s agent, lean on being %s while working on %s", personality, traits[0], focus)
	return out, nil
}

// Goals extrapolates reputation and task-count targets linearly over the
// requested day count, plus one ability goal for the weakest dimension under
// the goal threshold.
func (s *AdvisoryService) Goals(ctx context.Context, agentID string, days int) (*GoalPlan, error) {
	if days <= 0 {
		days = 7
	}

	p, err := s.agents.Profile(ctx, agentID)
	if err != nil {
		return nil, err
	}

	plan := &GoalPlan{PeriodDays: days}

	repTarget := p.Reputation.Score + days*dailyReputationGoal
	plan.Goals = append(plan.Goals, Goal{
		Type:    "reputation",
		Current: p.Reputation.Score,
		Target:  repTarget,
		Action:  "complete more tasks and collect positive reviews",
	})

	for _, a := range p.Abilities {
		if a.Score < goalAbilityScore {
			plan.Goals = append(plan.Goals, Goal{
				Type:      "ability",
				Dimension: a.Dimension,
				Current:   a.Score,
				Target:    ability.Clamp(a.Score + 20),
				Action:    "practice and take verified tasks to raise " + a.Name,
			})
			break
		}
	}

	taskTarget := p.Stats.TasksCompleted + days*dailyTaskGoal
	plan.Goals = append(plan.Goals, Goal{
		Type:    "tasks",
		Current: p.Stats.TasksCompleted,
		Target:  taskTarget,
		Action:  "accept and complete more tasks",
	})

	plan.Summary = fmt.Sprintf("In %d days: reach %d reputation and %d completed tasks", days, repTarget, taskTarget)
	return plan, nil
}

// topAbility returns the highest-scoring dimension, catalog order breaking
// ties.
func topAbility(abilities []AbilityView) *AbilityView {
	var top *AbilityView
	for i := range abilities {
		if top == nil || abilities[i].Score > top.Score {
			top = &abilities[i]
		}
	}
	return top
}

func trustLevel(tier reputation.Tier) string {
	switch tier {
	case reputation.TierLegendary:
		return "very high"
	case reputation.TierOutstanding:
		return "high"
	case reputation.TierExcellent:
		return "good"
	case reputation.TierTrusted:
		return "moderate"
	default:
		return "unverified"
	}
}
