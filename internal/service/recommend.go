package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kestrelworks/meritd/internal/domain/agent"
	"github.com/kestrelworks/meritd/internal/domain/task"
)

// recencyBoost is applied to candidates active within ActiveWindow of
// evaluation time. It breaks ties between otherwise-equal candidates
// deterministically in favor of the active one.
const recencyBoost = 1.2

// Recommendation is one ranked candidate for a task.
type Recommendation struct {
	AgentID     string `json:"agent_id"`
	Name        string `json:"name"`
	MatchScore  int    `json:"match_score"`
	Reputation  int    `json:"reputation"`
	SuccessRate int    `json:"success_rate"` // percentage
}

// RecommendService ranks agents against a task's requirements with a greedy
// single-pass weighted sum. Tasks are recommended independently and agents
// are not reserved, so no global matching is attempted.
type RecommendService struct {
	reg *Registry
}

// NewRecommendService creates a RecommendService over the shared registry.
func NewRecommendService(reg *Registry) *RecommendService {
	return &RecommendService{reg: reg}
}

// Recommend scores every agent except the task's requester and returns the
// top limit candidates, descending by match score, stable on ties.
//
// Per-candidate score: sum of ability scores over the task's required
// dimensions, plus 0.1x reputation, multiplied by the success ratio once the
// candidate has completed at least one task, multiplied by recencyBoost when
// active within the last 24 hours. Rounded to the nearest integer.
func (s *RecommendService) Recommend(_ context.Context, taskID string, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = 5
	}

	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	t, err := s.reg.taskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", taskID, err)
	}

	now := s.reg.now()

	type scored struct {
		agent *agent.Agent
		score int
	}
	var candidates []scored
	for _, a := range s.reg.agentsInOrder() {
		if a.ID == t.RequesterID {
			continue
		}
		candidates = append(candidates, scored{agent: a, score: matchScore(a, t, now)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Recommendation{
			AgentID:     c.agent.ID,
			Name:        c.agent.Name,
			MatchScore:  c.score,
			Reputation:  c.agent.Reputation.Score,
			SuccessRate: int(math.Round(c.agent.SuccessRate() * 100)),
		})
	}
	return out, nil
}

func matchScore(a *agent.Agent, t *task.Task, now time.Time) int {
	score := 0.0
	for _, dim := range t.RequiredAbilities {
		if ab, ok := a.Abilities[dim]; ok {
			score += float64(ab.Score)
		}
	}
	score += float64(a.Reputation.Score) * 0.1

	if a.Tasks.Completed > 0 {
		score *= a.SuccessRate()
	}
	if a.ActiveWithin(ActiveWindow, now) {
		score *= recencyBoost
	}

	return int(math.Round(score))
}
