package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kestrelworks/meritd/internal/domain"
	"github.com/kestrelworks/meritd/internal/domain/agent"
	"github.com/kestrelworks/meritd/internal/domain/reputation"
	"github.com/kestrelworks/meritd/internal/domain/review"
	"github.com/kestrelworks/meritd/internal/domain/task"
)

// Metric selects the value a leaderboard sorts by.
type Metric string

const (
	MetricReputation   Metric = "reputation"
	MetricTasks        Metric = "tasks"
	MetricRating       Metric = "rating"
	MetricSatisfaction Metric = "satisfaction"
)

// Entry is one leaderboard row.
type Entry struct {
	Rank       int             `json:"rank"`
	AgentID    string          `json:"agent_id"`
	Name       string          `json:"name"`
	Score      float64         `json:"score"`
	Tier       reputation.Tier `json:"tier"`
	BadgeCount int             `json:"badge_count"`
}

// Stats is the system-wide aggregate projection.
type Stats struct {
	TotalAgents       int     `json:"total_agents"`
	TotalTasks        int     `json:"total_tasks"`
	CompletedTasks    int     `json:"completed_tasks"`
	ActiveAgents      int     `json:"active_agents"`
	AverageReputation int     `json:"average_reputation"`
	Leaderboards      struct {
		Reputation   []Entry `json:"reputation"`
		Tasks        []Entry `json:"tasks"`
		Satisfaction []Entry `json:"satisfaction"`
	} `json:"leaderboards"`
}

// Export is the full state snapshot. No selective filtering.
type Export struct {
	Agents     map[string]*agent.Agent   `json:"agents"`
	Tasks      map[string]*task.Task     `json:"tasks"`
	Reviews    map[string]*review.Review `json:"reviews"`
	ExportedAt time.Time                 `json:"exported_at"`
}

// LeaderboardService provides the pure read-side projections over the agent
// collection: ranking, summary statistics, and the full export.
type LeaderboardService struct {
	reg *Registry
}

// NewLeaderboardService creates a LeaderboardService over the shared registry.
func NewLeaderboardService(reg *Registry) *LeaderboardService {
	return &LeaderboardService{reg: reg}
}

// Leaderboard sorts the agent population descending by the chosen metric and
// returns the top limit rows with 1-based ranks. The sort is stable, so ties
// keep registration order.
func (s *LeaderboardService) Leaderboard(_ context.Context, by Metric, limit int) ([]Entry, error) {
	value, err := metricValue(by)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	return s.rank(value, limit), nil
}

// rank assumes the registry lock is held.
func (s *LeaderboardService) rank(value func(*agent.Agent) float64, limit int) []Entry {
	agents := s.reg.agentsInOrder()
	sort.SliceStable(agents, func(i, j int) bool {
		return value(agents[i]) > value(agents[j])
	})

	if len(agents) > limit {
		agents = agents[:limit]
	}

	entries := make([]Entry, 0, len(agents))
	for i, a := range agents {
		entries = append(entries, Entry{
			Rank:       i + 1,
			AgentID:    a.ID,
			Name:       a.Name,
			Score:      value(a),
			Tier:       reputation.TierOf(a.Reputation.Score),
			BadgeCount: len(a.Badges),
		})
	}
	return entries
}

func metricValue(by Metric) (func(*agent.Agent) float64, error) {
	switch by {
	case MetricReputation, "":
		return func(a *agent.Agent) float64 { return float64(a.Reputation.Score) }, nil
	case MetricTasks:
		return func(a *agent.Agent) float64 { return float64(a.Tasks.Completed) }, nil
	case MetricRating:
		return func(a *agent.Agent) float64 { return a.Reputation.AverageRating }, nil
	case MetricSatisfaction:
		return func(a *agent.Agent) float64 { return float64(a.Tasks.SatisfactionScore) }, nil
	default:
		return nil, fmt.Errorf("%w: unknown leaderboard metric %q", domain.ErrValidation, by)
	}
}

// SystemStats computes aggregate counts, the mean reputation, and top-3
// mini-leaderboards.
func (s *LeaderboardService) SystemStats(_ context.Context) Stats {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	now := s.reg.now()
	stats := Stats{
		TotalAgents: len(s.reg.agents),
		TotalTasks:  len(s.reg.tasks),
	}

	for _, t := range s.reg.tasksInOrder() {
		if t.Status == task.StatusCompleted {
			stats.CompletedTasks++
		}
	}

	sum := 0
	for _, a := range s.reg.agentsInOrder() {
		if a.ActiveWithin(ActiveWindow, now) {
			stats.ActiveAgents++
		}
		sum += a.Reputation.Score
	}
	if stats.TotalAgents > 0 {
		stats.AverageReputation = int(math.Round(float64(sum) / float64(stats.TotalAgents)))
	}

	repValue, _ := metricValue(MetricReputation)
	taskValue, _ := metricValue(MetricTasks)
	satValue, _ := metricValue(MetricSatisfaction)
	stats.Leaderboards.Reputation = s.rank(repValue, 3)
	stats.Leaderboards.Tasks = s.rank(taskValue, 3)
	stats.Leaderboards.Satisfaction = s.rank(satValue, 3)

	return stats
}

// ExportState returns the full ledger snapshot.
func (s *LeaderboardService) ExportState(_ context.Context) Export {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	out := Export{
		Agents:     make(map[string]*agent.Agent, len(s.reg.agents)),
		Tasks:      make(map[string]*task.Task, len(s.reg.tasks)),
		Reviews:    make(map[string]*review.Review, len(s.reg.reviews)),
		ExportedAt: s.reg.now(),
	}
	for id, a := range s.reg.agents {
		out.Agents[id] = a
	}
	for id, t := range s.reg.tasks {
		out.Tasks[id] = t
	}
	for id, r := range s.reg.reviews {
		out.Reviews[id] = r
	}
	return out
}
