package service

import (
	"sync"
	"time"

	"github.com/kestrelworks/meritd/internal/adapter/membus"
)

// fakeClock is a settable clock for driving time-dependent behavior.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// engine bundles all services over one registry for tests.
type engine struct {
	reg       *Registry
	agents    *AgentService
	tasks     *TaskService
	reviews   *ReviewService
	badges    *BadgeService
	board     *LeaderboardService
	recommend *RecommendService
	advisory  *AdvisoryService
	clock     *fakeClock
}

func newEngine() *engine {
	reg := NewRegistry(membus.New())
	clock := newFakeClock()
	reg.SetClock(clock.Now)

	agents := NewAgentService(reg)
	return &engine{
		reg:       reg,
		agents:    agents,
		tasks:     NewTaskService(reg),
		reviews:   NewReviewService(reg),
		badges:    NewBadgeService(reg),
		board:     NewLeaderboardService(reg),
		recommend: NewRecommendService(reg),
		advisory:  NewAdvisoryService(agents),
		clock:     clock,
	}
}
