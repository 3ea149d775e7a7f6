package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kestrelworks/meritd/internal/domain"
	"github.com/kestrelworks/meritd/internal/domain/ability"
	"github.com/kestrelworks/meritd/internal/domain/agent"
)

func TestSuggestionsForNewAgent(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	if _, err := e.agents.Register(ctx, "ada", agent.Profile{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	advice, err := e.advisory.Suggestions(ctx, "ada")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}

	// A fresh agent trips the weak-ability, low-rating, and few-badge rules.
	if len(advice.Suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(advice.Suggestions))
	}
	if advice.Suggestions[0].Type != "ability" || advice.Suggestions[0].Action != "take_assessment" {
		t.Errorf("expected ability suggestion first, got %+v", advice.Suggestions[0])
	}
	if advice.RecommendedAction != "take_assessment" {
		t.Errorf("expected recommended action take_assessment, got %s", advice.RecommendedAction)
	}
	if advice.TopAbility == nil {
		t.Error("expected a top ability even at zero scores")
	}
}

func TestSuggestionsQuietForStrongAgent(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	if _, err := e.agents.Register(ctx, "ada", agent.Profile{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, d := range ability.Dimensions() {
		if _, err := e.agents.UpdateAbility(ctx, "ada", d.Dimension, 75, "self"); err != nil {
			t.Fatalf("update %s: %v", d.Dimension, err)
		}
	}
	e.reg.mu.Lock()
	a := e.reg.agents["ada"]
	for i := 0; i < 6; i++ {
		a.Reputation.RecordRating(5)
	}
	e.reg.mu.Unlock()

	advice, err := e.advisory.Suggestions(ctx, "ada")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	for _, s := range advice.Suggestions {
		if s.Type == "ability" || s.Type == "reputation" {
			t.Errorf("unexpected %s suggestion for strong agent", s.Type)
		}
	}
	if advice.TopAbility == nil || advice.TopAbility.Score != 75 {
		t.Error("expected top ability at 75")
	}
}

func TestAnalysisPersonality(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	if _, err := e.agents.Register(ctx, "ada", agent.Profile{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := e.agents.UpdateAbility(ctx, "ada", ability.Coding, 70, "self"); err != nil {
		t.Fatalf("update: %v", err)
	}

	out, err := e.advisory.Analysis(ctx, "ada")
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}
	if out.Personality != "technical" {
		t.Errorf("expected technical personality, got %s", out.Personality)
	}
	if out.TrustLevel != "unverified" {
		t.Errorf("expected unverified trust at novice tier, got %s", out.TrustLevel)
	}
	if len(out.Strengths) != 1 || out.Strengths[0] != "Coding" {
		t.Errorf("expected Coding strength, got %v", out.Strengths)
	}
	// All other dimensions are zero and count as growth areas.
	if len(out.GrowthAreas) != 7 {
		t.Errorf("expected 7 growth areas, got %d", len(out.GrowthAreas))
	}
}

func TestAnalysisTrustLevels(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	cases := []struct {
		id   string
		rep  int
		want string
	}{
		{"novice", 0, "unverified"},
		{"trusted", 150, "moderate"},
		{"excellent", 400, "good"},
		{"outstanding", 700, "high"},
		{"legendary", 1500, "very high"},
	}
	for _, c := range cases {
		seedAgent(t, e, c.id, c.rep)
		out, err := e.advisory.Analysis(ctx, c.id)
		if err != nil {
			t.Fatalf("analysis %s: %v", c.id, err)
		}
		if out.TrustLevel != c.want {
			t.Errorf("rep %d: expected trust %q, got %q", c.rep, c.want, out.TrustLevel)
		}
	}
}

func TestGoals(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	seedAgent(t, e, "ada", 40)

	plan, err := e.advisory.Goals(ctx, "ada", 10)
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if plan.PeriodDays != 10 {
		t.Errorf("expected 10-day plan, got %d", plan.PeriodDays)
	}
	if len(plan.Goals) != 3 {
		t.Fatalf("expected 3 goals, got %d", len(plan.Goals))
	}

	rep := plan.Goals[0]
	if rep.Type != "reputation" || rep.Current != 40 || rep.Target != 90 {
		t.Errorf("expected reputation 40 -> 90, got %+v", rep)
	}

	ab := plan.Goals[1]
	if ab.Type != "ability" || ab.Dimension != ability.Coding || ab.Target != 20 {
		t.Errorf("expected coding ability goal with target 20, got %+v", ab)
	}

	tasks := plan.Goals[2]
	if tasks.Type != "tasks" || tasks.Target != 20 {
		t.Errorf("expected task goal with target 20, got %+v", tasks)
	}
}

func TestGoalsDefaultPeriod(t *testing.T) {
	e := newEngine()
	seedAgent(t, e, "ada", 0)

	plan, err := e.advisory.Goals(context.Background(), "ada", 0)
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if plan.PeriodDays != 7 {
		t.Errorf("expected default 7-day plan, got %d", plan.PeriodDays)
	}
}

func TestGoalsAbilityGoalSelection(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	seedAgent(t, e, "ada", 0)
	// Raise every dimension past the goal threshold except design.
	for _, d := range ability.Dimensions() {
		if _, err := e.agents.UpdateAbility(ctx, "ada", d.Dimension, 90, "self"); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if _, err := e.agents.UpdateAbility(ctx, "ada", ability.Design, 55, "self"); err != nil {
		t.Fatalf("update: %v", err)
	}

	plan, err := e.advisory.Goals(ctx, "ada", 7)
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	for _, g := range plan.Goals {
		if g.Type == "ability" {
			if g.Dimension != ability.Design {
				t.Errorf("expected design goal, got %s", g.Dimension)
			}
			if g.Target != 75 {
				t.Errorf("expected target 75, got %d", g.Target)
			}
		}
	}
}

func TestAdvisoryUnknownAgent(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	if _, err := e.advisory.Suggestions(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
	if _, err := e.advisory.Analysis(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
	if _, err := e.advisory.Goals(ctx, "ghost", 7); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}
