package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kestrelworks/meritd/internal/domain"
	"github.com/kestrelworks/meritd/internal/domain/agent"
	"github.com/kestrelworks/meritd/internal/domain/badge"
)

func TestBadgeCatalog(t *testing.T) {
	e := newEngine()

	badges := e.badges.Catalog(context.Background())
	if len(badges) != 10 {
		t.Errorf("expected 10 badges, got %d", len(badges))
	}
}

func TestAwardBadge(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	if _, err := e.agents.Register(ctx, "ada", agent.Profile{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	awarded, err := e.badges.Award(ctx, "ada", badge.HelpfulHand)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if !awarded {
		t.Error("expected first award to return true")
	}

	// Idempotent: second award is a no-op.
	awarded, err = e.badges.Award(ctx, "ada", badge.HelpfulHand)
	if err != nil {
		t.Fatalf("second award: %v", err)
	}
	if awarded {
		t.Error("expected second award to return false")
	}

	p, _ := e.agents.Profile(ctx, "ada")
	count := 0
	for _, b := range p.Badges {
		if b.ID == badge.HelpfulHand {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected badge held once, got %d", count)
	}
}

func TestAwardBadgeErrors(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	if _, err := e.badges.Award(ctx, "ghost", badge.Speed); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found for unknown agent, got %v", err)
	}

	if _, err := e.agents.Register(ctx, "ada", agent.Profile{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := e.badges.Award(ctx, "ada", "no-such-badge"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found for unknown badge, got %v", err)
	}
}
