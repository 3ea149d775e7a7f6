package service

import (
	"context"
	"fmt"

	"github.com/kestrelworks/meritd/internal/domain/badge"
)

// BadgeService exposes the badge catalog and the explicit award operation.
// The rule-driven evaluator runs inside the registry on every mutating
// event; this service covers the direct path.
type BadgeService struct {
	reg *Registry
}

// NewBadgeService creates a BadgeService over the shared registry.
func NewBadgeService(reg *Registry) *BadgeService {
	return &BadgeService{reg: reg}
}

// Catalog returns all badge definitions.
func (s *BadgeService) Catalog(_ context.Context) []badge.Badge {
	return badge.Catalog()
}

// Award grants the badge to the agent. It returns false when the badge is
// already held; badge.awarded is published on first award only.
func (s *BadgeService) Award(ctx context.Context, agentID string, id badge.ID) (bool, error) {
	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	a, err := s.reg.agentByID(agentID)
	if err != nil {
		return false, fmt.Errorf("agent %s: %w", agentID, err)
	}

	awarded, err := s.reg.awardBadge(ctx, a, id)
	if err != nil {
		return false, fmt.Errorf("badge %s: %w", id, err)
	}
	return awarded, nil
}
