package service

import (
	"context"
	"fmt"

	"github.com/kestrelworks/meritd/internal/domain"
	"github.com/kestrelworks/meritd/internal/domain/ability"
	"github.com/kestrelworks/meritd/internal/domain/review"
	"github.com/kestrelworks/meritd/internal/port/eventbus"
)

// Reviewer rewards: a flat grant for submitting, plus a bonus when the
// review is marked helpful.
const (
	reviewerReward = 2
	helpfulBonus   = 3
)

// SubmitRequest holds the caller-supplied fields of a peer review.
type SubmitRequest struct {
	Rating     int                       `json:"rating"`
	Dimensions map[ability.Dimension]int `json:"dimensions,omitempty"`
	Comment    string                    `json:"comment,omitempty"`
	Helpful    bool                      `json:"helpful,omitempty"`
}

// ReviewService records immutable peer reviews and applies their reputation
// effects: rating aggregation for the target, a small reward for the
// reviewer.
type ReviewService struct {
	reg *Registry
}

// NewReviewService creates a ReviewService over the shared registry.
func NewReviewService(reg *Registry) *ReviewService {
	return &ReviewService{reg: reg}
}

// Submit stores the review, links it to both parties, folds the rating into
// the target's reputation, rewards the reviewer, and re-evaluates both
// parties' badges. Self-review is rejected.
func (s *ReviewService) Submit(ctx context.Context, reviewerID, targetID string, req SubmitRequest) (*review.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if reviewerID == targetID {
		return nil, fmt.Errorf("%w: self-review is not allowed", domain.ErrValidation)
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	reviewer, err := s.reg.agentByID(reviewerID)
	if err != nil {
		return nil, fmt.Errorf("reviewer %s: %w", reviewerID, err)
	}
	target, err := s.reg.agentByID(targetID)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", targetID, err)
	}

	now := s.reg.now()
	rec := &review.Review{
		ID:         review.NewID(now),
		ReviewerID: reviewerID,
		TargetID:   targetID,
		Rating:     req.Rating,
		Dimensions: req.Dimensions,
		Comment:    req.Comment,
		Helpful:    req.Helpful,
		CreatedAt:  now,
	}

	s.reg.reviews[rec.ID] = rec
	s.reg.reviewOrder = append(s.reg.reviewOrder, rec.ID)

	target.ReviewsReceived = append(target.ReviewsReceived, rec.ID)
	target.Reputation.RecordRating(req.Rating)

	reviewer.ReviewsGiven = append(reviewer.ReviewsGiven, rec.ID)
	reward := reviewerReward
	if req.Helpful {
		reward += helpfulBonus
	}
	reviewer.Reputation.Add(reward)

	s.reg.checkBadges(ctx, target)
	s.reg.checkBadges(ctx, reviewer)

	s.reg.bus.Publish(ctx, eventbus.ReviewSubmitted{
		ReviewID:   rec.ID,
		ReviewerID: reviewerID,
		TargetID:   targetID,
		Rating:     req.Rating,
	})
	return rec, nil
}
