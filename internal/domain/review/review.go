// Package review defines the immutable peer review record.
package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelworks/meritd/internal/domain/ability"
)

// Review is an immutable peer rating record. The per-dimension sub-ratings
// are informational only; reputation aggregation consumes the overall rating.
type Review struct {
	ID         string                    `json:"id"`
	ReviewerID string                    `json:"reviewer_id"`
	TargetID   string                    `json:"target_id"`
	Rating     int                       `json:"rating"` // 1-5
	Dimensions map[ability.Dimension]int `json:"dimensions,omitempty"`
	Comment    string                    `json:"comment,omitempty"`
	Helpful    bool                      `json:"helpful"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// NewID generates a review id combining the creation timestamp with a random
// suffix, e.g. "REV-1719847200123-1a2b3c4d".
func NewID(at time.Time) string {
	return fmt.Sprintf("REV-%d-%s", at.UnixMilli(), uuid.NewString()[:8])
}
