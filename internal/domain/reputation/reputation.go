// Package reputation defines the reputation score, the ordered tier table,
// and the rating aggregates.
package reputation

// Tier is a named reputation bracket.
type Tier string

const (
	TierNovice      Tier = "novice"
	TierTrusted     Tier = "trusted"
	TierExcellent   Tier = "excellent"
	TierOutstanding Tier = "outstanding"
	TierLegendary   Tier = "legendary"
)

// TierThreshold pairs a tier with the minimum score required to hold it.
type TierThreshold struct {
	Tier     Tier `json:"tier"`
	MinScore int  `json:"min_score"`
}

// Tiers is the process-wide constant tier table, ascending by threshold.
func Tiers() []TierThreshold {
	return []TierThreshold{
		{TierNovice, 0},
		{TierTrusted, 100},
		{TierExcellent, 300},
		{TierOutstanding, 600},
		{TierLegendary, 1000},
	}
}

// TierOf returns the tier with the greatest minimum score that the given
// score meets or exceeds. Scores are never negative in practice, so the
// novice fallback is structural only.
func TierOf(score int) Tier {
	tiers := Tiers()
	for i := len(tiers) - 1; i >= 0; i-- {
		if score >= tiers[i].MinScore {
			return tiers[i].Tier
		}
	}
	return TierNovice
}

// Reputation is the per-agent cumulative reputation state. Score only ever
// increases; no operation subtracts from it. AverageRating is the fraction of
// ratings >= 4 (a positive-rating ratio, not a mean of the 1-5 scale) and is
// always recomputed from its components.
type Reputation struct {
	Score           int     `json:"score"`
	Tier            Tier    `json:"tier"`
	TotalRatings    int     `json:"total_ratings"`
	PositiveRatings int     `json:"positive_ratings"`
	AverageRating   float64 `json:"average_rating"`
}

// Add applies a non-negative point delta and refreshes the tier.
func (r *Reputation) Add(points int) {
	r.Score += points
	r.Tier = TierOf(r.Score)
}

// RecordRating folds one 1-5 rating into the aggregates. Ratings of 4 or 5
// count as positive.
func (r *Reputation) RecordRating(rating int) {
	r.TotalRatings++
	if rating >= 4 {
		r.PositiveRatings++
	}
	r.AverageRating = float64(r.PositiveRatings) / float64(r.TotalRatings)
}
