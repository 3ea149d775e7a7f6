package reputation

import "testing"

func TestTierOf(t *testing.T) {
	cases := []struct {
		score int
		want  Tier
	}{
		{0, TierNovice},
		{99, TierNovice},
		{100, TierTrusted},
		{150, TierTrusted},
		{299, TierTrusted},
		{300, TierExcellent},
		{599, TierExcellent},
		{600, TierOutstanding},
		{999, TierOutstanding},
		{1000, TierLegendary},
		{5000, TierLegendary},
	}
	for _, c := range cases {
		if got := TierOf(c.score); got != c.want {
			t.Errorf("TierOf(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestAddRefreshesTier(t *testing.T) {
	r := Reputation{Tier: TierNovice}

	r.Add(50)
	if r.Score != 50 || r.Tier != TierNovice {
		t.Errorf("expected 50/novice, got %d/%s", r.Score, r.Tier)
	}

	r.Add(50)
	if r.Score != 100 || r.Tier != TierTrusted {
		t.Errorf("expected 100/trusted, got %d/%s", r.Score, r.Tier)
	}
}

func TestRecordRating(t *testing.T) {
	var r Reputation

	r.RecordRating(5)
	r.RecordRating(4)
	r.RecordRating(3)
	r.RecordRating(1)

	if r.TotalRatings != 4 {
		t.Errorf("expected 4 total ratings, got %d", r.TotalRatings)
	}
	if r.PositiveRatings != 2 {
		t.Errorf("expected 2 positive ratings, got %d", r.PositiveRatings)
	}
	// AverageRating is the positive-rating ratio, not a mean of the scale.
	if r.AverageRating != 0.5 {
		t.Errorf("expected average 0.5, got %f", r.AverageRating)
	}
}

func TestTiersAscending(t *testing.T) {
	tiers := Tiers()
	for i := 1; i < len(tiers); i++ {
		if tiers[i].MinScore <= tiers[i-1].MinScore {
			t.Errorf("tier table not ascending at %s", tiers[i].Tier)
		}
	}
}
