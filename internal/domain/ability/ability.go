// Package ability defines the closed catalog of ability dimensions and the
// per-agent score/level/history tracking model.
package ability

import "time"

// Dimension is one named skill axis. The set of dimensions is closed: only
// the catalog values below are valid keys.
type Dimension string

const (
	Coding        Dimension = "coding"
	Design        Dimension = "design"
	Reasoning     Dimension = "reasoning"
	Creativity    Dimension = "creativity"
	Communication Dimension = "communication"
	Research      Dimension = "research"
	Collaboration Dimension = "collaboration"
	Automation    Dimension = "automation"
)

// Level is the discrete proficiency bracket derived from a score.
type Level string

const (
	LevelEntry        Level = "entry"
	LevelNovice       Level = "novice"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// HistoryLimit is the sliding-window size for per-dimension score history.
const HistoryLimit = 20

// DimensionInfo is the static display metadata for a dimension. The weight is
// carried for downstream consumers; the core itself does not apply it.
type DimensionInfo struct {
	Dimension Dimension `json:"dimension"`
	Name      string    `json:"name"`
	Weight    float64   `json:"weight"`
}

// Dimensions is the process-wide constant dimension catalog, in display order.
func Dimensions() []DimensionInfo {
	return []DimensionInfo{
		{Coding, "Coding", 1.3},
		{Design, "Design", 1.1},
		{Reasoning, "Reasoning", 1.4},
		{Creativity, "Creativity", 1.2},
		{Communication, "Communication", 1.0},
		{Research, "Research", 1.2},
		{Collaboration, "Collaboration", 1.1},
		{Automation, "Automation", 1.2},
	}
}

// Valid reports whether d is a catalog dimension.
func (d Dimension) Valid() bool {
	switch d {
	case Coding, Design, Reasoning, Creativity, Communication, Research, Collaboration, Automation:
		return true
	}
	return false
}

// HistoryEntry records one past score for a dimension.
type HistoryEntry struct {
	Score     int       `json:"score"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Ability is the per-agent state for one dimension.
type Ability struct {
	Score       int            `json:"score"` // always in [0,100]
	Level       Level          `json:"level"`
	Verified    bool           `json:"verified"`
	LastSource  string         `json:"last_source,omitempty"`
	LastUpdated time.Time      `json:"last_updated,omitzero"`
	History     []HistoryEntry `json:"history"`
}

// Clamp bounds a raw score into [0,100].
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// LevelOf derives the discrete level from a clamped score using fixed
// breakpoints: <20 entry, <40 novice, <60 intermediate, <80 advanced,
// otherwise expert.
func LevelOf(score int) Level {
	switch {
	case score < 20:
		return LevelEntry
	case score < 40:
		return LevelNovice
	case score < 60:
		return LevelIntermediate
	case score < 80:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}

// AtLeastIntermediate reports whether l is intermediate, advanced, or expert.
func (l Level) AtLeastIntermediate() bool {
	return l == LevelIntermediate || l == LevelAdvanced || l == LevelExpert
}

// Record applies a clamped score to the ability: it updates score, level and
// provenance, and appends to the history window, evicting the oldest entries
// beyond HistoryLimit.
func (a *Ability) Record(score int, source string, at time.Time) {
	score = Clamp(score)
	a.Score = score
	a.Level = LevelOf(score)
	a.LastSource = source
	a.LastUpdated = at
	a.History = append(a.History, HistoryEntry{Score: score, Source: source, Timestamp: at})
	if n := len(a.History); n > HistoryLimit {
		a.History = a.History[n-HistoryLimit:]
	}
}
