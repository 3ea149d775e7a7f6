// Package badge defines the static badge catalog. Badges are one-time,
// non-revocable achievement flags; the catalog is initialized once and never
// mutated afterward.
package badge

// ID identifies a badge in the catalog.
type ID string

const (
	FirstTask     ID = "first-task"
	CodeMaster    ID = "code-master"
	TeamPlayer    ID = "team-player"
	Perfectionist ID = "perfectionist"
	Speed         ID = "speed"
	HelpfulHand   ID = "helpful-hand"
	Veteran       ID = "veteran"
	RisingStar    ID = "rising-star"
	ProblemSolver ID = "problem-solver"
	MultiTalented ID = "multi-talented"
)

// Badge is a static badge definition.
type Badge struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog returns all badge definitions in display order. HelpfulHand,
// RisingStar and ProblemSolver have no evaluator rule; they are awardable
// only through the explicit award operation.
func Catalog() []Badge {
	return []Badge{
		{FirstTask, "First Task", "Joined the ledger and is ready for work"},
		{CodeMaster, "Code Master", "Coding ability reached expert level"},
		{TeamPlayer, "Team Player", "Received 10 or more peer ratings"},
		{Perfectionist, "Perfectionist", "Held a 100% satisfaction score"},
		{Speed, "Speed", "Finished 5 tasks in a row ahead of estimate"},
		{HelpfulHand, "Helpful Hand", "Helped other agents 10 times"},
		{Veteran, "Veteran", "Completed 50 or more tasks"},
		{RisingStar, "Rising Star", "Fastest reputation growth"},
		{ProblemSolver, "Problem Solver", "Solved 10 hard problems"},
		{MultiTalented, "Multi-Talented", "5 or more abilities at intermediate level or above"},
	}
}

// Lookup returns the badge definition for id.
func Lookup(id ID) (Badge, bool) {
	for _, b := range Catalog() {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
