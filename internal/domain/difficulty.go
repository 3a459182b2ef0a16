package domain

// Difficulty selects which bot policy tier drives a bot player's
// decisions. Shared between internal/engine (which stores it on a
// Player) and internal/bot (which switches on it), so it lives in the
// package both already depend on.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)
