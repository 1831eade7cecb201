package tuning

// Difficulty is the ordered difficulty scale served to exercises.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	// DifficultySkip is the sentinel carried when an optional activity
	// should be skipped entirely.
	DifficultySkip Difficulty = "skip"
)

// Recommendation is the ephemeral output of policy evaluation for one
// activity start. It is never persisted.
type Recommendation struct {
	Difficulty   Difficulty `json:"difficulty"`
	NumItems     int        `json:"num_items"`
	FocusItems   []string   `json:"focus_items"`
	SkipActivity bool       `json:"skip_activity"`
	SkipReason   string     `json:"skip_reason,omitempty"`

	// Ability is the decayed module ability the decision was made from,
	// exposed for logging and stats display.
	Ability float64 `json:"ability"`
}
