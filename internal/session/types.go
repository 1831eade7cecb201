package session

// ItemResult is one graded outcome from a completed activity attempt.
// Callers must normalize their exercise payloads into this shape before
// submission; a missing item ID is rejected as a contract violation
// rather than silently producing a zero-evidence update.
type ItemResult struct {
	Item    string `json:"item"`
	Correct bool   `json:"correct"`
}

// Summary reports the outcome of ingesting one activity attempt.
type Summary struct {
	AttemptID     string  `json:"attempt_id"`
	StudentID     string  `json:"student_id"`
	ModuleID      string  `json:"module_id"`
	Domain        string  `json:"domain"`
	Correct       int     `json:"correct"`
	Total         int     `json:"total"`
	ModuleAbility float64 `json:"module_ability"`
	Mastered      bool    `json:"mastered"`
	NewlyMastered bool    `json:"newly_mastered"`
}
