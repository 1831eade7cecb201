package tuning

// ConfidenceBand buckets a record's confidence for question-count lookup.
type ConfidenceBand string

const (
	ConfidenceLow  ConfidenceBand = "low"
	ConfidenceHigh ConfidenceBand = "high"
)

// CountTable maps (difficulty band, confidence band) to the number of
// questions an activity should serve. It is plain data so the policy can
// be retuned and tested without touching selection logic.
type CountTable map[Difficulty]map[ConfidenceBand]int

// DefaultCounts encodes the standard policy: strong, well-evidenced
// students get a short mastery check; weak or thinly-evidenced students
// get a longer run to gather evidence.
func DefaultCounts() CountTable {
	return CountTable{
		DifficultyHard: {
			ConfidenceHigh: 5,
			ConfidenceLow:  8,
		},
		DifficultyMedium: {
			ConfidenceHigh: 7,
			ConfidenceLow:  10,
		},
		DifficultyEasy: {
			ConfidenceHigh: 10,
			ConfidenceLow:  10,
		},
	}
}

// Lookup returns the question count for a band pair. Unknown keys fall
// back to the easy/low cell, the most conservative choice.
func (t CountTable) Lookup(d Difficulty, c ConfidenceBand) int {
	if row, ok := t[d]; ok {
		if n, ok := row[c]; ok {
			return n
		}
	}
	if n, ok := t[DifficultyEasy][ConfidenceLow]; ok {
		return n
	}
	return 10
}
