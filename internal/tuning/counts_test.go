package tuning

import "testing"

func TestCountTable_Lookup(t *testing.T) {
	counts := DefaultCounts()

	tests := []struct {
		difficulty Difficulty
		confidence ConfidenceBand
		want       int
	}{
		{DifficultyHard, ConfidenceHigh, 5},
		{DifficultyHard, ConfidenceLow, 8},
		{DifficultyMedium, ConfidenceHigh, 7},
		{DifficultyMedium, ConfidenceLow, 10},
		{DifficultyEasy, ConfidenceHigh, 10},
		{DifficultyEasy, ConfidenceLow, 10},
	}

	for _, tt := range tests {
		if got := counts.Lookup(tt.difficulty, tt.confidence); got != tt.want {
			t.Errorf("Lookup(%q, %q) = %d, want %d", tt.difficulty, tt.confidence, got, tt.want)
		}
	}
}

func TestCountTable_LookupUnknownFallsBack(t *testing.T) {
	counts := DefaultCounts()
	if got := counts.Lookup(DifficultySkip, ConfidenceLow); got != 10 {
		t.Errorf("unknown key = %d, want conservative 10", got)
	}

	empty := CountTable{}
	if got := empty.Lookup(DifficultyHard, ConfidenceHigh); got != 10 {
		t.Errorf("empty table = %d, want 10", got)
	}
}

func TestCountTable_FewerItemsForStrongerStudents(t *testing.T) {
	// The table's shape, independent of specific cells: moving up in
	// ability or confidence never increases the question count.
	counts := DefaultCounts()

	for _, conf := range []ConfidenceBand{ConfidenceLow, ConfidenceHigh} {
		if counts.Lookup(DifficultyHard, conf) > counts.Lookup(DifficultyMedium, conf) {
			t.Errorf("hard serves more items than medium at %q confidence", conf)
		}
		if counts.Lookup(DifficultyMedium, conf) > counts.Lookup(DifficultyEasy, conf) {
			t.Errorf("medium serves more items than easy at %q confidence", conf)
		}
	}
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if counts.Lookup(d, ConfidenceHigh) > counts.Lookup(d, ConfidenceLow) {
			t.Errorf("high confidence serves more items than low at %q", d)
		}
	}
}
