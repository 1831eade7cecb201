package tuning

import (
	"reflect"
	"testing"
	"time"

	"github.com/amrit/lexiq/internal/proficiency"
)

func testNow() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
}

// moduleRecord builds a module record from raw Beta parameters, last
// updated at now so reads see the stored mean undecayed.
func moduleRecord(alpha, beta float64, samples int, at time.Time) *proficiency.Record {
	return &proficiency.Record{
		StudentID:      "stu-1",
		Level:          proficiency.LevelModule,
		ScopeKey:       "mod-1",
		Alpha:          alpha,
		Beta:           beta,
		MeanAbility:    alpha / (alpha + beta),
		Confidence:     (alpha + beta) / (alpha + beta + 10),
		SampleCount:    samples,
		ForgettingRate: 0.05,
		LastUpdated:    at,
	}
}

func itemRecord(moduleID, itemID string, alpha, beta float64, samples int, at time.Time) *proficiency.Record {
	rec := moduleRecord(alpha, beta, samples, at)
	rec.Level = proficiency.LevelItem
	rec.ScopeKey = proficiency.ItemScopeKey(moduleID, itemID)
	return rec
}

func TestEngine_DifficultyFor(t *testing.T) {
	e := NewEngine(DefaultConfig())

	tests := []struct {
		name    string
		ability float64
		want    Difficulty
	}{
		{"floor", 0.0, DifficultyEasy},
		{"below medium", 0.59, DifficultyEasy},
		{"medium boundary resolves up", 0.60, DifficultyMedium},
		{"mid band", 0.70, DifficultyMedium},
		{"just under hard", 0.7499, DifficultyMedium},
		{"hard boundary resolves up", 0.75, DifficultyHard},
		{"ceiling", 1.0, DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.DifficultyFor(tt.ability); got != tt.want {
				t.Errorf("DifficultyFor(%g) = %q, want %q", tt.ability, got, tt.want)
			}
		})
	}
}

func TestEngine_DifficultyMonotone(t *testing.T) {
	e := NewEngine(DefaultConfig())
	rank := map[Difficulty]int{DifficultyEasy: 0, DifficultyMedium: 1, DifficultyHard: 2}

	prev := DifficultyEasy
	for a := 0.0; a <= 1.0; a += 0.001 {
		got := e.DifficultyFor(a)
		if rank[got] < rank[prev] {
			t.Fatalf("difficulty decreased at ability %g: %q after %q", a, got, prev)
		}
		prev = got
	}
}

func TestEngine_PerfectRunRecommendsHard(t *testing.T) {
	// Scenario: fresh module, 10/10 correct → Beta(11,1), mean ≈ 0.9167.
	e := NewEngine(DefaultConfig())
	now := testNow()
	rec := moduleRecord(11, 1, 10, now)

	got := e.Recommend(rec, nil, false, now)
	if got.Difficulty != DifficultyHard {
		t.Errorf("difficulty = %q, want hard (ability %g)", got.Difficulty, got.Ability)
	}
}

func TestEngine_HardThresholdBoundary(t *testing.T) {
	// Beta(24,8) gives mean exactly 0.75; >= comparison resolves to hard.
	e := NewEngine(DefaultConfig())
	now := testNow()
	rec := moduleRecord(24, 8, 30, now)

	if rec.MeanAbility != 0.75 {
		t.Fatalf("setup: mean = %g, want exactly 0.75", rec.MeanAbility)
	}
	got := e.Recommend(rec, nil, false, now)
	if got.Difficulty != DifficultyHard {
		t.Errorf("ability exactly at threshold: difficulty = %q, want hard", got.Difficulty)
	}
}

func TestEngine_Recommend_NoHistoryDefaults(t *testing.T) {
	e := NewEngine(DefaultConfig())

	got := e.Recommend(nil, nil, false, testNow())

	if got.Ability != 0.5 {
		t.Errorf("ability = %g, want prior 0.5", got.Ability)
	}
	if got.Difficulty != DifficultyEasy {
		t.Errorf("difficulty = %q, want easy", got.Difficulty)
	}
	if got.NumItems != 10 {
		t.Errorf("num items = %d, want 10", got.NumItems)
	}
	if len(got.FocusItems) != 0 {
		t.Errorf("focus items = %v, want none", got.FocusItems)
	}
	if got.SkipActivity {
		t.Error("no-history recommendation skipped the activity")
	}
}

func TestEngine_QuestionCounts(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := testNow()

	tests := []struct {
		name string
		rec  *proficiency.Record
		want int
	}{
		// Beta(30,3): mean ≈ 0.909, confidence 33/43 ≈ 0.767 → hard/high.
		{"hard high confidence", moduleRecord(30, 3, 31, now), 5},
		// Beta(5,1): mean ≈ 0.833, confidence 6/16 = 0.375 → hard/low.
		{"hard low confidence", moduleRecord(5, 1, 4, now), 8},
		// Beta(14,7): mean ≈ 0.667, confidence 21/31 ≈ 0.677 → medium/high.
		{"medium high confidence", moduleRecord(14, 7, 19, now), 7},
		// Beta(2,1): mean ≈ 0.667, confidence 3/13 ≈ 0.231 → medium/low.
		{"medium low confidence", moduleRecord(2, 1, 1, now), 10},
		// Beta(5,15): mean 0.25 → easy always gets the long run.
		{"easy", moduleRecord(5, 15, 18, now), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Recommend(tt.rec, nil, false, now)
			if got.NumItems != tt.want {
				t.Errorf("num items = %d, want %d (ability %g, confidence %g)",
					got.NumItems, tt.want, got.Ability, tt.rec.Confidence)
			}
		})
	}
}

func TestEngine_FocusItems(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := testNow()

	items := []*proficiency.Record{
		itemRecord("mod-1", "strong", 9, 1, 10, now),    // 0.9, above threshold
		itemRecord("mod-1", "weakest", 1, 4, 5, now),    // 0.2
		itemRecord("mod-1", "middling", 3, 2, 5, now),   // 0.6
		itemRecord("mod-1", "untested", 1, 1, 0, now),   // 0.5, no evidence
		itemRecord("mod-1", "moderate", 13, 7, 20, now), // 0.65
	}

	got := e.FocusItems(items, now)
	want := []string{"weakest", "untested", "middling", "moderate"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("focus items = %v, want %v", got, want)
	}
}

func TestEngine_FocusItems_TieBreaksOnLeastEvidence(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := testNow()

	// Identical decayed means; the thin record is less reliably
	// assessed and ranks first.
	items := []*proficiency.Record{
		itemRecord("mod-1", "thick", 20, 20, 40, now), // 0.5, lots of evidence
		itemRecord("mod-1", "thin", 2, 2, 4, now),     // 0.5, little evidence
	}

	got := e.FocusItems(items, now)
	want := []string{"thin", "thick"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("focus items = %v, want %v", got, want)
	}
}

func TestEngine_FocusItems_CapsAtMax(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := testNow()

	var items []*proficiency.Record
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		items = append(items, itemRecord("mod-1", id, 1, 4, 5, now))
	}

	got := e.FocusItems(items, now)
	if len(got) != 5 {
		t.Errorf("focus items = %d, want capped at 5", len(got))
	}
}

func TestEngine_FocusItems_EmptyWhenNoneQualify(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := testNow()

	tests := []struct {
		name  string
		items []*proficiency.Record
	}{
		{"no item history", nil},
		{"all strong", []*proficiency.Record{
			itemRecord("mod-1", "a", 9, 1, 10, now),
			itemRecord("mod-1", "b", 8, 1, 9, now),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.FocusItems(tt.items, now); len(got) != 0 {
				t.Errorf("focus items = %v, want empty", got)
			}
		})
	}
}

func TestEngine_IsMastered_SampleGate(t *testing.T) {
	e := NewEngine(DefaultConfig())
	now := testNow()

	tests := []struct {
		name string
		rec  *proficiency.Record
		want bool
	}{
		// 10/10 once: mean ≈ 0.9167 ≥ 0.85, exactly 10 samples meets the
		// gate. Deliberately borderline-true.
		{"single perfect run meets gate exactly", moduleRecord(11, 1, 10, now), true},
		{"high ability but thin evidence", moduleRecord(9, 1, 9, now), false},
		{"enough evidence but low ability", moduleRecord(12, 8, 20, now), false},
		{"well past both gates", moduleRecord(40, 4, 44, now), true},
		{"no record", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.IsMastered(tt.rec, now); got != tt.want {
				t.Errorf("IsMastered = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_IsMastered_DecayRevokes(t *testing.T) {
	// Mastery is a computed snapshot: a long gap pulls the decayed mean
	// below the threshold and the module reads as un-mastered again.
	e := NewEngine(DefaultConfig())
	at := testNow()
	rec := moduleRecord(40, 4, 44, at)

	if !e.IsMastered(rec, at) {
		t.Fatal("setup: module should start mastered")
	}
	if e.IsMastered(rec, at.AddDate(1, 0, 0)) {
		t.Error("module still mastered after a year idle")
	}
}

func TestEngine_SkipOnlyForOptional(t *testing.T) {
	// Ability 0.95: optional activities skip, required ones never do.
	e := NewEngine(DefaultConfig())
	now := testNow()
	rec := moduleRecord(19, 1, 40, now)

	optional := e.Recommend(rec, nil, true, now)
	if !optional.SkipActivity {
		t.Errorf("optional at ability %g not skipped", optional.Ability)
	}
	if optional.Difficulty != DifficultySkip {
		t.Errorf("difficulty = %q, want skip sentinel", optional.Difficulty)
	}
	if optional.SkipReason == "" {
		t.Error("skip carries no reason")
	}

	required := e.Recommend(rec, nil, false, now)
	if required.SkipActivity {
		t.Error("required activity skipped")
	}
	if required.Difficulty != DifficultyHard {
		t.Errorf("required difficulty = %q, want hard", required.Difficulty)
	}
}

func TestEngine_NoSkipBelowThreshold(t *testing.T) {
	// Mastered but below the skip threshold: optional still runs.
	e := NewEngine(DefaultConfig())
	now := testNow()
	rec := moduleRecord(88, 12, 100, now) // mean 0.88

	got := e.Recommend(rec, nil, true, now)
	if got.SkipActivity {
		t.Errorf("skipped at ability %g, below skip threshold", got.Ability)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"medium above hard", func(c *Config) { c.MediumThreshold = 0.8 }, true},
		{"skip below mastery", func(c *Config) { c.SkipThreshold = 0.8 }, true},
		{"negative focus cap", func(c *Config) { c.MaxFocusItems = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	// Thresholds are configuration, not constants: a retune must not
	// need a code change.
	t.Setenv("LEXIQ_HARD_THRESHOLD", "0.80")
	t.Setenv("LEXIQ_MEDIUM_THRESHOLD", "0.65")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HardThreshold != 0.80 || cfg.MediumThreshold != 0.65 {
		t.Errorf("thresholds = %g/%g, want 0.80/0.65", cfg.HardThreshold, cfg.MediumThreshold)
	}

	e := NewEngine(cfg)
	if got := e.DifficultyFor(0.78); got != DifficultyMedium {
		t.Errorf("DifficultyFor(0.78) with retuned thresholds = %q, want medium", got)
	}
}
