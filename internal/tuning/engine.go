package tuning

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/amrit/lexiq/internal/proficiency"
)

// Engine converts decayed proficiency records into tuning decisions.
// All thresholds come from the injected Config.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine. A nil count table falls back to the
// default policy.
func NewEngine(cfg Config) *Engine {
	if cfg.Counts == nil {
		cfg.Counts = DefaultCounts()
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine's active configuration.
func (e *Engine) Config() Config { return e.cfg }

// DifficultyFor maps a decayed ability to a difficulty level. The step
// function is monotone and compares with >=, so an ability sitting
// exactly on a threshold resolves upward.
func (e *Engine) DifficultyFor(ability float64) Difficulty {
	switch {
	case ability >= e.cfg.HardThreshold:
		return DifficultyHard
	case ability >= e.cfg.MediumThreshold:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// confidenceBand buckets a record's confidence for count lookup. A nil
// record (no history) is always low confidence.
func (e *Engine) confidenceBand(rec *proficiency.Record) ConfidenceBand {
	if rec == nil || rec.Confidence < e.cfg.HighConfidence {
		return ConfidenceLow
	}
	return ConfidenceHigh
}

// FocusItems ranks item records by decayed mean ascending and returns
// up to MaxFocusItems item IDs whose decayed mean sits below the
// weakness threshold. Ties go to the record with the least evidence,
// since it is the least reliably assessed. No qualifying items yields
// an empty slice, never an error.
func (e *Engine) FocusItems(items []*proficiency.Record, now time.Time) []string {
	type weakItem struct {
		key     string
		mean    float64
		samples int
	}
	var weak []weakItem
	for _, rec := range items {
		m := proficiency.DecayedMean(rec, now)
		if m < e.cfg.WeaknessThreshold {
			weak = append(weak, weakItem{key: rec.ScopeKey, mean: m, samples: rec.SampleCount})
		}
	}

	sort.Slice(weak, func(i, j int) bool {
		if weak[i].mean != weak[j].mean {
			return weak[i].mean < weak[j].mean
		}
		if weak[i].samples != weak[j].samples {
			return weak[i].samples < weak[j].samples
		}
		return weak[i].key < weak[j].key
	})

	if len(weak) > e.cfg.MaxFocusItems {
		weak = weak[:e.cfg.MaxFocusItems]
	}

	ids := make([]string, len(weak))
	for i, w := range weak {
		ids[i] = itemIDFromScope(w.key)
	}
	return ids
}

// IsMastered reports whether a module record currently computes as
// mastered: decayed ability at or above the mastery threshold AND
// enough accumulated observations. Mastery is a snapshot, not a sticky
// flag; decay can pull a module back below the threshold later.
func (e *Engine) IsMastered(rec *proficiency.Record, now time.Time) bool {
	if rec == nil {
		return false
	}
	if rec.SampleCount < e.cfg.MinSamplesForConfidence {
		return false
	}
	return proficiency.DecayedMean(rec, now) >= e.cfg.MasteryThreshold
}

// Recommend produces the tuning decision for one activity start.
// moduleRec may be nil (no history yet): the student gets the
// prior-derived defaults — neutral ability, easiest difficulty, the
// longest question run, and no focus items. Required activities never
// skip regardless of ability; the skip path exists only for activities
// the curriculum flags optional.
func (e *Engine) Recommend(moduleRec *proficiency.Record, items []*proficiency.Record, optional bool, now time.Time) Recommendation {
	ability := proficiency.PriorMean
	if moduleRec != nil {
		ability = proficiency.DecayedMean(moduleRec, now)
	}

	if optional && ability >= e.cfg.SkipThreshold {
		return Recommendation{
			Difficulty:   DifficultySkip,
			NumItems:     0,
			FocusItems:   []string{},
			SkipActivity: true,
			SkipReason:   fmt.Sprintf("ability %.2f is at or above the skip threshold %.2f", ability, e.cfg.SkipThreshold),
			Ability:      ability,
		}
	}

	difficulty := e.DifficultyFor(ability)
	return Recommendation{
		Difficulty: difficulty,
		NumItems:   e.cfg.Counts.Lookup(difficulty, e.confidenceBand(moduleRec)),
		FocusItems: e.FocusItems(items, now),
		Ability:    ability,
	}
}

// itemIDFromScope strips the owning module prefix from an item scope key.
func itemIDFromScope(scopeKey string) string {
	if i := strings.IndexByte(scopeKey, '/'); i >= 0 {
		return scopeKey[i+1:]
	}
	return scopeKey
}
