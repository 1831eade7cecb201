package tuning

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every decision threshold used by the engine. Thresholds
// are injected at construction time, never baked into policy functions:
// the 0.80/0.65 difficulty cutoffs were once hardcoded and capped
// near-perfect students at medium until a retune shipped.
type Config struct {
	// HardThreshold and MediumThreshold bound the difficulty step
	// function over decayed module ability. Comparison is >=.
	HardThreshold   float64 `env:"LEXIQ_HARD_THRESHOLD" envDefault:"0.75"`
	MediumThreshold float64 `env:"LEXIQ_MEDIUM_THRESHOLD" envDefault:"0.60"`

	// MasteryThreshold is the decayed ability required to call a module
	// mastered, gated by MinSamplesForConfidence total observations so a
	// single lucky attempt cannot trigger it.
	MasteryThreshold        float64 `env:"LEXIQ_MASTERY_THRESHOLD" envDefault:"0.85"`
	MinSamplesForConfidence int     `env:"LEXIQ_MIN_SAMPLES" envDefault:"10"`

	// SkipThreshold applies only to optional activities; it is strictly
	// above mastery.
	SkipThreshold float64 `env:"LEXIQ_SKIP_THRESHOLD" envDefault:"0.90"`

	// WeaknessThreshold bounds focus-item selection; MaxFocusItems caps
	// how many weak items a recommendation carries.
	WeaknessThreshold float64 `env:"LEXIQ_WEAKNESS_THRESHOLD" envDefault:"0.70"`
	MaxFocusItems     int     `env:"LEXIQ_MAX_FOCUS_ITEMS" envDefault:"5"`

	// HighConfidence is the record confidence above which the question
	// count table uses its fast-check column.
	HighConfidence float64 `env:"LEXIQ_HIGH_CONFIDENCE" envDefault:"0.5"`

	// Counts is the question-count lookup table. Nil means DefaultCounts.
	Counts CountTable `env:"-"`
}

// DefaultConfig returns the tuned production thresholds.
func DefaultConfig() Config {
	return Config{
		HardThreshold:           0.75,
		MediumThreshold:         0.60,
		MasteryThreshold:        0.85,
		MinSamplesForConfidence: 10,
		SkipThreshold:           0.90,
		WeaknessThreshold:       0.70,
		MaxFocusItems:           5,
		HighConfidence:          0.5,
		Counts:                  DefaultCounts(),
	}
}

// ConfigFromEnv returns DefaultConfig overridden by LEXIQ_* environment
// variables.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse tuning env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the ordering constraints between thresholds.
func (c Config) Validate() error {
	if c.MediumThreshold >= c.HardThreshold {
		return fmt.Errorf("medium threshold %g must be below hard threshold %g", c.MediumThreshold, c.HardThreshold)
	}
	if c.SkipThreshold <= c.MasteryThreshold {
		return fmt.Errorf("skip threshold %g must be above mastery threshold %g", c.SkipThreshold, c.MasteryThreshold)
	}
	if c.MaxFocusItems < 0 {
		return fmt.Errorf("max focus items must be non-negative, got %d", c.MaxFocusItems)
	}
	return nil
}
