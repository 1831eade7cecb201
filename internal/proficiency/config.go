package proficiency

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the prior and decay parameters shared by all records.
// An earlier configuration used a Beta(2,2) prior; it made the estimate
// sluggish against early evidence and was rejected.
type Config struct {
	// PriorAlpha and PriorBeta initialize new records.
	PriorAlpha float64 `env:"LEXIQ_PRIOR_ALPHA" envDefault:"1.0"`
	PriorBeta  float64 `env:"LEXIQ_PRIOR_BETA" envDefault:"1.0"`

	// ForgettingRate is the per-day exponential decay constant applied
	// to the mean at read time.
	ForgettingRate float64 `env:"LEXIQ_FORGETTING_RATE" envDefault:"0.05"`

	// ConfidenceMass is the evidence mass at which confidence reaches 0.5.
	ConfidenceMass float64 `env:"LEXIQ_CONFIDENCE_MASS" envDefault:"10.0"`
}

// DefaultConfig returns the standard prior and decay settings.
func DefaultConfig() Config {
	return Config{
		PriorAlpha:     1.0,
		PriorBeta:      1.0,
		ForgettingRate: 0.05,
		ConfidenceMass: 10.0,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by LEXIQ_* environment
// variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse proficiency env: %w", err)
	}
	if cfg.PriorAlpha <= 0 || cfg.PriorBeta <= 0 {
		return Config{}, fmt.Errorf("prior must be positive: alpha=%g beta=%g", cfg.PriorAlpha, cfg.PriorBeta)
	}
	return cfg, nil
}

// confidence maps evidence mass to a bounded [0,1) score that grows
// monotonically with more evidence: mass/(mass+ConfidenceMass).
func confidence(cfg Config, mass float64) float64 {
	scale := cfg.ConfidenceMass
	if scale <= 0 {
		scale = 10.0
	}
	return mass / (mass + scale)
}
