package proficiency

import (
	"fmt"
	"time"
)

// Level is the granularity at which proficiency is tracked.
type Level string

const (
	LevelDomain Level = "domain"
	LevelModule Level = "module"
	LevelItem   Level = "item"
)

// PriorMean is the center of the uninformative Beta(1,1) prior. Decay
// pulls long-unused estimates back toward this value.
const PriorMean = 0.5

// Record is the Beta-Bernoulli belief state about one tracked entity:
// a whole subject domain, a curriculum module, or a single vocabulary item.
// Alpha and Beta accumulate correct/incorrect evidence; MeanAbility and
// Confidence are derived views recomputed on every update.
type Record struct {
	StudentID      string    `db:"student_id" json:"student_id"`
	Level          Level     `db:"level" json:"level"`
	ScopeKey       string    `db:"scope_key" json:"scope_key"`
	Alpha          float64   `db:"alpha" json:"alpha"`
	Beta           float64   `db:"beta" json:"beta"`
	MeanAbility    float64   `db:"mean_ability" json:"mean_ability"`
	Confidence     float64   `db:"confidence" json:"confidence"`
	SampleCount    int       `db:"sample_count" json:"sample_count"`
	ForgettingRate float64   `db:"forgetting_rate" json:"forgetting_rate"`
	LastUpdated    time.Time `db:"last_updated" json:"last_updated"`
}

// NewRecord creates a record at the configured prior. The prior is
// deliberately Beta(1,1): early evidence should move the estimate fast.
func NewRecord(cfg Config, studentID string, level Level, scopeKey string) *Record {
	r := &Record{
		StudentID:      studentID,
		Level:          level,
		ScopeKey:       scopeKey,
		Alpha:          cfg.PriorAlpha,
		Beta:           cfg.PriorBeta,
		SampleCount:    0,
		ForgettingRate: cfg.ForgettingRate,
	}
	r.MeanAbility = r.Alpha / (r.Alpha + r.Beta)
	r.Confidence = confidence(cfg, r.Alpha+r.Beta)
	return r
}

// ItemScopeKey builds the composite scope key for an item-level record.
func ItemScopeKey(moduleID, itemID string) string {
	return moduleID + "/" + itemID
}

// EvidenceMass returns alpha+beta, a proxy for how many observations
// inform the current estimate.
func (r *Record) EvidenceMass() float64 {
	return r.Alpha + r.Beta
}

// validate checks the structural invariants that every valid record
// satisfies. The update rule cannot violate them, but a malformed row
// read from storage can.
func (r *Record) validate() error {
	if r.StudentID == "" {
		return &ContractError{Op: "record", Err: fmt.Errorf("empty student id")}
	}
	if r.ScopeKey == "" {
		return &ContractError{Op: "record", Err: fmt.Errorf("empty scope key")}
	}
	if r.Alpha <= 0 || r.Beta <= 0 {
		return &ContractError{
			Op:  "record",
			Err: fmt.Errorf("non-positive Beta parameters: alpha=%g beta=%g", r.Alpha, r.Beta),
		}
	}
	if r.MeanAbility <= 0 || r.MeanAbility >= 1 {
		return &ContractError{
			Op:  "record",
			Err: fmt.Errorf("mean ability %g outside (0,1)", r.MeanAbility),
		}
	}
	return nil
}
