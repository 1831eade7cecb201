package proficiency

import (
	"fmt"
	"time"
)

// Evidence is one activity attempt's graded totals for a single scope.
type Evidence struct {
	Correct   int
	Incorrect int
}

// Total returns the number of observations in the batch.
func (e Evidence) Total() int { return e.Correct + e.Incorrect }

// Apply folds an evidence batch into the record: the conjugate
// Beta-Bernoulli update. Correct outcomes add to alpha, incorrect to
// beta; the derived mean and confidence are recomputed and the sample
// count advances by the batch size.
//
// An empty batch is a no-op and must NOT bump LastUpdated: a no-op call
// at a later time would otherwise reset the forgetting clock.
func Apply(cfg Config, r *Record, ev Evidence, now time.Time) error {
	if ev.Correct < 0 || ev.Incorrect < 0 {
		return &ContractError{
			Op:  "update",
			Err: fmt.Errorf("negative evidence counts: correct=%d incorrect=%d", ev.Correct, ev.Incorrect),
		}
	}
	if ev.Total() == 0 {
		return nil
	}

	r.Alpha += float64(ev.Correct)
	r.Beta += float64(ev.Incorrect)
	r.MeanAbility = r.Alpha / (r.Alpha + r.Beta)
	r.Confidence = confidence(cfg, r.Alpha+r.Beta)
	r.SampleCount += ev.Total()
	r.LastUpdated = now

	return r.validate()
}
