package proficiency

import (
	"math"
	"time"
)

// maxDecayExponent caps λΔt so exp(-x) can never underflow to a
// subnormal; beyond this the weight is indistinguishable from zero.
const maxDecayExponent = 60.0

// DecayedMean returns the forgetting-adjusted ability estimate at the
// given time. It is a pure read-time view: stored evidence (alpha, beta,
// sample count) is untouched, only the mean used for decisions is pulled
// toward the prior.
//
//	decayed = mean*e^(-λΔt) + 0.5*(1 - e^(-λΔt))
//
// Δt <= 0 (same-instant read or clock skew) returns the stored mean
// unchanged. As Δt grows the result approaches PriorMean.
func DecayedMean(r *Record, now time.Time) float64 {
	if r.LastUpdated.IsZero() {
		return r.MeanAbility
	}
	days := now.Sub(r.LastUpdated).Hours() / 24.0
	if days <= 0 {
		return r.MeanAbility
	}
	x := r.ForgettingRate * days
	if x > maxDecayExponent {
		x = maxDecayExponent
	}
	w := math.Exp(-x)
	return r.MeanAbility*w + PriorMean*(1-w)
}
