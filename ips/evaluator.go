// Package ips estimates the value of a candidate policy from logged
// exploration data by inverse-propensity scoring.
//
// Estimator:
//
//	V̂(π) = (1/|D|) · Σ_{i ∈ D} 1[π(ctx_i) == a_i] · r_i / p_i
//
// where D is the subset of the dataset with a reward attached, a_i the
// logged action, p_i the exact propensity it was sampled under, and r_i
// the joined reward. Dividing each matched reward by its propensity makes
// the estimate unbiased for the candidate's true value no matter which
// exploration strategy produced the log — which is exactly why the logged
// propensities must be true sampling probabilities.
//
// Evaluation is read-only and deterministic: it never mutates an
// interaction, never touches a log, and calls the candidate policy once
// per eligible interaction. An empty eligible set evaluates to 0.
package ips

import (
	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/policy"
)

// Evaluator replays candidate policies over a fixed interaction dataset.
type Evaluator struct {
	interactions []*core.Interaction
}

// NewEvaluator wraps the dataset. Nil entries are skipped: decoded
// datasets should not contain them, but a mishandled slice must not skew
// the estimate.
func NewEvaluator(interactions []*core.Interaction) *Evaluator {
	e := &Evaluator{interactions: make([]*core.Interaction, 0, len(interactions))}
	for _, it := range interactions {
		if it != nil {
			e.interactions = append(e.interactions, it)
		}
	}

	return e
}

// EvaluatePolicy returns the IPS value estimate of p over the rewarded
// subset of the dataset, 0 when no interaction carries a reward. Stateful
// candidates arrive through the policy adapters like any other.
func (e *Evaluator) EvaluatePolicy(p policy.Policy) float64 {
	var sum float64
	eligible := 0
	for _, it := range e.interactions {
		r, ok := it.Reward()
		if !ok {
			continue
		}
		eligible++
		if p.Act(it.Context()) == it.Action() {
			sum += float64(r) / float64(it.Probability())
		}
	}
	if eligible == 0 {
		return 0
	}

	return sum / float64(eligible)
}

// Len returns the dataset size, rewarded or not.
func (e *Evaluator) Len() int {
	return len(e.interactions)
}
