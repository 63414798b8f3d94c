package strategy

import (
	"fmt"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/policy"
	"github.com/katalvlaran/explore/prg"
)

// Bagging — bootstrap exploration over N policies.
//
// Algorithm Outline:
//
//  1. Every bag policy votes: a_i = policy_i(ctx), i = 1..N.
//  2. Draw a bag j uniformly from 1..N and emit a_j.
//  3. Propensity = count(i : a_i == a_j) / N — the exact bootstrap-Thompson
//     propensity of the emitted action, which is what keeps the IPS
//     estimator unbiased under bagging.
//
// Every decision is logged. Complexity: O(N) callbacks + O(N) counting per
// decision.
type Bagging struct {
	bags []policy.Policy
}

// NewBagging returns a bagging strategy over the given bag policies.
// The bag must be non-empty and free of nil entries, else ErrBadConfig.
func NewBagging(bags []policy.Policy) (*Bagging, error) {
	if len(bags) == 0 {
		return nil, fmt.Errorf("%w: empty policy bag", ErrBadConfig)
	}
	for i, b := range bags {
		if b == nil {
			return nil, fmt.Errorf("%w: nil policy at bag %d", ErrBadConfig, i)
		}
	}
	out := &Bagging{bags: make([]policy.Policy, len(bags))}
	copy(out.bags, bags)

	return out, nil
}

// Choose implements Strategy.
func (b *Bagging) Choose(ctx *core.Context, actions core.ActionSet, seed uint32) (Decision, error) {
	votes := make([]core.Action, len(b.bags))
	for i, bag := range b.bags {
		a := bag.Act(ctx)
		if !actions.Contains(a) {
			return Decision{}, fmt.Errorf("%w: bag %d returned %d with K=%d", ErrBadCallerAction, i, a, actions.Count())
		}
		votes[i] = a
	}

	rng := prg.New(seed)
	j := rng.UniformUint32(1, uint32(len(b.bags)))
	chosen := votes[j-1]

	matching := 0
	for _, v := range votes {
		if v == chosen {
			matching++
		}
	}

	return Decision{
		Action:      chosen,
		Probability: float64(matching) / float64(len(b.bags)),
		ShouldLog:   true,
	}, nil
}
