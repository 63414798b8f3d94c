package strategy

import (
	"fmt"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/policy"
	"github.com/katalvlaran/explore/prg"
)

// TauFirst — pure uniform exploration for the first tau decisions, pure
// exploitation afterwards.
//
// Algorithm Outline:
//
//  1. While fewer than tau decisions have explored: draw uniformly from
//     1..K, propensity 1/K, ShouldLog true, and advance the counter.
//  2. From decision tau+1 on: the default policy's action, propensity 1,
//     ShouldLog false — the draw collapsed to an unexplored default and
//     carries no off-policy information.
//
// State machine: {exploring (count < tau)} → {exploiting (count ≥ tau)},
// a single transition on reaching tau; exploiting is terminal for the
// strategy's lifetime. The counter is the only mutable state in any
// strategy and is updated under the single-writer discipline.
//
// tau = 0 never explores. Complexity: O(1) per decision.
type TauFirst struct {
	tau      uint32
	explored uint32
	def      policy.Policy
}

// NewTauFirst returns a tau-first strategy around the default policy.
// Any tau is valid; def must be non-nil, else ErrBadConfig.
func NewTauFirst(tau uint32, def policy.Policy) (*TauFirst, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil default policy", ErrBadConfig)
	}

	return &TauFirst{tau: tau, def: def}, nil
}

// Choose implements Strategy.
func (t *TauFirst) Choose(ctx *core.Context, actions core.ActionSet, seed uint32) (Decision, error) {
	if t.explored < t.tau {
		t.explored++
		rng := prg.New(seed)
		drawn := core.Action(rng.UniformUint32(1, actions.Count()))

		return Decision{
			Action:      drawn,
			Probability: 1 / float64(actions.Count()),
			ShouldLog:   true,
		}, nil
	}

	def := t.def.Act(ctx)
	if !actions.Contains(def) {
		return Decision{}, fmt.Errorf("%w: got %d with K=%d", ErrBadCallerAction, def, actions.Count())
	}

	return Decision{Action: def, Probability: 1, ShouldLog: false}, nil
}
