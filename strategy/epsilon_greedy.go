package strategy

import (
	"fmt"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/policy"
	"github.com/katalvlaran/explore/prg"
)

// EpsilonGreedy — uniform exploration with probability ε, default policy
// otherwise.
//
// Algorithm Outline:
//
//  1. Draw u ~ Uniform[0,1) from a generator seeded per decision.
//  2. If u < ε: draw an action uniformly from 1..K.
//     Its propensity is ε/K, plus the exploit mass 1−ε when the uniform
//     draw happens to coincide with the default action — the two branches
//     emit the same action there and both contribute probability.
//  3. Otherwise: take the default policy's action; propensity 1−ε+ε/K.
//
// Every decision is logged (ShouldLog is always true). With K = 1 both
// branches collapse to the single action with propensity exactly 1.
//
// Complexity: O(1) plus one policy callback per decision.
type EpsilonGreedy struct {
	epsilon float64
	def     policy.Policy
}

// NewEpsilonGreedy returns an ε-greedy strategy around the default policy.
// epsilon must lie in (0, 1] and def must be non-nil, else ErrBadConfig.
func NewEpsilonGreedy(epsilon float64, def policy.Policy) (*EpsilonGreedy, error) {
	if !(epsilon > 0) || epsilon > 1 {
		return nil, fmt.Errorf("%w: epsilon %v outside (0, 1]", ErrBadConfig, epsilon)
	}
	if def == nil {
		return nil, fmt.Errorf("%w: nil default policy", ErrBadConfig)
	}

	return &EpsilonGreedy{epsilon: epsilon, def: def}, nil
}

// Choose implements Strategy.
func (e *EpsilonGreedy) Choose(ctx *core.Context, actions core.ActionSet, seed uint32) (Decision, error) {
	rng := prg.New(seed)
	u := rng.Uniform()

	def := e.def.Act(ctx)
	if !actions.Contains(def) {
		return Decision{}, fmt.Errorf("%w: got %d with K=%d", ErrBadCallerAction, def, actions.Count())
	}

	k := float64(actions.Count())
	if u < e.epsilon {
		drawn := core.Action(rng.UniformUint32(1, actions.Count()))
		p := e.epsilon / k
		if drawn == def {
			// The exploit branch would emit this action too; its mass is
			// part of the true propensity.
			p += 1 - e.epsilon
		}

		return Decision{Action: drawn, Probability: p, ShouldLog: true}, nil
	}

	return Decision{
		Action:      def,
		Probability: 1 - e.epsilon + e.epsilon/k,
		ShouldLog:   true,
	}, nil
}
