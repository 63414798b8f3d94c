// Package strategy implements the four exploration strategies behind a
// single Choose contract: ε-greedy, tau-first, bagging and softmax.
//
// Shared contract:
//
//	Choose(ctx, actions, seed) → (Decision{Action, Probability, ShouldLog}, error)
//
//   - Probability is the exact per-draw probability of the emitted action
//     given the seed and the callback outputs on this context — never zero,
//     never above one, never an approximation. Inverse-propensity scoring
//     depends on this being the true sampling propensity.
//   - ShouldLog is true when the draw came from the strategy's
//     randomization branch; tau-first's post-tau default decisions are the
//     one case where it is false.
//   - Every Choose seeds a fresh generator from the caller-supplied seed,
//     so a decision is a pure function of (configuration, callback outputs
//     on this context, seed). No global randomness is consulted.
//
// Mutability: tau-first's exploration counter is the only mutable state in
// any strategy, and it follows the library-wide single-writer discipline —
// one goroutine per strategy instance.
//
// Errors (sentinel):
//
//	ErrBadConfig       — epsilon, lambda, floor or bag out of range at
//	                     construction, or a floor infeasible for K.
//	ErrBadCallerAction — a policy callback returned an action outside 1..K.
//	ErrBadScorerOutput — a scorer callback returned a vector of the wrong
//	                     length, or containing NaN or negative entries.
//
// A Choose that fails never reaches the interaction log: the façade only
// appends on a nil error.
package strategy

import (
	"errors"

	"github.com/katalvlaran/explore/core"
)

// Sentinel errors shared by all strategies.
var (
	// ErrBadConfig indicates an out-of-range construction parameter.
	ErrBadConfig = errors.New("strategy: bad configuration")

	// ErrBadCallerAction indicates a policy callback returned an action
	// outside 1..K.
	ErrBadCallerAction = errors.New("strategy: policy returned action outside the action set")

	// ErrBadScorerOutput indicates a scorer callback returned a wrong-length
	// vector or a NaN/negative entry.
	ErrBadScorerOutput = errors.New("strategy: scorer output invalid")
)

// Decision is the outcome of one Choose call.
type Decision struct {
	// Action is the emitted action, in 1..K.
	Action core.Action

	// Probability is the exact sampling propensity of Action, in (0, 1].
	Probability float64

	// ShouldLog reports whether the draw was made by the randomization
	// branch and must be recorded for off-policy evaluation.
	ShouldLog bool
}

// Strategy is the contract every exploration strategy implements.
type Strategy interface {
	// Choose makes one decision for ctx over actions under seed.
	Choose(ctx *core.Context, actions core.ActionSet, seed uint32) (Decision, error)
}
