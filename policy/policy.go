// Package policy adapts caller-supplied decision callbacks to the uniform
// capability interfaces the exploration strategies consume.
//
// Four callback shapes exist — stateful/stateless × policy/scorer — and all
// four erase to one of two interfaces at construction time, so no runtime
// type tests appear on the decision hot path:
//
//   - Policy — context → single action in 1..K (the exploit branch).
//   - Scorer — context → K nonnegative scores (consumed by softmax).
//
// The stateful constructors carry the caller's state as a generic type
// parameter; the untyped erasure happens here, once, not per decision.
//
// Contract: invoking a wrapped callback is infallible from the library's
// perspective — a panic raised inside the callback propagates out of the
// decision call unwrapped. Validation of callback *outputs* (action range,
// score vector shape) belongs to the strategies, not to the adapters.
package policy

import "github.com/katalvlaran/explore/core"

// Policy is a deterministic default policy: context → action in 1..K.
type Policy interface {
	// Act returns the policy's action for ctx.
	Act(ctx *core.Context) core.Action
}

// Scorer scores every action for a context: context → K nonnegative floats.
type Scorer interface {
	// Score returns one nonnegative score per action, index k scoring
	// action k+1.
	Score(ctx *core.Context) []float64
}

// PolicyFunc is the stateless policy callback shape.
type PolicyFunc func(ctx *core.Context) core.Action

// ScorerFunc is the stateless scorer callback shape.
type ScorerFunc func(ctx *core.Context) []float64

// statelessPolicy adapts a bare function to Policy.
type statelessPolicy struct{ fn PolicyFunc }

func (p statelessPolicy) Act(ctx *core.Context) core.Action { return p.fn(ctx) }

// StatelessPolicy wraps a context-only policy callback.
func StatelessPolicy(fn PolicyFunc) Policy {
	return statelessPolicy{fn: fn}
}

// statefulPolicy carries the caller's typed state alongside the callback.
type statefulPolicy[S any] struct {
	state *S
	fn    func(state *S, ctx *core.Context) core.Action
}

func (p statefulPolicy[S]) Act(ctx *core.Context) core.Action { return p.fn(p.state, ctx) }

// StatefulPolicy wraps a policy callback together with an opaque caller
// state handed back on every invocation. The library never inspects state;
// whether it is safe to read concurrently is the caller's contract.
func StatefulPolicy[S any](state *S, fn func(state *S, ctx *core.Context) core.Action) Policy {
	return statefulPolicy[S]{state: state, fn: fn}
}

// statelessScorer adapts a bare function to Scorer.
type statelessScorer struct{ fn ScorerFunc }

func (s statelessScorer) Score(ctx *core.Context) []float64 { return s.fn(ctx) }

// StatelessScorer wraps a context-only scorer callback.
func StatelessScorer(fn ScorerFunc) Scorer {
	return statelessScorer{fn: fn}
}

// statefulScorer carries the caller's typed state alongside the callback.
type statefulScorer[S any] struct {
	state *S
	fn    func(state *S, ctx *core.Context) []float64
}

func (s statefulScorer[S]) Score(ctx *core.Context) []float64 { return s.fn(s.state, ctx) }

// StatefulScorer wraps a scorer callback together with an opaque caller
// state handed back on every invocation.
func StatefulScorer[S any](state *S, fn func(state *S, ctx *core.Context) []float64) Scorer {
	return statefulScorer[S]{state: state, fn: fn}
}

// Constant returns a policy that always picks a. Useful as an evaluation
// candidate and in tests.
func Constant(a core.Action) Policy {
	return statelessPolicy{fn: func(*core.Context) core.Action { return a }}
}
