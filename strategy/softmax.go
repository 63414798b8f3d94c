package strategy

import (
	"fmt"
	"math"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/policy"
	"github.com/katalvlaran/explore/prg"
)

// Softmax — Boltzmann exploration over a caller-supplied scorer.
//
// Algorithm Outline:
//
//  1. s = scorer(ctx); must be length K with no NaN or negative entries.
//  2. w_k = exp(λ·(s_k − max s)) — the max shift keeps every exponent ≤ 0,
//     so no weight overflows regardless of score scale.
//  3. Normalize w to a distribution p. λ = 0 and all-equal scores both
//     degenerate to the uniform distribution.
//  4. If a probability floor is configured, redistribute mass (below) so
//     every p_k ≥ MinProbability while Σp stays 1.
//  5. Sample an action ∝ p; the emitted propensity is p[action].
//
// Floor redistribution:
//
//	Repeatedly: added = Σ_k max(0, p_min − p_k); entries at or below the
//	floor are clamped to p_min and entries above it are scaled by
//	1/(1+added). The loop stops once added/(1+added) < FloorTolerance,
//	after which the above-floor entries are rescaled exactly so the mass
//	sums to one — the iteration alone only converges to within the
//	tolerance, and downstream IPS weights need Σp = 1.
//
// Errors: λ < 0 or NaN, a negative floor, a floor with K·p_min > 1, or a
// non-positive tolerance are ErrBadConfig; invalid scorer output is
// ErrBadScorerOutput.
//
// Complexity: O(K) per decision plus one scorer callback.
type Softmax struct {
	lambda float64
	scorer policy.Scorer
	opts   Options
}

// Options configures the optional softmax probability floor.
//
// Fields:
//   - MinProbability — lower bound enforced on every action's propensity.
//     Zero (the default) disables the floor. Must satisfy K·MinProbability ≤ 1.
//   - FloorTolerance — convergence threshold of the redistribution loop,
//     compared against added/(1+added). Defaults to 1e-3.
type Options struct {
	MinProbability float64
	FloorTolerance float64
}

// DefaultOptions returns the default softmax options: no floor, 1e-3
// redistribution tolerance.
func DefaultOptions() Options {
	return Options{MinProbability: 0, FloorTolerance: 1e-3}
}

// NewSoftmax returns a softmax strategy around the scorer. lambda must be
// nonnegative and finite, and scorer non-nil, else ErrBadConfig.
func NewSoftmax(lambda float64, scorer policy.Scorer, opts Options) (*Softmax, error) {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda < 0 {
		return nil, fmt.Errorf("%w: lambda %v must be nonnegative and finite", ErrBadConfig, lambda)
	}
	if scorer == nil {
		return nil, fmt.Errorf("%w: nil scorer", ErrBadConfig)
	}
	if opts.MinProbability < 0 || opts.MinProbability >= 1 {
		return nil, fmt.Errorf("%w: MinProbability %v outside [0, 1)", ErrBadConfig, opts.MinProbability)
	}
	if !(opts.FloorTolerance > 0) {
		return nil, fmt.Errorf("%w: FloorTolerance %v must be positive", ErrBadConfig, opts.FloorTolerance)
	}

	return &Softmax{lambda: lambda, scorer: scorer, opts: opts}, nil
}

// Choose implements Strategy.
func (s *Softmax) Choose(ctx *core.Context, actions core.ActionSet, seed uint32) (Decision, error) {
	k := actions.Count()
	if s.opts.MinProbability*float64(k) > 1 {
		return Decision{}, fmt.Errorf("%w: floor %v infeasible for K=%d", ErrBadConfig, s.opts.MinProbability, k)
	}

	scores := s.scorer.Score(ctx)
	if uint32(len(scores)) != k {
		return Decision{}, fmt.Errorf("%w: got %d scores with K=%d", ErrBadScorerOutput, len(scores), k)
	}
	maxScore := math.Inf(-1)
	for i, sc := range scores {
		if math.IsNaN(sc) {
			return Decision{}, fmt.Errorf("%w: NaN score at index %d", ErrBadScorerOutput, i)
		}
		if sc < 0 {
			return Decision{}, fmt.Errorf("%w: negative score %v at index %d", ErrBadScorerOutput, sc, i)
		}
		if sc > maxScore {
			maxScore = sc
		}
	}

	// Shifted exponentiation: every exponent is ≤ 0, so weights stay in
	// (0, 1] and their sum in (0, K].
	p := make([]float64, k)
	var sum float64
	for i, sc := range scores {
		p[i] = math.Exp(s.lambda * (sc - maxScore))
		sum += p[i]
	}
	for i := range p {
		p[i] /= sum
	}

	if s.opts.MinProbability > 0 {
		s.applyFloor(p)
	}

	// Inverse-CDF sample under the same distribution we report.
	rng := prg.New(seed)
	u := rng.Uniform()
	var cum float64
	idx := int(k) - 1
	for i, pk := range p {
		cum += pk
		if u < cum {
			idx = i
			break
		}
	}

	return Decision{
		Action:      core.Action(uint32(idx) + 1),
		Probability: p[idx],
		ShouldLog:   true,
	}, nil
}

// applyFloor runs the iterative mass redistribution, then an exact rescale
// of the above-floor entries so the distribution sums to one.
func (s *Softmax) applyFloor(p []float64) {
	pmin := s.opts.MinProbability
	for {
		var added float64
		for _, pk := range p {
			if pk < pmin {
				added += pmin - pk
			}
		}
		for i := range p {
			if p[i] > pmin {
				p[i] /= 1 + added
			} else {
				p[i] = pmin
			}
		}
		if added/(1+added) < s.opts.FloorTolerance {
			break
		}
	}

	// The loop leaves a residual of up to the tolerance; finish with the
	// exact fixed point — floor the clamp set, scale the rest to the
	// remaining mass, growing the clamp set if the rescale lands an entry
	// under the floor. Terminates because the clamp set only grows.
	for {
		clampedCount := 0
		var above float64
		for _, pk := range p {
			if pk <= pmin {
				clampedCount++
			} else {
				above += pk
			}
		}
		if above == 0 {
			// Everything clamped: feasibility (K·p_min ≤ 1) makes this the
			// uniform floor distribution.
			for i := range p {
				p[i] = pmin
			}

			return
		}
		scale := (1 - float64(clampedCount)*pmin) / above
		grew := false
		for i := range p {
			if p[i] <= pmin {
				p[i] = pmin
				continue
			}
			v := p[i] * scale
			if v < pmin {
				v = pmin
				grew = true
			}
			p[i] = v
		}
		if !grew {
			return
		}
	}
}
