// Package simulate provides synthetic bandit worlds: known per-action
// reward distributions to drive an explorer against, join rewards from,
// and compare IPS estimates with ground truth.
//
// A World is deliberately non-contextual — each action has a fixed
// Bernoulli success rate — because that is the smallest world in which
// IPS unbiasedness is checkable exactly: the true value of a policy that
// picks action a is simply the mean of a.
//
// Reward draws are deterministic in (decision join hash, action), so a
// simulated run replays bit-identically: same explorer configuration,
// same id prefix, same rewards, same estimate.
//
// Errors (sentinel):
//
//	ErrBadWorld — no actions, or a mean outside [0, 1].
package simulate

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/mwt"
	"github.com/katalvlaran/explore/prg"
	"github.com/katalvlaran/explore/reward"
)

// ErrBadWorld indicates an empty world or a mean outside [0, 1].
var ErrBadWorld = errors.New("simulate: world means must be nonempty and lie in [0, 1]")

// World holds one Bernoulli success rate per action.
type World struct {
	means []float64
}

// NewWorld builds a world over K = len(means) actions, mean k being the
// success rate of action k+1.
func NewWorld(means []float64) (*World, error) {
	if len(means) == 0 {
		return nil, ErrBadWorld
	}
	for i, m := range means {
		if !(m >= 0) || m > 1 {
			return nil, fmt.Errorf("%w: mean %v at action %d", ErrBadWorld, m, i+1)
		}
	}
	w := &World{means: make([]float64, len(means))}
	copy(w.means, means)

	return w, nil
}

// K returns the action count.
func (w *World) K() uint32 {
	return uint32(len(w.means))
}

// TrueValue returns the expected reward of always playing a.
func (w *World) TrueValue(a core.Action) float64 {
	return w.means[a-1]
}

// Draw returns the Bernoulli reward of playing a on the decision whose
// join hash is idHash. Deterministic in (idHash, a).
func (w *World) Draw(idHash uint64, a core.Action) float32 {
	// Fold the 64-bit hash and the action into the generator seed; the
	// multiplier decorrelates neighboring actions.
	seed := uint32(idHash) ^ uint32(idHash>>32) ^ uint32(a)*0x9E3779B1
	if prg.New(seed).Uniform() < w.means[a-1] {
		return 1
	}

	return 0
}

// Run drives n decisions through the explorer with unique ids
// "<prefix>-0" .. "<prefix>-<n-1>", then joins the world's rewards onto
// every logged interaction through the reward reporter. It returns the
// rewarded interaction set.
func Run(e *mwt.Explorer, w *World, n int, prefix string) ([]*core.Interaction, error) {
	ctx := &core.Context{}
	for i := 0; i < n; i++ {
		if _, err := e.ChooseAction(ctx, fmt.Sprintf("%s-%d", prefix, i)); err != nil {
			return nil, fmt.Errorf("simulate: decision %d: %w", i, err)
		}
	}

	rep := reward.NewReporter(e.Interactions())
	for _, it := range rep.Interactions() {
		rep.ReportByKey(it.IDHash(), w.Draw(it.IDHash(), it.Action()))
	}

	return rep.Interactions(), nil
}
