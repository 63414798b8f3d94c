// Package simulate_test validates world construction, reward determinism,
// and the Monte Carlo unbiasedness of IPS over simulated logs.
package simulate_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/ips"
	"github.com/katalvlaran/explore/mwt"
	"github.com/katalvlaran/explore/policy"
	"github.com/katalvlaran/explore/simulate"
)

func TestNewWorld_Validation(t *testing.T) {
	_, err := simulate.NewWorld(nil)
	require.ErrorIs(t, err, simulate.ErrBadWorld)

	_, err = simulate.NewWorld([]float64{0.5, 1.5})
	require.ErrorIs(t, err, simulate.ErrBadWorld)

	_, err = simulate.NewWorld([]float64{0.5, -0.1})
	require.ErrorIs(t, err, simulate.ErrBadWorld)

	w, err := simulate.NewWorld([]float64{0, 1, 0.5})
	require.NoError(t, err)
	require.Equal(t, uint32(3), w.K())
	require.Equal(t, 1.0, w.TrueValue(2))
}

func TestDraw_Deterministic(t *testing.T) {
	w, err := simulate.NewWorld([]float64{0.3, 0.7})
	require.NoError(t, err)

	for i := uint64(0); i < 100; i++ {
		require.Equal(t, w.Draw(i, 1), w.Draw(i, 1))
	}
}

func TestDraw_MatchesMeans(t *testing.T) {
	w, err := simulate.NewWorld([]float64{0.3, 0.7})
	require.NoError(t, err)

	const n = 50000
	var sum float64
	for i := uint64(0); i < n; i++ {
		sum += float64(w.Draw(i*2654435761, 2))
	}
	require.InDelta(t, 0.7, sum/n, 0.01)
}

func TestRun_JoinsEveryLoggedDecision(t *testing.T) {
	w, err := simulate.NewWorld([]float64{0.2, 0.8})
	require.NoError(t, err)

	e := mwt.New("sim")
	require.NoError(t, e.InitEpsilonGreedy(0.5, policy.Constant(1), w.K()))

	out, err := simulate.Run(e, w, 200, "run")
	require.NoError(t, err)
	require.Len(t, out, 200, "ε-greedy logs every decision")
	for i, it := range out {
		r, ok := it.Reward()
		require.True(t, ok, "interaction %d unrewarded", i)
		require.Contains(t, []float32{0, 1}, r)
	}
}

func TestIPS_UnbiasedOverSimulatedLogs(t *testing.T) {
	if testing.Short() {
		t.Skip("monte carlo sweep")
	}

	// Known world; logs produced by ε-greedy exploration whose default
	// policy is the WRONG arm. Averaged over many independent logs, the
	// IPS estimate of the constant candidate must converge to the arm's
	// true mean despite the skewed logging distribution.
	w, err := simulate.NewWorld([]float64{0.2, 0.8})
	require.NoError(t, err)

	const (
		trials    = 200
		decisions = 300
	)
	var sum1, sum2 float64
	for trial := 0; trial < trials; trial++ {
		e := mwt.New("mc")
		require.NoError(t, e.InitEpsilonGreedy(0.5, policy.Constant(1), w.K()))

		data, err := simulate.Run(e, w, decisions, fmt.Sprintf("trial-%d", trial))
		require.NoError(t, err)

		ev := ips.NewEvaluator(data)
		sum1 += ev.EvaluatePolicy(policy.Constant(1))
		sum2 += ev.EvaluatePolicy(policy.Constant(2))
	}

	require.InDelta(t, w.TrueValue(1), sum1/trials, 0.03, "candidate arm 1")
	require.InDelta(t, w.TrueValue(2), sum2/trials, 0.03, "candidate arm 2")
}

func TestRun_Reproducible(t *testing.T) {
	w, err := simulate.NewWorld([]float64{0.4, 0.6, 0.1})
	require.NoError(t, err)

	run := func() []*core.Interaction {
		e := mwt.New("repro")
		require.NoError(t, e.InitSoftmax(1, policy.StatelessScorer(func(*core.Context) []float64 {
			return []float64{1, 2, 3}
		}), w.K()))
		out, err := simulate.Run(e, w, 100, "r")
		require.NoError(t, err)
		return out
	}

	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		require.True(t, a[i].Equal(b[i]), "interaction %d", i)
	}
}
