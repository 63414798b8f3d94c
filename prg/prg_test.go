// Package prg_test checks determinism, range bounds and coarse uniformity
// of the decision generator.
package prg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/explore/prg"
)

func TestUniform_IdenticalSeedsIdenticalSequences(t *testing.T) {
	a := prg.New(12345)
	b := prg.New(12345)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Uniform(), b.Uniform(), "draw %d diverged", i)
	}
}

func TestUniform_DifferentSeedsDiverge(t *testing.T) {
	a := prg.New(1)
	b := prg.New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uniform() == b.Uniform() {
			same++
		}
	}
	// A handful of coincidences is fine; full agreement is not.
	require.Less(t, same, 100)
}

func TestUniform_Range(t *testing.T) {
	p := prg.New(777)
	for i := 0; i < 10000; i++ {
		u := p.Uniform()
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
	}
}

func TestUniform_CoarseUniformity(t *testing.T) {
	// Over 100k draws each decile should receive close to 10% of the mass.
	p := prg.New(31337)
	const n = 100000
	var buckets [10]int
	for i := 0; i < n; i++ {
		buckets[int(p.Uniform()*10)]++
	}
	for d, c := range buckets {
		frac := float64(c) / n
		require.InDelta(t, 0.1, frac, 0.01, "decile %d", d)
	}
}

func TestUniformBetween_Bounds(t *testing.T) {
	p := prg.New(5)
	for i := 0; i < 1000; i++ {
		u := p.UniformBetween(2.5, 3.5)
		require.GreaterOrEqual(t, u, 2.5)
		require.Less(t, u, 3.5)
	}
}

func TestUniformUint32_InclusiveBounds(t *testing.T) {
	p := prg.New(99)
	seen := map[uint32]bool{}
	for i := 0; i < 1000; i++ {
		v := p.UniformUint32(1, 4)
		require.GreaterOrEqual(t, v, uint32(1))
		require.LessOrEqual(t, v, uint32(4))
		seen[v] = true
	}
	// All four values should appear over a thousand draws.
	require.Len(t, seen, 4)
}

func TestUniformUint32_DegenerateRange(t *testing.T) {
	p := prg.New(99)
	for i := 0; i < 10; i++ {
		require.Equal(t, uint32(3), p.UniformUint32(3, 3))
	}
}

func BenchmarkUniform(b *testing.B) {
	p := prg.New(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Uniform()
	}
}
