// Package hashing_test validates the stability and routing rules of the
// identifier hashes: digit-only ids keep their numeric value, everything
// else goes through the murmur digest, and equal inputs always collide.
package hashing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/explore/hashing"
)

func TestUniformHash_Deterministic(t *testing.T) {
	// The same bytes under the same seed must always produce the same digest.
	a := hashing.UniformHash([]byte("abc"), 0)
	b := hashing.UniformHash([]byte("abc"), 0)
	require.Equal(t, a, b)
}

func TestUniformHash_SeedSensitive(t *testing.T) {
	// Different seeds must decorrelate the digest.
	a := hashing.UniformHash([]byte("abc"), 0)
	b := hashing.UniformHash([]byte("abc"), 1)
	require.NotEqual(t, a, b)
}

func TestUniformHash_InputSensitive(t *testing.T) {
	a := hashing.UniformHash([]byte("abc"), 0)
	b := hashing.UniformHash([]byte("abd"), 0)
	require.NotEqual(t, a, b)
}

func TestIDHash_NumericPath(t *testing.T) {
	// All-digit ids keep their numeric value so callers can join rewards
	// against sequential ids they issued themselves.
	cases := map[string]uint64{
		"0":          0,
		"7":          7,
		"42":         42,
		"1000000007": 1000000007,
	}
	for id, want := range cases {
		require.Equal(t, want, hashing.IDHash(id), "id %q", id)
	}
}

func TestIDHash_HashPath(t *testing.T) {
	// Any non-digit byte routes the whole id through the murmur digest.
	got := hashing.IDHash("abc")
	want := uint64(hashing.UniformHash([]byte("abc"), 0))
	require.Equal(t, want, got)

	// Mixed digit/letter ids hash too; "4a2" must not parse as 42.
	mixed := hashing.IDHash("4a2")
	require.Equal(t, uint64(hashing.UniformHash([]byte("4a2"), 0)), mixed)
	require.NotEqual(t, uint64(42), mixed)
}

func TestIDHash_Deterministic(t *testing.T) {
	require.Equal(t, hashing.IDHash("session-9"), hashing.IDHash("session-9"))
}
