// Package hashing provides the stable identifier hashes the rest of the
// library is keyed on.
//
// Two hashes are exposed:
//
//   - UniformHash — a MurmurHash3 x86 32-bit digest. It seeds every
//     exploration draw, and its outputs are embedded in persisted
//     interaction records, so the function is frozen: it must produce the
//     same digest for the same bytes across releases and platforms.
//   - IDHash — the join-key hash over caller-supplied unique ids. A unique
//     id consisting entirely of decimal digits keeps its numeric value, so
//     callers who issue sequential ids can join rewards without knowing the
//     hash; everything else falls back to UniformHash.
//
// Errors: none. Both hashes are total functions over their inputs.
package hashing

import "github.com/twmb/murmur3"

// UniformHash returns the MurmurHash3 x86 32-bit digest of b under seed.
//
// The digest is byte-order independent and avalanche-tested. It is used both
// to derive decision seeds (seed 0 over the unique id bytes) and as the
// fallback branch of IDHash, and is persisted inside serialized
// interactions; treat any change to it as a wire-format break.
func UniformHash(b []byte, seed uint32) uint32 {
	return murmur3.SeedSum32(seed, b)
}

// IDHash maps a caller-supplied unique id to a 64-bit join key.
//
// If uniqueID is non-empty and every byte is a decimal digit, the parsed
// numeric value is returned unchanged (callers using sequential numeric ids
// keep them). Otherwise the murmur digest of the id under seed 0 is
// returned, widened to 64 bits.
//
// Overflow on the digit path wraps modulo 2^64, matching unsigned
// accumulation; ids that long are already indistinguishable from hashes.
func IDHash(uniqueID string) uint64 {
	if uniqueID == "" {
		return uint64(UniformHash(nil, 0))
	}
	var n uint64
	for i := 0; i < len(uniqueID); i++ {
		c := uniqueID[i]
		if c < '0' || c > '9' {
			return uint64(UniformHash([]byte(uniqueID), 0))
		}
		n = n*10 + uint64(c-'0')
	}

	return n
}
