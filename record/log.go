// Package record holds the append-only interaction log and the binary and
// text codecs that move logged interactions in and out of byte streams.
//
// The Log is single-writer: the owning explorer façade appends decisions in
// completion order and ids are assigned from that order, starting at 1.
// There is no compaction, eviction or truncation; the log grows until its
// owner exports it. Each Log carries its own id counter — two logs never
// coordinate, so disjoint explorers stay fully independent.
//
// Codecs:
//
//   - Binary — versioned per-record framing (see codec_binary.go). The
//     format a decision service would persist and reload.
//   - Text — the same fields whitespace-delimited, one record per line,
//     with the free-form context Go-quoted so embedded whitespace
//     round-trips (see codec_text.go).
//
// Both codecs round-trip losslessly, including interactions whose reward
// has not been set: the missing reward is carried as a NaN sentinel,
// distinguishable from a reward of zero.
//
// Errors:
//
//	ErrCorruptStream — truncated record, unknown version byte, or decoded
//	                   fields violating the probability/action invariants.
package record

import (
	"errors"

	"github.com/katalvlaran/explore/core"
)

// ErrCorruptStream indicates a serialized interaction stream that cannot
// be decoded back into a valid log: length mismatch, unknown version, or
// an invariant violation such as a propensity outside (0, 1].
var ErrCorruptStream = errors.New("record: corrupt interaction stream")

// Log is the append-only, single-writer interaction sequence owned by one
// explorer façade.
type Log struct {
	appID        string
	nextID       uint64
	interactions []*core.Interaction
}

// NewLog returns an empty log tagged with the owning application id.
func NewLog(appID string) *Log {
	return &Log{appID: appID, nextID: 1}
}

// AppID returns the application tag.
func (l *Log) AppID() string {
	return l.appID
}

// Store appends it, stamping the next id in append order. Ids within one
// log are distinct and strictly increasing from 1.
func (l *Log) Store(it *core.Interaction) {
	it.SetID(l.nextID)
	l.nextID++
	l.interactions = append(l.interactions, it)
}

// Len returns the number of stored interactions.
func (l *Log) Len() int {
	return len(l.interactions)
}

// All returns the stored interactions in append order. The slice is a
// copy; the records it points at are the live ones.
func (l *Log) All() []*core.Interaction {
	out := make([]*core.Interaction, len(l.interactions))
	copy(out, l.interactions)

	return out
}
