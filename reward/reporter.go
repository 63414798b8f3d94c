// Package reward joins numeric rewards to logged interactions by unique
// id.
//
// A Reporter is built from a flat interaction set — typically the decoded
// output of a serialized log — and indexes it by the hashed unique id, the
// same hash the explorer used at decision time. Reporting is forgiving by
// design: a reward against an id that never logged an exploratory draw
// reports false, never an error, so callers can stream rewards without
// pre-filtering.
//
// Interactions without a reward remain visible on export; the reporter
// never drops them — eligibility filtering belongs to the evaluator.
package reward

import (
	"errors"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/hashing"
)

// ErrLengthMismatch indicates bulk parallel arrays of different lengths.
var ErrLengthMismatch = errors.New("reward: ids and rewards length mismatch")

// Reporter is a keyed index over a loaded interaction set.
type Reporter struct {
	interactions []*core.Interaction
	byHash       map[uint64]*core.Interaction
}

// NewReporter indexes interactions by hashed unique id. Nil entries are
// skipped: decoded datasets should not contain them, but a mishandled
// slice must not take the index down. Later duplicates of a hash win,
// matching map-insert order of the source stream.
func NewReporter(interactions []*core.Interaction) *Reporter {
	r := &Reporter{
		interactions: make([]*core.Interaction, 0, len(interactions)),
		byHash:       make(map[uint64]*core.Interaction, len(interactions)),
	}
	for _, it := range interactions {
		if it == nil {
			continue
		}
		r.interactions = append(r.interactions, it)
		r.byHash[it.IDHash()] = it
	}

	return r
}

// Report hashes uniqueID and sets the reward on the matching interaction.
// It reports whether an interaction matched.
func (r *Reporter) Report(uniqueID string, reward float32) bool {
	return r.ReportByKey(hashing.IDHash(uniqueID), reward)
}

// ReportByKey sets the reward on the interaction whose hashed unique id is
// idHash, reporting whether one matched.
func (r *Reporter) ReportByKey(idHash uint64, reward float32) bool {
	it, ok := r.byHash[idHash]
	if !ok {
		return false
	}
	it.SetReward(reward)

	return true
}

// ReportAll reports rewards over parallel arrays and reports whether every
// id matched. Unmatched ids do not stop the sweep — every present id still
// receives its reward.
//
// The C++ original folded the per-id results with &= starting from false,
// so it could never report full success; the fold here starts from true.
func (r *Reporter) ReportAll(uniqueIDs []string, rewards []float32) (bool, error) {
	if len(uniqueIDs) != len(rewards) {
		return false, ErrLengthMismatch
	}
	all := true
	for i, id := range uniqueIDs {
		all = r.Report(id, rewards[i]) && all
	}

	return all, nil
}

// Interactions returns the indexed set in source order, rewarded or not.
func (r *Reporter) Interactions() []*core.Interaction {
	out := make([]*core.Interaction, len(r.interactions))
	copy(out, r.interactions)

	return out
}
