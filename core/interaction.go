// This file declares the Interaction record: one logged exploratory
// decision, carrying exactly the fields inverse-propensity scoring needs.
package core

import "errors"

// Sentinel errors for interaction construction.
var (
	// ErrBadProbability indicates a propensity outside (0, 1].
	ErrBadProbability = errors.New("core: probability must lie in (0, 1]")

	// ErrBadAction indicates an action outside 1..K for its action set.
	ErrBadAction = errors.New("core: action outside its action set")
)

// Interaction is one logged decision: the context snapshot, the emitted
// action, the exact probability under which it was sampled, the decision
// seed, and the join keys used to attach a reward later.
//
// The record is immutable except for its reward, which the reward reporter
// attaches through SetReward. Single assignment is not enforced: a second
// SetReward replaces the first reward. An absent reward is distinguishable
// from a reward of zero.
type Interaction struct {
	// id is assigned by the owning log in append order, starting at 1.
	id uint64

	// idHash is the caller's unique id under hashing.IDHash; reward joins
	// key on it.
	idHash uint64

	// context is the deep-copied decision snapshot.
	context Context

	// action is the emitted action.
	action Action

	// probability is the exact sampling propensity of action, in (0, 1].
	probability float32

	// seed is the 32-bit decision seed derived from the unique id.
	seed uint32

	// reward and hasReward implement the unset-vs-zero distinction.
	reward    float32
	hasReward bool
}

// NewInteraction builds an unrewarded interaction with the given join hash,
// snapshot, action, propensity and seed. The log id is zero until the
// record is stored. The snapshot is cloned; callers may reuse ctx.
func NewInteraction(idHash uint64, ctx *Context, action Action, probability float32, seed uint32) (*Interaction, error) {
	if action == 0 {
		return nil, ErrBadAction
	}
	if !(probability > 0) || probability > 1 {
		return nil, ErrBadProbability
	}

	return &Interaction{
		idHash:      idHash,
		context:     ctx.Clone(),
		action:      action,
		probability: probability,
		seed:        seed,
	}, nil
}

// ID returns the log-assigned id, zero if the record is not stored yet.
func (i *Interaction) ID() uint64 { return i.id }

// SetID stamps the log-assigned id. Only the owning log calls this.
func (i *Interaction) SetID(id uint64) { i.id = id }

// IDHash returns the hashed unique id used for reward joins.
func (i *Interaction) IDHash() uint64 { return i.idHash }

// Context returns the logged snapshot.
func (i *Interaction) Context() *Context { return &i.context }

// Action returns the emitted action.
func (i *Interaction) Action() Action { return i.action }

// Probability returns the exact sampling propensity of the action.
func (i *Interaction) Probability() float32 { return i.probability }

// Seed returns the decision seed.
func (i *Interaction) Seed() uint32 { return i.seed }

// Reward returns the attached reward and whether one has been attached.
func (i *Interaction) Reward() (float32, bool) { return i.reward, i.hasReward }

// SetReward attaches r to the interaction. The reward reporter is the only
// intended caller; attaching twice overwrites.
func (i *Interaction) SetReward(r float32) {
	i.reward = r
	i.hasReward = true
}

// Restore rebuilds a fully-populated interaction from decoded fields,
// including its log id and optional reward. Codecs are the only intended
// callers.
func Restore(id, idHash uint64, ctx Context, action Action, probability float32, seed uint32, reward float32, hasReward bool) (*Interaction, error) {
	if action == 0 {
		return nil, ErrBadAction
	}
	if !(probability > 0) || probability > 1 {
		return nil, ErrBadProbability
	}
	out := &Interaction{
		id:          id,
		idHash:      idHash,
		context:     ctx,
		action:      action,
		probability: probability,
		seed:        seed,
	}
	if hasReward {
		out.SetReward(reward)
	}

	return out, nil
}

// Equal reports deep equality of two interactions, reward presence
// included. Used by round-trip tests and log comparison.
func (i *Interaction) Equal(o *Interaction) bool {
	if i == nil || o == nil {
		return i == o
	}
	if i.id != o.id || i.idHash != o.idHash || i.action != o.action ||
		i.probability != o.probability || i.seed != o.seed ||
		i.hasReward != o.hasReward || i.reward != o.reward ||
		i.context.Other != o.context.Other ||
		len(i.context.Features) != len(o.context.Features) {
		return false
	}
	for k, f := range i.context.Features {
		if o.context.Features[k] != f {
			return false
		}
	}

	return true
}
