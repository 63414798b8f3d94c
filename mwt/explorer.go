// Package mwt exposes the explorer façade: it binds an application id, an
// interaction log, an action set and one exploration strategy behind the
// two decision calls a client application uses.
//
// Decision flow:
//
//	unique id → seed via hashing.UniformHash(id, 0) → strategy.Choose →
//	(action, propensity, should-log) → on should-log, an Interaction is
//	snapshotted and appended to the façade's log.
//
// Reproducibility: two façades with identical configuration observe
// identical (action, probability) for the same unique id — the unique id
// is the sole source of decision randomness, which is why the seed is
// never drawn from a global source.
//
// Concurrency: a façade is single-writer. ChooseAction, the tau-first
// counter it may advance, and the log append it may perform are not safe
// under concurrent callers sharing one Explorer. Disjoint Explorers are
// fully independent; callers wanting parallel decisioning run one façade
// per worker and merge serialized logs afterwards. No call blocks on I/O
// or suspends: ChooseAction runs to completion and returns.
//
// Errors (sentinel):
//
//	ErrNotInitialized     — a decision call before any Init*.
//	ErrAlreadyInitialized — a second Init* on the same façade.
//	ErrEmptyUniqueID      — ChooseAction with an empty unique id.
//
// plus the strategy sentinels (ErrBadConfig, ErrBadCallerAction,
// ErrBadScorerOutput) surfacing unchanged from the decision path. A
// failed decision never reaches the log.
package mwt

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/hashing"
	"github.com/katalvlaran/explore/policy"
	"github.com/katalvlaran/explore/record"
	"github.com/katalvlaran/explore/strategy"
)

// Sentinel errors for façade misuse.
var (
	// ErrNotInitialized indicates a decision call before any Init*.
	ErrNotInitialized = errors.New("mwt: explorer not initialized")

	// ErrAlreadyInitialized indicates a repeated Init* call; a façade is
	// bound to one strategy for its lifetime.
	ErrAlreadyInitialized = errors.New("mwt: explorer already initialized")

	// ErrEmptyUniqueID indicates ChooseAction was called with an empty
	// unique id, which would destroy reproducibility.
	ErrEmptyUniqueID = errors.New("mwt: unique id must be non-empty")
)

// NoJoinKey is returned by ChooseActionAndKey when the draw was not
// logged and therefore has nothing to join a reward against.
const NoJoinKey uint64 = math.MaxUint64

// Explorer binds an app id, a log, an action set and one strategy.
type Explorer struct {
	appID   string
	actions core.ActionSet
	strat   strategy.Strategy
	log     *record.Log

	// keySeq feeds the seeds of library-keyed decisions.
	keySeq uint64
}

// New returns an uninitialized façade. An empty appID is replaced with a
// generated UUID; a non-empty appID tags the log as-is.
func New(appID string) *Explorer {
	if appID == "" {
		appID = uuid.NewString()
	}

	return &Explorer{appID: appID, log: record.NewLog(appID)}
}

// AppID returns the application tag, generated or caller-supplied.
func (e *Explorer) AppID() string {
	return e.appID
}

// InitEpsilonGreedy binds an ε-greedy strategy over k actions.
func (e *Explorer) InitEpsilonGreedy(epsilon float64, def policy.Policy, k uint32) error {
	s, err := strategy.NewEpsilonGreedy(epsilon, def)
	if err != nil {
		return err
	}

	return e.bind(s, k)
}

// InitTauFirst binds a tau-first strategy over k actions.
func (e *Explorer) InitTauFirst(tau uint32, def policy.Policy, k uint32) error {
	s, err := strategy.NewTauFirst(tau, def)
	if err != nil {
		return err
	}

	return e.bind(s, k)
}

// InitBagging binds a bagging strategy over k actions.
func (e *Explorer) InitBagging(bags []policy.Policy, k uint32) error {
	s, err := strategy.NewBagging(bags)
	if err != nil {
		return err
	}

	return e.bind(s, k)
}

// InitSoftmax binds a softmax strategy over k actions. Omitted opts mean
// strategy.DefaultOptions.
func (e *Explorer) InitSoftmax(lambda float64, scorer policy.Scorer, k uint32, opts ...strategy.Options) error {
	o := strategy.DefaultOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	s, err := strategy.NewSoftmax(lambda, scorer, o)
	if err != nil {
		return err
	}

	return e.bind(s, k)
}

func (e *Explorer) bind(s strategy.Strategy, k uint32) error {
	if e.strat != nil {
		return ErrAlreadyInitialized
	}
	actions, err := core.NewActionSet(k)
	if err != nil {
		return fmt.Errorf("%w: %v", strategy.ErrBadConfig, err)
	}
	e.actions = actions
	e.strat = s

	return nil
}

// ChooseAction makes one decision for ctx keyed by the caller's unique
// id, appending to the internal log iff the draw was randomized. The same
// unique id against an identically-configured façade reproduces the same
// (action, probability).
func (e *Explorer) ChooseAction(ctx *core.Context, uniqueID string) (core.Action, error) {
	if e.strat == nil {
		return 0, ErrNotInitialized
	}
	if uniqueID == "" {
		return 0, ErrEmptyUniqueID
	}

	seed := hashing.UniformHash([]byte(uniqueID), 0)
	action, _, err := e.choose(ctx, seed, hashing.IDHash(uniqueID))
	if err != nil {
		return 0, err
	}

	return action, nil
}

// ChooseActionAndKey makes one decision with a library-assigned join key:
// the key is the façade's call sequence number (1, 2, ... over
// ChooseActionAndKey calls) and is stored as the logged interaction's join
// hash, so rewards attach via reward.Reporter.ReportByKey. Unlogged draws
// return NoJoinKey.
func (e *Explorer) ChooseActionAndKey(ctx *core.Context) (core.Action, uint64, error) {
	if e.strat == nil {
		return 0, NoJoinKey, ErrNotInitialized
	}

	// Seed from the app id and a per-façade sequence; deterministic for a
	// façade's call sequence, disjoint across façades with distinct ids.
	e.keySeq++
	key := e.keySeq
	seed := hashing.UniformHash([]byte(e.appID+"#"+strconv.FormatUint(key, 10)), 0)

	action, logged, err := e.choose(ctx, seed, key)
	if err != nil {
		return 0, NoJoinKey, err
	}
	if !logged {
		return action, NoJoinKey, nil
	}

	return action, key, nil
}

// choose runs the bound strategy and appends the interaction when the
// draw was randomized. Errors leave the log untouched.
func (e *Explorer) choose(ctx *core.Context, seed uint32, idHash uint64) (core.Action, bool, error) {
	d, err := e.strat.Choose(ctx, e.actions, seed)
	if err != nil {
		return 0, false, err
	}
	if !d.ShouldLog {
		return d.Action, false, nil
	}

	it, err := core.NewInteraction(idHash, ctx, d.Action, float32(d.Probability), seed)
	if err != nil {
		return 0, false, fmt.Errorf("mwt: building interaction: %w", err)
	}
	e.log.Store(it)

	return d.Action, true, nil
}

// Interactions returns the logged decisions in append order.
func (e *Explorer) Interactions() []*core.Interaction {
	return e.log.All()
}

// SerializedInteractions exports the log in the binary record format.
func (e *Explorer) SerializedInteractions() ([]byte, error) {
	var buf bytes.Buffer
	if err := record.EncodeBinary(&buf, e.log.All()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Log exposes the underlying log, primarily for app-id inspection.
func (e *Explorer) Log() *record.Log {
	return e.log
}
