// Package explore is a contextual-bandit exploration library: it turns a
// caller-supplied deterministic default policy (or scoring function) over a
// finite action set into a randomized decision maker that records, for every
// exploratory draw, the exact probability under which the action was sampled.
//
// 🎰 What is explore?
//
//	A small, deterministic library that brings together:
//		• Exploration strategies: ε-greedy, tau-first, bagging, softmax
//		• Honest propensity accounting — the logged probability is the true
//		  sampling probability, never an approximation
//		• Reproducible decisions keyed by a caller-supplied unique id
//		• An append-only interaction log with lossless binary & text codecs
//		• Reward joins by hashed unique id
//		• Offline inverse-propensity-scored (IPS) policy evaluation
//
// ✨ Why choose explore?
//
//   - Deterministic by construction – every decision is a pure function of
//     (configuration, callback outputs on the context, unique id)
//   - IPS-correct – importance weights survive serialization round-trips
//   - Pure Go – no cgo, no background goroutines, no hidden I/O
//
// Everything is organized under focused subpackages:
//
//	core/     — Action, ActionSet, Context and Interaction primitives
//	hashing/  — stable murmur3 identifier hashing
//	prg/      — the deterministic uniform generator behind every draw
//	policy/   — stateful & stateless policy/scorer adapters
//	strategy/ — the four exploration strategies behind one Choose contract
//	record/   — the append-only interaction log and its codecs
//	reward/   — reward reporting over a loaded interaction set
//	ips/      — offline IPS value estimation
//	mwt/      — the façade binding an app id, a log and one strategy
//	simulate/ — synthetic bandit worlds for end-to-end validation
//
// Quick decision loop:
//
//	exp := mwt.New("my-app")
//	_ = exp.InitEpsilonGreedy(0.1, policy.StatelessPolicy(myPolicy), 10)
//	action, err := exp.ChooseAction(ctx, "event-42")
//
// Later, offline:
//
//	rep := reward.NewReporter(interactions)
//	rep.Report("event-42", 1.0)
//	est := ips.NewEvaluator(rep.Interactions())
//	value := est.EvaluatePolicy(policy.StatelessPolicy(candidate))
package explore
