package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/mwt"
	"github.com/katalvlaran/explore/policy"
	"github.com/katalvlaran/explore/strategy"
)

// Scenario is the YAML description of one simulated run.
//
// Example:
//
//	app_id: demo
//	strategy: epsilon-greedy    # epsilon-greedy | tau-first | bagging | softmax
//	actions: 3
//	decisions: 10000
//	id_prefix: sim
//	epsilon: 0.5
//	default_action: 2
//	world:
//	  means: [0.2, 0.8, 0.5]
//
// Strategy-specific knobs: epsilon (ε-greedy), tau (tau-first),
// bag_actions (bagging: one constant policy per entry), lambda, scores
// and min_probability (softmax, static score vector). The optional world
// joins simulated Bernoulli rewards onto the log after the run.
type Scenario struct {
	AppID     string `yaml:"app_id"`
	Strategy  string `yaml:"strategy"`
	Actions   uint32 `yaml:"actions"`
	Decisions int    `yaml:"decisions"`
	IDPrefix  string `yaml:"id_prefix"`

	Epsilon        float64       `yaml:"epsilon"`
	Tau            uint32        `yaml:"tau"`
	DefaultAction  core.Action   `yaml:"default_action"`
	BagActions     []core.Action `yaml:"bag_actions"`
	Lambda         float64       `yaml:"lambda"`
	Scores         []float64     `yaml:"scores"`
	MinProbability float64       `yaml:"min_probability"`

	World *struct {
		Means []float64 `yaml:"means"`
	} `yaml:"world"`
}

// loadScenario reads and sanity-checks a scenario file.
func loadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if sc.Decisions <= 0 {
		return nil, fmt.Errorf("scenario: decisions must be positive, got %d", sc.Decisions)
	}
	if sc.IDPrefix == "" {
		sc.IDPrefix = "sim"
	}

	return &sc, nil
}

// buildExplorer constructs the façade the scenario describes.
func buildExplorer(sc *Scenario) (*mwt.Explorer, error) {
	exp := mwt.New(sc.AppID)

	var err error
	switch sc.Strategy {
	case "epsilon-greedy":
		err = exp.InitEpsilonGreedy(sc.Epsilon, policy.Constant(sc.DefaultAction), sc.Actions)
	case "tau-first":
		err = exp.InitTauFirst(sc.Tau, policy.Constant(sc.DefaultAction), sc.Actions)
	case "bagging":
		bags := make([]policy.Policy, len(sc.BagActions))
		for i, a := range sc.BagActions {
			bags[i] = policy.Constant(a)
		}
		err = exp.InitBagging(bags, sc.Actions)
	case "softmax":
		scores := make([]float64, len(sc.Scores))
		copy(scores, sc.Scores)
		scorer := policy.StatelessScorer(func(*core.Context) []float64 {
			out := make([]float64, len(scores))
			copy(out, scores)
			return out
		})
		opts := strategy.DefaultOptions()
		opts.MinProbability = sc.MinProbability
		err = exp.InitSoftmax(sc.Lambda, scorer, sc.Actions, opts)
	default:
		return nil, fmt.Errorf("scenario: unknown strategy %q", sc.Strategy)
	}
	if err != nil {
		return nil, err
	}

	return exp, nil
}
