package ips_test

import (
	"fmt"
	"log"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/ips"
	"github.com/katalvlaran/explore/policy"
)

// ExampleEvaluator_EvaluatePolicy scores a constant candidate against a
// three-record log: two records match the candidate's action, and each
// matched reward is weighted by the inverse of its logged propensity.
func ExampleEvaluator_EvaluatePolicy() {
	build := func(a core.Action, p float32, r float32) *core.Interaction {
		it, err := core.NewInteraction(0, &core.Context{}, a, p, 0)
		if err != nil {
			log.Fatal(err)
		}
		it.SetReward(r)
		return it
	}

	data := []*core.Interaction{
		build(1, 0.5, 1.0),
		build(2, 0.5, 0.0),
		build(1, 0.25, 2.0),
	}

	est := ips.NewEvaluator(data)
	fmt.Printf("V̂ = %.3f\n", est.EvaluatePolicy(policy.Constant(1)))

	// Output:
	// V̂ = 3.333
}
