package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/ips"
	"github.com/katalvlaran/explore/policy"
)

func newEvaluateCmd() *cobra.Command {
	var (
		inPath string
		action uint32
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "IPS-score a constant candidate policy against a binary log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if action == 0 {
				return fmt.Errorf("--action must be a 1-based action id")
			}
			interactions, err := readLog(inPath)
			if err != nil {
				return err
			}

			rewarded := 0
			for _, it := range interactions {
				if _, ok := it.Reward(); ok {
					rewarded++
				}
			}

			est := ips.NewEvaluator(interactions)
			v := est.EvaluatePolicy(policy.Constant(core.Action(action)))

			cmd.Printf("records: %d, rewarded: %d\n", est.Len(), rewarded)
			cmd.Printf("V̂(always %d) = %.6f\n", action, v)

			return nil
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", "", "binary log to evaluate (required)")
	cmd.Flags().Uint32Var(&action, "action", 0, "constant candidate action (required)")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}
