package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/record"
	"github.com/katalvlaran/explore/simulate"
)

func newSimulateCmd() *cobra.Command {
	var (
		configPath string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run an explorer over a synthetic scenario, write the binary log",
		RunE: func(_ *cobra.Command, _ []string) error {
			sc, err := loadScenario(configPath)
			if err != nil {
				return err
			}
			exp, err := buildExplorer(sc)
			if err != nil {
				return err
			}

			var interactions []*core.Interaction
			if sc.World != nil {
				world, err := simulate.NewWorld(sc.World.Means)
				if err != nil {
					return err
				}
				if interactions, err = simulate.Run(exp, world, sc.Decisions, sc.IDPrefix); err != nil {
					return err
				}
			} else {
				for i := 0; i < sc.Decisions; i++ {
					id := fmt.Sprintf("%s-%d", sc.IDPrefix, i)
					if _, err := exp.ChooseAction(&core.Context{}, id); err != nil {
						return fmt.Errorf("decision %d: %w", i, err)
					}
				}
				interactions = exp.Interactions()
			}

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()
			if err := record.EncodeBinary(out, interactions); err != nil {
				return err
			}

			log.Printf("app %s: %d decisions, %d logged → %s",
				exp.AppID(), sc.Decisions, len(interactions), outPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "scenario YAML file (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "log.bin", "output binary log")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
