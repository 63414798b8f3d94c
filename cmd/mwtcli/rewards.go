package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/explore/core"
	"github.com/katalvlaran/explore/record"
	"github.com/katalvlaran/explore/reward"
)

func newRewardsCmd() *cobra.Command {
	var (
		inPath     string
		rewardPath string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Join \"unique_id reward\" pairs onto a binary log",
		RunE: func(_ *cobra.Command, _ []string) error {
			interactions, err := readLog(inPath)
			if err != nil {
				return err
			}
			rep := reward.NewReporter(interactions)

			rf, err := os.Open(rewardPath)
			if err != nil {
				return err
			}
			defer rf.Close()

			joined, missed, lineNo := 0, 0, 0
			sc := bufio.NewScanner(rf)
			for sc.Scan() {
				lineNo++
				line := strings.TrimSpace(sc.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				fields := strings.Fields(line)
				if len(fields) != 2 {
					return fmt.Errorf("rewards line %d: want \"unique_id reward\", got %q", lineNo, line)
				}
				r, err := strconv.ParseFloat(fields[1], 32)
				if err != nil {
					return fmt.Errorf("rewards line %d: bad reward %q", lineNo, fields[1])
				}
				if rep.Report(fields[0], float32(r)) {
					joined++
				} else {
					missed++
				}
			}
			if err := sc.Err(); err != nil {
				return err
			}

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()
			if err := record.EncodeBinary(out, rep.Interactions()); err != nil {
				return err
			}

			log.Printf("%d rewards joined, %d ids unmatched → %s", joined, missed, outPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", "", "binary log to join onto (required)")
	cmd.Flags().StringVarP(&rewardPath, "rewards", "r", "", "whitespace \"unique_id reward\" pairs (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "joined.bin", "output binary log")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("rewards")

	return cmd
}

// readLog decodes a binary interaction stream from disk.
func readLog(path string) ([]*core.Interaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return record.DecodeBinary(f)
}
