/*
Package main is the entry point for the mwtcli driver.

mwtcli is a thin harness around the exploration library: it constructs an
explorer from a YAML scenario, feeds interaction streams in and out, joins
rewards, and scores candidate policies offline. The library itself owns no
files and no flags — everything here is plumbing.

Usage:

	mwtcli [command]

Available Commands:

	simulate    Run an explorer over a synthetic scenario, write the binary log
	rewards     Join "unique_id reward" pairs onto a binary log
	evaluate    IPS-score a constant candidate policy against a binary log
	dump        Render a binary log in the text record format

Examples:

	# 10k ε-greedy decisions against a known world
	mwtcli simulate -c scenario.yaml -o log.bin

	# Join observed rewards, then score "always action 2"
	mwtcli rewards -i log.bin -r rewards.txt -o joined.bin
	mwtcli evaluate -i joined.bin --action 2
*/
package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("mwtcli: ")

	rootCmd := &cobra.Command{
		Use:           "mwtcli",
		Short:         "Drive the exploration library: simulate, join rewards, evaluate",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSimulateCmd(),
		newRewardsCmd(),
		newEvaluateCmd(),
		newDumpCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
