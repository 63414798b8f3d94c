package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/explore/record"
)

func newDumpCmd() *cobra.Command {
	var inPath string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Render a binary log in the text record format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			interactions, err := readLog(inPath)
			if err != nil {
				return err
			}

			return record.EncodeText(cmd.OutOrStdout(), interactions)
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", "", "binary log to dump (required)")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
