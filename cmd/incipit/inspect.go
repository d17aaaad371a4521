// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/incipit/internal/convert"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <document>",
	Short: "Show what a conversion would produce without writing anything",
	Long: `Inspect runs the full conversion in a scratch directory and prints the
resulting report: every note with its incipit, bookmark, and citation, and
the notes no marker references. Nothing is written next to the input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		report, err := convert.Inspect(conversionConfig(), args[0])
		if err != nil {
			return err
		}

		var data []byte
		if asJSON {
			data, err = json.MarshalIndent(report, "", "  ")
		} else {
			data, err = convert.MarshalReport(report)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output the report as JSON instead of YAML")

	rootCmd.AddCommand(inspectCmd)
}
