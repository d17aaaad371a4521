// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/incipit/internal/convert"
	"github.com/pdiddy/incipit/internal/history"
	"github.com/pdiddy/incipit/pkg/types"
)

const fieldRefreshHint = "Open the result and update all fields (select all, then F9) to fill in page numbers."

var convertCmd = &cobra.Command{
	Use:   "convert [documents...]",
	Short: "Convert endnote references into incipit notes",
	Long: `Convert rewrites each document's note references into bookmarks and
appends a Notes section that cites each note by its incipit and page.

With one input, -o chooses the output path. With several, each result is
written next to its input with the configured suffix. Existing outputs are
skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output path (single input only)")
	convertCmd.Flags().String("report", "", "write a YAML conversion report to this path (single input only)")
	convertCmd.Flags().Bool("force", false, "overwrite existing outputs")
	convertCmd.Flags().BoolP("verbose", "v", false, "print one line per rewritten reference")

	bindFlag("verbose", convertCmd.Flags().Lookup("verbose"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	reportPath, _ := cmd.Flags().GetString("report")
	force, _ := cmd.Flags().GetBool("force")

	if len(args) > 1 && (output != "" || reportPath != "") {
		return fmt.Errorf("--output and --report need exactly one input, got %d", len(args))
	}

	cfg := conversionConfig()
	if !cfg.Kind.Valid() {
		return fmt.Errorf("unknown note kind %q (want %s or %s)", cfg.Kind, types.KindEndnotes, types.KindFootnotes)
	}

	var rec convert.Recorder
	if cfg.HistoryDB != "" {
		store, err := history.NewStore(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()
		rec = store
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		input := args[0]
		if output == "" {
			output = convert.DefaultOutputPath(input, cfg.OutputSuffix)
		}
		status, report := convert.ConvertOne(ctx, cfg, input, output, force, rec, out)
		if reportPath != "" && report != nil {
			if err := convert.WriteReport(reportPath, report); err != nil {
				return err
			}
		}
		switch status {
		case types.ConversionFailed:
			return fmt.Errorf("converting %s failed", input)
		case types.ConversionDone:
			fmt.Fprintln(os.Stderr, fieldRefreshHint)
		}
		return nil
	}

	result := convert.ConvertBatch(ctx, cfg, args, force, rec, out)
	if result.Converted > 0 {
		fmt.Fprintln(os.Stderr, fieldRefreshHint)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted after %d of %d documents: %w", result.Total(), len(args), err)
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d documents failed", result.Failed, result.Total())
	}
	return nil
}
