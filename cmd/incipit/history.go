// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/incipit/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversions, newest first",
	Long: `History reads the conversion ledger configured by history.db (or
--history-db, or INCIPIT_HISTORY_DB) and lists past conversions with their
counts and status. --export writes the whole ledger, digests included,
to a YAML or JSON file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")
		exportPath, _ := cmd.Flags().GetString("export")

		cfg := conversionConfig()
		if cfg.HistoryDB == "" {
			return fmt.Errorf("no history database configured (set history.db or --history-db)")
		}

		store, err := history.NewStore(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		if exportPath != "" {
			n, err := store.Export(cmd.Context(), exportPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d conversions to %s\n", n, exportPath)
			return nil
		}

		entries, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No conversions recorded.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tSTATUS\tINPUT\tNOTES\tREFS\tMISSING")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
				e.ConvertedAt.Local().Format(time.DateTime), e.Status, e.Input, e.Notes, e.References, e.Missing)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")
	historyCmd.Flags().String("export", "", "write the whole ledger to a .yaml or .json file")

	rootCmd.AddCommand(historyCmd)
}
