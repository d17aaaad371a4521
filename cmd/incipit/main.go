// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the incipit CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the incipit CLI.
var rootCmd = &cobra.Command{
	Use:   "incipit",
	Short: "Convert numbered endnotes into incipit-style notes",
	Long: `incipit rewrites the note apparatus of a .docx document. Each numbered
endnote (or footnote) marker is replaced by a bookmark, and a new Notes
section lists every note introduced by the last words before its marker and
a live page reference, instead of a bare running number.

Page numbers are fields: after opening the converted document, select all
and update fields so the editor computes them.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./incipit.yaml or ~/.config/incipit/incipit.yaml)")
	rootCmd.PersistentFlags().String("kind", "", "note apparatus to convert: endnotes or footnotes")
	rootCmd.PersistentFlags().String("history-db", "", "SQLite conversion ledger (empty disables it)")

	bindFlag("notes.kind", rootCmd.PersistentFlags().Lookup("kind"))
	bindFlag("history.db", rootCmd.PersistentFlags().Lookup("history-db"))
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("incipit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "incipit"))
		}
	}

	viper.SetEnvPrefix("INCIPIT")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
