// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/incipit/pkg/types"
)

// envKeyReplacer maps nested keys to env names: section.heading_style ->
// INCIPIT_SECTION_HEADING_STYLE.
var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults() {
	d := types.DefaultConversionConfig()
	viper.SetDefault("notes.kind", string(d.Kind))
	viper.SetDefault("incipit.words", d.Incipit.Words)
	viper.SetDefault("incipit.placeholder", d.Incipit.Placeholder)
	viper.SetDefault("bookmarks.prefix", d.Bookmarks.Prefix)
	viper.SetDefault("bookmarks.base_id", d.Bookmarks.BaseID)
	viper.SetDefault("section.heading", d.Section.Heading)
	viper.SetDefault("section.heading_style", d.Section.HeadingStyle)
	viper.SetDefault("section.page_prefix", d.Section.PagePrefix)
	viper.SetDefault("section.page_placeholder", d.Section.PagePlaceholder)
	viper.SetDefault("section.missing_marker", d.Section.MissingMarker)
	viper.SetDefault("output.suffix", d.OutputSuffix)
	viper.SetDefault("history.db", "")
}

// bindFlag binds a config key to a flag so the flag wins when set.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// conversionConfig assembles the conversion config from defaults, the
// config file, INCIPIT_* environment variables, and bound flags.
func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		Kind: types.NoteKind(viper.GetString("notes.kind")),
		Incipit: types.IncipitConfig{
			Words:       viper.GetInt("incipit.words"),
			Placeholder: viper.GetString("incipit.placeholder"),
		},
		Bookmarks: types.BookmarkConfig{
			Prefix: viper.GetString("bookmarks.prefix"),
			BaseID: viper.GetInt("bookmarks.base_id"),
		},
		Section: types.SectionConfig{
			Heading:         viper.GetString("section.heading"),
			HeadingStyle:    viper.GetString("section.heading_style"),
			PagePrefix:      viper.GetString("section.page_prefix"),
			PagePlaceholder: viper.GetString("section.page_placeholder"),
			MissingMarker:   viper.GetString("section.missing_marker"),
		},
		OutputSuffix: viper.GetString("output.suffix"),
		HistoryDB:    viper.GetString("history.db"),
		Verbose:      viper.GetBool("verbose"),
	}.WithDefaults()
}
