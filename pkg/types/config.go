// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Defaults applied when a ConversionConfig field is left zero.
const (
	DefaultBookmarkPrefix  = "_IncipitNote"
	DefaultBaseBookmarkID  = 1000
	DefaultIncipitWords    = 3
	DefaultPlaceholder     = "[…]"
	DefaultHeading         = "Notes"
	DefaultHeadingStyle    = "Heading1"
	DefaultPagePrefix      = "p. "
	DefaultPagePlaceholder = "#"
	DefaultMissingMarker   = "[missing reference]"
	DefaultOutputSuffix    = "-incipit"
)

// IncipitConfig controls how the snippet preceding each marker is taken.
type IncipitConfig struct {
	// Words is the maximum number of trailing words kept (default 3).
	Words int `json:"words" yaml:"words"`

	// Placeholder replaces the incipit when no text precedes the marker
	// in its paragraph.
	Placeholder string `json:"placeholder" yaml:"placeholder"`
}

// BookmarkConfig controls the bookmark pairs that replace note markers.
type BookmarkConfig struct {
	// Prefix is prepended to the note id to form the bookmark name.
	Prefix string `json:"prefix" yaml:"prefix"`

	// BaseID is the lowest synthetic bookmark id handed out (default 1000).
	BaseID int `json:"base_id" yaml:"base_id"`
}

// SectionConfig controls the generated notes section.
type SectionConfig struct {
	// Heading is the text of the section heading (default "Notes").
	Heading string `json:"heading" yaml:"heading"`

	// HeadingStyle is the paragraph style id applied to the heading.
	HeadingStyle string `json:"heading_style" yaml:"heading_style"`

	// PagePrefix is written before the page field (e.g. "p. ").
	PagePrefix string `json:"page_prefix" yaml:"page_prefix"`

	// PagePlaceholder is the visible result of a page field until the
	// consuming editor updates fields.
	PagePlaceholder string `json:"page_placeholder" yaml:"page_placeholder"`

	// MissingMarker prefixes entries for notes that no marker references.
	MissingMarker string `json:"missing_marker" yaml:"missing_marker"`
}

// ConversionConfig groups everything one document conversion needs.
type ConversionConfig struct {
	// Kind selects endnotes or footnotes.
	Kind NoteKind `json:"kind" yaml:"kind"`

	Incipit   IncipitConfig  `json:"incipit" yaml:"incipit"`
	Bookmarks BookmarkConfig `json:"bookmarks" yaml:"bookmarks"`
	Section   SectionConfig  `json:"section" yaml:"section"`

	// OutputSuffix is appended to the input base name when no output path
	// is given (thesis.docx -> thesis-incipit.docx).
	OutputSuffix string `json:"output_suffix" yaml:"output_suffix"`

	// HistoryDB is the path of the SQLite conversion ledger. Empty disables it.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`

	// Verbose adds one progress line per rewritten reference.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// DefaultConversionConfig returns a config with every default filled in.
func DefaultConversionConfig() ConversionConfig {
	return ConversionConfig{
		Kind: KindEndnotes,
		Incipit: IncipitConfig{
			Words:       DefaultIncipitWords,
			Placeholder: DefaultPlaceholder,
		},
		Bookmarks: BookmarkConfig{
			Prefix: DefaultBookmarkPrefix,
			BaseID: DefaultBaseBookmarkID,
		},
		Section: SectionConfig{
			Heading:         DefaultHeading,
			HeadingStyle:    DefaultHeadingStyle,
			PagePrefix:      DefaultPagePrefix,
			PagePlaceholder: DefaultPagePlaceholder,
			MissingMarker:   DefaultMissingMarker,
		},
		OutputSuffix: DefaultOutputSuffix,
	}
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
// PagePrefix is left alone because an empty prefix is a valid choice.
func (c ConversionConfig) WithDefaults() ConversionConfig {
	d := DefaultConversionConfig()
	if c.Kind == "" {
		c.Kind = d.Kind
	}
	if c.Incipit.Words <= 0 {
		c.Incipit.Words = d.Incipit.Words
	}
	if c.Incipit.Placeholder == "" {
		c.Incipit.Placeholder = d.Incipit.Placeholder
	}
	if c.Bookmarks.Prefix == "" {
		c.Bookmarks.Prefix = d.Bookmarks.Prefix
	}
	if c.Bookmarks.BaseID <= 0 {
		c.Bookmarks.BaseID = d.Bookmarks.BaseID
	}
	if c.Section.Heading == "" {
		c.Section.Heading = d.Section.Heading
	}
	if c.Section.HeadingStyle == "" {
		c.Section.HeadingStyle = d.Section.HeadingStyle
	}
	if c.Section.PagePlaceholder == "" {
		c.Section.PagePlaceholder = d.Section.PagePlaceholder
	}
	if c.Section.MissingMarker == "" {
		c.Section.MissingMarker = d.Section.MissingMarker
	}
	if c.OutputSuffix == "" {
		c.OutputSuffix = d.OutputSuffix
	}
	return c
}
