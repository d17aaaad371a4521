// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteKind(t *testing.T) {
	tests := []struct {
		kind      NoteKind
		valid     bool
		part      string
		reference string
	}{
		{KindEndnotes, true, "word/endnotes.xml", "endnoteReference"},
		{KindFootnotes, true, "word/footnotes.xml", "footnoteReference"},
		{"sidenotes", false, "word/endnotes.xml", "endnoteReference"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.kind.Valid())
			assert.Equal(t, tt.part, tt.kind.PartName())
			assert.Equal(t, tt.reference, tt.kind.ReferenceElement())
		})
	}
}

func TestSortedIDs(t *testing.T) {
	set := NoteSet{
		"10": {ID: "10"},
		"2":  {ID: "2"},
		"1":  {ID: "1"},
		"b":  {ID: "b"},
		"a":  {ID: "a"},
		"21": {ID: "21"},
	}
	assert.Equal(t, []string{"1", "2", "10", "21", "a", "b"}, set.SortedIDs())
	assert.Empty(t, NoteSet{}.SortedIDs())
}

func TestWithDefaults(t *testing.T) {
	got := ConversionConfig{}.WithDefaults()
	want := DefaultConversionConfig()
	want.Section.PagePrefix = ""
	assert.Equal(t, want, got, "an empty page prefix is kept")

	custom := ConversionConfig{
		Kind:         KindFootnotes,
		Incipit:      IncipitConfig{Words: 5},
		Bookmarks:    BookmarkConfig{Prefix: "_N", BaseID: 10},
		Section:      SectionConfig{Heading: "Endnotes", PagePrefix: "page "},
		OutputSuffix: "-converted",
	}.WithDefaults()
	assert.Equal(t, KindFootnotes, custom.Kind)
	assert.Equal(t, 5, custom.Incipit.Words)
	assert.Equal(t, DefaultPlaceholder, custom.Incipit.Placeholder)
	assert.Equal(t, "_N", custom.Bookmarks.Prefix)
	assert.Equal(t, 10, custom.Bookmarks.BaseID)
	assert.Equal(t, "Endnotes", custom.Section.Heading)
	assert.Equal(t, DefaultHeadingStyle, custom.Section.HeadingStyle)
	assert.Equal(t, "page ", custom.Section.PagePrefix)
	assert.Equal(t, "-converted", custom.OutputSuffix)
}
