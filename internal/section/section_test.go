// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/incipit/internal/docxtest"
	"github.com/pdiddy/incipit/internal/wordml"
	"github.com/pdiddy/incipit/pkg/types"
)

func newDoc(t *testing.T) *wordml.Document {
	t.Helper()
	doc, err := wordml.Parse(docxtest.Document())
	require.NoError(t, err)
	return doc
}

func defaultOptions() Options {
	return OptionsFrom(types.DefaultConversionConfig())
}

func TestBuild(t *testing.T) {
	doc := newDoc(t)
	notes := types.NoteSet{
		"1": {ID: "1", Text: "Author, Title, 2000"},
		"3": {ID: "3", Text: "Unreferenced"},
	}
	refs := types.ReferenceSet{
		"1": {NoteID: "1", BookmarkName: "_IncipitNote1", BookmarkID: 1000, Incipit: "a long sentence"},
	}

	block := Build(doc, notes, refs, defaultOptions())
	require.Len(t, block, 4)

	tests := []struct {
		name string
		idx  int
		want string
	}{
		{
			name: "page break",
			idx:  0,
			want: `<w:p><w:r><w:br w:type="page"/></w:r></w:p>`,
		},
		{
			name: "heading",
			idx:  1,
			want: `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Notes</w:t></w:r></w:p>`,
		},
		{
			name: "referenced note",
			idx:  2,
			want: `<w:p>` +
				`<w:r><w:t xml:space="preserve">p. </w:t></w:r>` +
				`<w:fldSimple w:instr=" PAGEREF _IncipitNote1 \h "><w:r><w:t>#</w:t></w:r></w:fldSimple>` +
				`<w:r><w:t xml:space="preserve"> </w:t></w:r>` +
				`<w:r><w:rPr><w:i/></w:rPr><w:t>a long sentence</w:t></w:r>` +
				`<w:r><w:t>: Author, Title, 2000</w:t></w:r>` +
				`</w:p>`,
		},
		{
			name: "missing note",
			idx:  3,
			want: `<w:p><w:r><w:t>[missing reference] Unreferenced</w:t></w:r></w:p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(Block{block[tt.idx]}))
		})
	}
}

func TestBuildOrdersByNumericID(t *testing.T) {
	doc := newDoc(t)
	notes := types.NoteSet{
		"10": {ID: "10", Text: "ten"},
		"2":  {ID: "2", Text: "two"},
		"1":  {ID: "1", Text: "one"},
	}
	block := Build(doc, notes, types.ReferenceSet{}, defaultOptions())
	require.Len(t, block, 5)

	var got []string
	for _, p := range block[2:] {
		got = append(got, p.InnerText())
	}
	assert.Equal(t, []string{
		"[missing reference] one",
		"[missing reference] two",
		"[missing reference] ten",
	}, got)
}

func TestBuildEscapesOnce(t *testing.T) {
	doc := newDoc(t)
	notes := types.NoteSet{"1": {ID: "1", Text: `Smith & Jones, <Title>, "quoted"`}}
	refs := types.ReferenceSet{"1": {NoteID: "1", BookmarkName: "_IncipitNote1", BookmarkID: 1000, Incipit: "R&D <costs>"}}

	out := Render(Build(doc, notes, refs, defaultOptions()))

	assert.Contains(t, out, `: Smith &amp; Jones, &lt;Title&gt;, &#34;quoted&#34;`)
	assert.Contains(t, out, `R&amp;D &lt;costs&gt;`)
	assert.NotContains(t, out, "&amp;amp;")
	assert.NotContains(t, out, "&amp;lt;")
}

func TestBuildOptions(t *testing.T) {
	doc := newDoc(t)
	notes := types.NoteSet{"1": {ID: "1", Text: "Cite"}}
	refs := types.ReferenceSet{"1": {NoteID: "1", BookmarkName: "_N1", BookmarkID: 7, Incipit: "words"}}
	opts := Options{
		Heading:         "Endnotes",
		PagePrefix:      "",
		PagePlaceholder: "?",
		MissingMarker:   "[orphan]",
	}

	block := Build(doc, notes, refs, opts)
	require.Len(t, block, 3)

	assert.Equal(t, `<w:p><w:r><w:t>Endnotes</w:t></w:r></w:p>`, Render(Block{block[1]}))
	entry := Render(Block{block[2]})
	assert.True(t, strings.HasPrefix(entry, `<w:p><w:fldSimple w:instr=" PAGEREF _N1 \h "><w:r><w:t>?</w:t></w:r></w:fldSimple>`), entry)
}

func TestEntries(t *testing.T) {
	notes := types.NoteSet{
		"2": {ID: "2", Text: "B"},
		"1": {ID: "1", Text: "A"},
	}
	refs := types.ReferenceSet{"2": {NoteID: "2", BookmarkName: "_IncipitNote2"}}

	got := Entries(notes, refs)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Note.ID)
	assert.True(t, got[0].Missing)
	assert.Equal(t, "2", got[1].Note.ID)
	assert.False(t, got[1].Missing)
	assert.Equal(t, "_IncipitNote2", got[1].Reference.BookmarkName)
}

func TestInstruction(t *testing.T) {
	assert.Equal(t, ` PAGEREF _IncipitNote12 \h `, Instruction("_IncipitNote12"))
}
