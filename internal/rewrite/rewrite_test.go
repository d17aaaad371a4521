// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rewrite

import (
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/incipit/internal/docxtest"
	"github.com/pdiddy/incipit/internal/wordml"
	"github.com/pdiddy/incipit/pkg/types"
)

var (
	selStarts     = wordml.Compile("//w:bookmarkStart")
	selEnds       = wordml.Compile("//w:bookmarkEnd")
	selEndnoteRef = wordml.Compile("//w:endnoteReference")
)

func parse(t *testing.T, data []byte) *wordml.Document {
	t.Helper()
	doc, err := wordml.Parse(data)
	require.NoError(t, err)
	return doc
}

func bookmarks(doc *wordml.Document) map[string]string {
	out := make(map[string]string)
	for _, b := range doc.Find(nil, selStarts) {
		name, _ := wordml.Attr(b, "name")
		id, _ := wordml.Attr(b, "id")
		out[name] = id
	}
	return out
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name  string
		kind  types.NoteKind
		body  []string
		want  []types.Reference
		marks map[string]string // bookmark name -> id after the rewrite
	}{
		{
			name: "incipit is the last three words",
			body: []string{docxtest.P(docxtest.R("The history of medicine is long."), docxtest.EndnoteRef("1"))},
			want: []types.Reference{
				{NoteID: "1", BookmarkName: "_IncipitNote1", BookmarkID: 1000, Incipit: "medicine is long"},
			},
			marks: map[string]string{"_IncipitNote1": "1000"},
		},
		{
			name: "marker first in paragraph gets placeholder",
			body: []string{
				docxtest.P(docxtest.R("Previous paragraph text")),
				docxtest.P(docxtest.EndnoteRef("1"), docxtest.R(" then text")),
			},
			want: []types.Reference{
				{NoteID: "1", BookmarkName: "_IncipitNote1", BookmarkID: 1000, Incipit: "[…]"},
			},
		},
		{
			name: "several markers in one paragraph look back to paragraph start",
			body: []string{docxtest.P(
				docxtest.R("a long sentence"), docxtest.EndnoteRef("1"),
				docxtest.R(" and short"), docxtest.EndnoteRef("2"),
			)},
			want: []types.Reference{
				{NoteID: "1", BookmarkName: "_IncipitNote1", BookmarkID: 1000, Incipit: "a long sentence"},
				{NoteID: "2", BookmarkName: "_IncipitNote2", BookmarkID: 1001, Incipit: "sentence and short"},
			},
		},
		{
			name: "ids start above existing bookmarks",
			body: []string{docxtest.P(
				`<w:bookmarkStart w:id="1500" w:name="_GoBack"/><w:bookmarkEnd w:id="1500"/>`,
				docxtest.R("Text"), docxtest.EndnoteRef("7"),
			)},
			want: []types.Reference{
				{NoteID: "7", BookmarkName: "_IncipitNote7", BookmarkID: 1501, Incipit: "Text"},
			},
			marks: map[string]string{"_GoBack": "1500", "_IncipitNote7": "1501"},
		},
		{
			name: "low existing ids do not move the base",
			body: []string{docxtest.P(
				`<w:bookmarkStart w:id="0" w:name="intro"/><w:bookmarkEnd w:id="0"/>`,
				docxtest.R("Text"), docxtest.EndnoteRef("1"),
			)},
			want: []types.Reference{
				{NoteID: "1", BookmarkName: "_IncipitNote1", BookmarkID: 1000, Incipit: "Text"},
			},
		},
		{
			name: "footnote markers",
			kind: types.KindFootnotes,
			body: []string{docxtest.P(docxtest.R("Footnoted here"), docxtest.FootnoteRef("2"), docxtest.EndnoteRef("9"))},
			want: []types.Reference{
				{NoteID: "2", BookmarkName: "_IncipitNote2", BookmarkID: 1000, Incipit: "Footnoted here"},
			},
		},
		{
			name: "marker sharing a run with text",
			body: []string{docxtest.P(`<w:r><w:t>Inline word</w:t><w:endnoteReference w:id="3"/></w:r>`)},
			want: []types.Reference{
				{NoteID: "3", BookmarkName: "_IncipitNote3", BookmarkID: 1000, Incipit: "Inline word"},
			},
		},
		{
			name: "text after a marker in the same run feeds later incipits",
			body: []string{docxtest.P(
				`<w:r><w:t>alpha</w:t><w:endnoteReference w:id="1"/><w:t xml:space="preserve"> beta gamma</w:t></w:r>`,
				docxtest.EndnoteRef("2"),
			)},
			want: []types.Reference{
				{NoteID: "1", BookmarkName: "_IncipitNote1", BookmarkID: 1000, Incipit: "alpha"},
				{NoteID: "2", BookmarkName: "_IncipitNote2", BookmarkID: 1001, Incipit: "alpha beta gamma"},
			},
		},
		{
			name: "two markers in one run",
			body: []string{docxtest.P(
				docxtest.R("Text here"),
				`<w:r><w:endnoteReference w:id="1"/><w:endnoteReference w:id="2"/></w:r>`,
			)},
			want: []types.Reference{
				{NoteID: "1", BookmarkName: "_IncipitNote1", BookmarkID: 1000, Incipit: "Text here"},
				{NoteID: "2", BookmarkName: "_IncipitNote2", BookmarkID: 1001, Incipit: "Text here"},
			},
			marks: map[string]string{"_IncipitNote1": "1000", "_IncipitNote2": "1001"},
		},
		{
			name: "tabs and breaks separate words",
			body: []string{docxtest.P(`<w:r><w:t>one</w:t><w:tab/><w:t>two</w:t><w:br/><w:t>three four</w:t></w:r>`, docxtest.EndnoteRef("1"))},
			want: []types.Reference{
				{NoteID: "1", BookmarkName: "_IncipitNote1", BookmarkID: 1000, Incipit: "two three four"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, docxtest.Document(tt.body...))
			res, err := Rewrite(doc, Options{Kind: tt.kind})
			require.NoError(t, err)

			var got []types.Reference
			for _, m := range res.Markers {
				got = append(got, m.Reference)
			}
			assert.Equal(t, tt.want, got)
			assert.Len(t, res.References, len(tt.want))
			assert.Len(t, doc.Find(nil, selStarts), len(doc.Find(nil, selEnds)))
			if tt.marks != nil {
				assert.Equal(t, tt.marks, bookmarks(doc))
			}
			if tt.kind != types.KindFootnotes {
				assert.Empty(t, doc.Find(nil, selEndnoteRef), "every endnote marker is replaced")
			}
		})
	}
}

func TestRewriteKeepsRunText(t *testing.T) {
	doc := parse(t, docxtest.Document(docxtest.P(`<w:r><w:t>Inline word</w:t><w:endnoteReference w:id="3"/></w:r>`)))
	_, err := Rewrite(doc, Options{})
	require.NoError(t, err)

	run := doc.FindOne(nil, wordml.Compile("//w:r"))
	require.NotNil(t, run)
	assert.Equal(t, "Inline word", run.InnerText())
	assert.True(t, wordml.Is(run.NextSibling, "bookmarkStart"))
	assert.True(t, wordml.Is(run.NextSibling.NextSibling, "bookmarkEnd"))
}

func TestRewriteSplitsRunAtMarker(t *testing.T) {
	doc := parse(t, docxtest.Document(docxtest.P(
		`<w:r><w:rPr><w:i/></w:rPr><w:t>alpha</w:t><w:endnoteReference w:id="1"/><w:t xml:space="preserve"> beta</w:t></w:r>`,
	)))
	_, err := Rewrite(doc, Options{})
	require.NoError(t, err)

	p := doc.FindOne(nil, wordml.Compile("//w:p"))
	require.NotNil(t, p)
	var kids []*xmlquery.Node
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, c)
	}
	require.Len(t, kids, 4)
	assert.True(t, wordml.Is(kids[0], "r"))
	assert.Equal(t, "alpha", kids[0].InnerText())
	assert.True(t, wordml.Is(kids[1], "bookmarkStart"))
	assert.True(t, wordml.Is(kids[2], "bookmarkEnd"))
	assert.True(t, wordml.Is(kids[3], "r"))
	assert.Equal(t, " beta", kids[3].InnerText())
	require.True(t, wordml.Is(kids[3].FirstChild, "rPr"), "the split run keeps its properties")
	assert.True(t, wordml.Is(kids[3].FirstChild.FirstChild, "i"))

	reparsed, err := wordml.Parse(doc.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "alpha beta", reparsed.FindOne(nil, wordml.Compile("//w:p")).InnerText())
}

func TestRewriteReplacesMarkerRun(t *testing.T) {
	doc := parse(t, docxtest.Document(docxtest.P(docxtest.R("Words"), docxtest.EndnoteRef("1"))))
	_, err := Rewrite(doc, Options{})
	require.NoError(t, err)

	p := doc.FindOne(nil, wordml.Compile("//w:p"))
	require.NotNil(t, p)
	var kids []string
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, c.Data)
	}
	assert.Equal(t, []string{"r", "bookmarkStart", "bookmarkEnd"}, kids)
}

func TestRewriteDuplicateReference(t *testing.T) {
	doc := parse(t, docxtest.Document(
		docxtest.P(docxtest.R("first mention"), docxtest.EndnoteRef("1")),
		docxtest.P(docxtest.R("second mention"), docxtest.EndnoteRef("1")),
	))
	res, err := Rewrite(doc, Options{})
	require.NoError(t, err)

	require.Len(t, res.Markers, 2)
	assert.False(t, res.Markers[0].Duplicate)
	assert.True(t, res.Markers[1].Duplicate)
	assert.Equal(t, "_IncipitNote1_2", res.Markers[1].Reference.BookmarkName)

	require.Len(t, res.References, 1)
	assert.Equal(t, "first mention", res.References["1"].Incipit)
	assert.Equal(t, map[string]string{"_IncipitNote1": "1000", "_IncipitNote1_2": "1001"}, bookmarks(doc))
}

func TestRewriteErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr []error
	}{
		{
			name:    "already converted",
			body:    docxtest.P(`<w:bookmarkStart w:id="1000" w:name="_IncipitNote1"/>`, docxtest.R("x"), docxtest.EndnoteRef("1")),
			wantErr: []error{types.ErrAlreadyConverted, types.ErrMalformedContent},
		},
		{
			name:    "marker without id",
			body:    docxtest.P(docxtest.R("x"), `<w:r><w:endnoteReference/></w:r>`),
			wantErr: []error{types.ErrMalformedContent},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rewrite(parse(t, docxtest.Document(tt.body)), Options{})
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestRewriteCustomOptions(t *testing.T) {
	doc := parse(t, docxtest.Document(docxtest.P(docxtest.R("one two three four five"), docxtest.EndnoteRef("1"))))
	res, err := Rewrite(doc, Options{BookmarkPrefix: "_N", BaseBookmarkID: 50, IncipitWords: 2})
	require.NoError(t, err)

	assert.Equal(t, types.Reference{NoteID: "1", BookmarkName: "_N1", BookmarkID: 50, Incipit: "four five"}, res.References["1"])
}

func TestIncipit(t *testing.T) {
	tests := []struct {
		text string
		n    int
		want string
	}{
		{"The history of medicine is long", 3, "medicine is long"},
		{"short", 3, "short"},
		{"one two", 5, "one two"},
		{"end of the sentence.", 3, "of the sentence"},
		{"Wait...", 3, "Wait"},
		{"what?!", 1, "what"},
		{"trailing  space  ", 3, "trailing space"},
		{"", 3, "[…]"},
		{"   ", 3, "[…]"},
		{"...", 3, "[…]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Incipit(tt.text, tt.n, "[…]"), "Incipit(%q, %d)", tt.text, tt.n)
	}
}
