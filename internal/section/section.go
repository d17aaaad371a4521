// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package section builds the incipit notes section: a page break, a
// heading, and one paragraph per note ordered by numeric note id. Each
// referenced note carries a PAGEREF field bound to its bookmark, so the page
// number stays live; the consuming editor resolves it when fields update.
package section

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/pdiddy/incipit/internal/wordml"
	"github.com/pdiddy/incipit/pkg/types"
)

// Block is the generated content: body-level paragraphs in output order.
type Block []*xmlquery.Node

// Options controls the rendering of the section.
type Options struct {
	Heading         string
	HeadingStyle    string
	PagePrefix      string
	PagePlaceholder string
	MissingMarker   string
}

// OptionsFrom derives section options from a conversion config.
func OptionsFrom(cfg types.ConversionConfig) Options {
	cfg = cfg.WithDefaults()
	return Options{
		Heading:         cfg.Section.Heading,
		HeadingStyle:    cfg.Section.HeadingStyle,
		PagePrefix:      cfg.Section.PagePrefix,
		PagePlaceholder: cfg.Section.PagePlaceholder,
		MissingMarker:   cfg.Section.MissingMarker,
	}
}

// Entry pairs a note with its reference, if any, in output order.
type Entry struct {
	Note      types.Note
	Reference types.Reference
	Missing   bool
}

// Entries orders notes by numeric id and attaches their references.
func Entries(notes types.NoteSet, refs types.ReferenceSet) []Entry {
	ids := notes.SortedIDs()
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		ref, ok := refs[id]
		out = append(out, Entry{Note: notes[id], Reference: ref, Missing: !ok})
	}
	return out
}

// Build creates the notes section for doc. The returned nodes are detached;
// the splicer inserts them into the body.
func Build(doc *wordml.Document, notes types.NoteSet, refs types.ReferenceSet, opts Options) Block {
	block := Block{pageBreak(doc), heading(doc, opts)}
	for _, e := range Entries(notes, refs) {
		if e.Missing {
			block = append(block, missingEntry(doc, e.Note, opts))
			continue
		}
		block = append(block, entry(doc, e.Note, e.Reference, opts))
	}
	return block
}

// Instruction returns the field instruction that looks up a bookmark's page.
func Instruction(bookmark string) string {
	return fmt.Sprintf(` PAGEREF %s \h `, bookmark)
}

func pageBreak(doc *wordml.Document) *xmlquery.Node {
	p := doc.Element("p")
	r := doc.Element("r")
	doc.Append(r, doc.Element("br", wordml.A("type", "page")))
	doc.Append(p, r)
	return p
}

func heading(doc *wordml.Document, opts Options) *xmlquery.Node {
	p := doc.Element("p")
	if opts.HeadingStyle != "" {
		pPr := doc.Element("pPr")
		doc.Append(pPr, doc.Element("pStyle", wordml.A("val", opts.HeadingStyle)))
		doc.Append(p, pPr)
	}
	doc.Append(p, textRun(doc, opts.Heading, false))
	return p
}

// entry renders "<prefix><PAGEREF> <incipit in italics>: <citation>".
func entry(doc *wordml.Document, note types.Note, ref types.Reference, opts Options) *xmlquery.Node {
	p := doc.Element("p")
	if opts.PagePrefix != "" {
		doc.Append(p, textRun(doc, opts.PagePrefix, false))
	}

	field := doc.Element("fldSimple", wordml.A("instr", Instruction(ref.BookmarkName)))
	doc.Append(field, textRun(doc, opts.PagePlaceholder, false))
	doc.Append(p, field)

	doc.Append(p,
		textRun(doc, " ", false),
		textRun(doc, ref.Incipit, true),
		textRun(doc, ": "+note.Text, false),
	)
	return p
}

// missingEntry renders "<marker> <citation>" for a note nothing references.
func missingEntry(doc *wordml.Document, note types.Note, opts Options) *xmlquery.Node {
	p := doc.Element("p")
	doc.Append(p, textRun(doc, strings.TrimSpace(opts.MissingMarker+" "+note.Text), false))
	return p
}

func textRun(doc *wordml.Document, s string, italic bool) *xmlquery.Node {
	r := doc.Element("r")
	if italic {
		rPr := doc.Element("rPr")
		doc.Append(rPr, doc.Element("i"))
		doc.Append(r, rPr)
	}
	doc.Append(r, doc.Text(s))
	return r
}

// Render serializes a block as a markup fragment.
func Render(block Block) string {
	var b strings.Builder
	for _, n := range block {
		b.WriteString(n.OutputXMLWithOptions(xmlquery.WithOutputSelf(), xmlquery.WithEmptyTagSupport()))
	}
	return b.String()
}
