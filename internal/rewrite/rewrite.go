// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rewrite replaces note-reference markers in the main document with
// named bookmark pairs and records, for each marker, the incipit: the last
// few words of the paragraph text that precedes it.
//
// The text window is the current paragraph only. A marker at the start of a
// paragraph gets the placeholder even when the previous paragraph ends right
// before it, and every marker in a paragraph looks back to the paragraph
// start rather than to the previous marker.
package rewrite

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/antchfx/xmlquery"

	"github.com/pdiddy/incipit/internal/wordml"
	"github.com/pdiddy/incipit/pkg/types"
)

var (
	selParagraphs     = wordml.Compile("//w:p")
	selRuns           = wordml.Compile(".//w:r")
	selBookmarkStarts = wordml.Compile("//w:bookmarkStart")
)

// Options controls a rewrite. Zero fields take the types defaults.
type Options struct {
	Kind           types.NoteKind
	BookmarkPrefix string
	BaseBookmarkID int
	IncipitWords   int
	Placeholder    string
}

// OptionsFrom derives rewrite options from a conversion config.
func OptionsFrom(cfg types.ConversionConfig) Options {
	cfg = cfg.WithDefaults()
	return Options{
		Kind:           cfg.Kind,
		BookmarkPrefix: cfg.Bookmarks.Prefix,
		BaseBookmarkID: cfg.Bookmarks.BaseID,
		IncipitWords:   cfg.Incipit.Words,
		Placeholder:    cfg.Incipit.Placeholder,
	}
}

func (o Options) withDefaults() Options {
	if o.Kind == "" {
		o.Kind = types.KindEndnotes
	}
	if o.BookmarkPrefix == "" {
		o.BookmarkPrefix = types.DefaultBookmarkPrefix
	}
	if o.BaseBookmarkID <= 0 {
		o.BaseBookmarkID = types.DefaultBaseBookmarkID
	}
	if o.IncipitWords <= 0 {
		o.IncipitWords = types.DefaultIncipitWords
	}
	if o.Placeholder == "" {
		o.Placeholder = types.DefaultPlaceholder
	}
	return o
}

// Marker is one rewritten marker in discovery order. Notes referenced more
// than once produce several Markers but a single Reference.
type Marker struct {
	Reference types.Reference
	Duplicate bool
}

// Result holds the outcome of a rewrite.
type Result struct {
	// References maps note id to the first reference found for it.
	References types.ReferenceSet

	// Markers lists every rewritten marker in discovery order.
	Markers []Marker
}

// Rewrite walks every paragraph of doc, replacing each note-reference run
// with a bookmark pair. doc is mutated in place.
func Rewrite(doc *wordml.Document, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	counter, names, err := seed(doc, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{References: make(types.ReferenceSet)}
	for _, p := range doc.Find(nil, selParagraphs) {
		var text strings.Builder
		for _, r := range doc.Find(p, selRuns) {
			if wordml.Ancestor(r, "p") != p {
				continue
			}
			runText, hits := scanRun(r, opts.Kind.ReferenceElement())
			for _, h := range hits {
				noteID, ok := wordml.Attr(h.marker, "id")
				if !ok {
					return nil, fmt.Errorf("%w: %s without id", types.ErrMalformedContent, opts.Kind.ReferenceElement())
				}

				var id int
				id, counter = counter.Next()
				ref := types.Reference{
					NoteID:       noteID,
					BookmarkName: uniqueName(names, opts.BookmarkPrefix+noteID),
					BookmarkID:   id,
					Incipit:      Incipit(text.String()+h.before, opts.IncipitWords, opts.Placeholder),
				}
				replaceMarker(doc, h.marker, ref)

				_, dup := res.References[noteID]
				if !dup {
					res.References[noteID] = ref
				}
				res.Markers = append(res.Markers, Marker{Reference: ref, Duplicate: dup})
			}
			text.WriteString(runText)
		}
	}
	return res, nil
}

// seed collects existing bookmark names and returns a counter above every
// existing bookmark id. A bookmark already carrying the prefix means the
// document was converted before.
func seed(doc *wordml.Document, opts Options) (BookmarkCounter, map[string]bool, error) {
	maxID := -1
	names := make(map[string]bool)
	for _, b := range doc.Find(nil, selBookmarkStarts) {
		if name, ok := wordml.Attr(b, "name"); ok {
			if strings.HasPrefix(name, opts.BookmarkPrefix) {
				return BookmarkCounter{}, nil, fmt.Errorf("%w: %w: bookmark %s exists",
					types.ErrMalformedContent, types.ErrAlreadyConverted, name)
			}
			names[name] = true
		}
		if v, ok := wordml.Attr(b, "id"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > maxID {
				maxID = n
			}
		}
	}
	return NewBookmarkCounter(opts.BaseBookmarkID, maxID), names, nil
}

// uniqueName returns name, or name with a numeric suffix when it is taken,
// and marks the result as taken.
func uniqueName(taken map[string]bool, name string) string {
	candidate := name
	for i := 2; taken[candidate]; i++ {
		candidate = name + "_" + strconv.Itoa(i)
	}
	taken[candidate] = true
	return candidate
}

// hit is a marker found in a run, with the run text that precedes it.
type hit struct {
	marker *xmlquery.Node
	before string
}

// scanRun returns the visible text of run r and every marker element named
// refElement in it, in document order. Nested runs and text-box paragraphs
// are skipped; they are scanned on their own.
func scanRun(r *xmlquery.Node, refElement string) (string, []hit) {
	var b strings.Builder
	var hits []hit
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case wordml.Is(c, refElement):
				hits = append(hits, hit{marker: c, before: b.String()})
			case wordml.Is(c, "t"):
				b.WriteString(c.InnerText())
			case wordml.Is(c, "tab"), wordml.Is(c, "br"), wordml.Is(c, "cr"):
				b.WriteByte(' ')
			case wordml.Is(c, "r"), wordml.Is(c, "p"), wordml.Is(c, "txbxContent"):
			case c.Type == xmlquery.ElementNode:
				walk(c)
			}
		}
	}
	walk(r)
	return b.String(), hits
}

// replaceMarker swaps the marker for a bookmark pair at the marker's place.
// The run holding it is split there: content after the marker moves to a
// new run with a copy of the run properties. A run left with nothing but
// properties is dropped.
func replaceMarker(doc *wordml.Document, marker *xmlquery.Node, ref types.Reference) {
	run := wordml.Ancestor(marker, "r")
	top := marker
	for top.Parent != run {
		top = top.Parent
	}

	tail := doc.Element("r")
	if rPr := firstChild(run, "rPr"); rPr != nil {
		doc.Append(tail, doc.Clone(rPr))
	}
	for c := top.NextSibling; c != nil; {
		next := c.NextSibling
		doc.Remove(c)
		doc.Append(tail, c)
		c = next
	}
	doc.Remove(marker)

	id := strconv.Itoa(ref.BookmarkID)
	nodes := []*xmlquery.Node{
		doc.Element("bookmarkStart", wordml.A("id", id), wordml.A("name", ref.BookmarkName)),
		doc.Element("bookmarkEnd", wordml.A("id", id)),
	}
	if hasContent(tail) {
		nodes = append(nodes, tail)
	}
	if hasContent(run) {
		doc.InsertAfter(run, nodes...)
		return
	}
	doc.Replace(run, nodes...)
}

func firstChild(n *xmlquery.Node, local string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if wordml.Is(c, local) {
			return c
		}
	}
	return nil
}

// hasContent reports whether a run holds anything besides run properties.
func hasContent(run *xmlquery.Node) bool {
	for c := run.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && !wordml.Is(c, "rPr") {
			return true
		}
	}
	return false
}

// sentencePunct is stripped from the end of an incipit.
const sentencePunct = ".,;:!?…"

// Incipit returns the last words (at most n) of text, trailing sentence
// punctuation removed, or placeholder when text has no words.
func Incipit(text string, n int, placeholder string) string {
	fields := strings.Fields(text)
	if len(fields) > n {
		fields = fields[len(fields)-n:]
	}
	s := strings.Join(fields, " ")
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return strings.ContainsRune(sentencePunct, r) || unicode.IsSpace(r)
	})
	if s == "" {
		return placeholder
	}
	return s
}
