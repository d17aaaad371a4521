// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notes reads the endnotes or footnotes part of a package and
// returns the citation text of every real note, keyed by note id.
package notes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/pdiddy/incipit/internal/wordml"
	"github.com/pdiddy/incipit/pkg/types"
)

var (
	selEndnotes  = wordml.Compile("//w:endnote")
	selFootnotes = wordml.Compile("//w:footnote")
)

// reservedIDs are the separator notes every notes part carries.
var reservedIDs = map[string]bool{"-1": true, "0": true}

// separatorTypes are w:type values of notes that hold layout, not content.
var separatorTypes = map[string]bool{
	"separator":             true,
	"continuationSeparator": true,
	"continuationNotice":    true,
}

// numberingPrefixRe matches the leading auto-numbering artifact, e.g. "3 "
// in "3 Smith, History, 1999". Only a whole number followed by whitespace
// (or nothing) counts, so "19th-Century" and "1984." stay intact.
var numberingPrefixRe = regexp.MustCompile(`^\s*\d+(\s+|$)`)

// Extract returns every non-reserved note of the given kind in part.
// A note without a numeric w:id, or a repeated id, is malformed content.
// A part with no real notes yields types.ErrNotesAbsent.
func Extract(part *wordml.Document, kind types.NoteKind) (types.NoteSet, error) {
	sel := selEndnotes
	if kind == types.KindFootnotes {
		sel = selFootnotes
	}

	set := make(types.NoteSet)
	for _, el := range part.Find(nil, sel) {
		id, ok := wordml.Attr(el, "id")
		if !ok {
			return nil, fmt.Errorf("%w: %s without id", types.ErrMalformedContent, kind.NoteElement())
		}
		if _, err := strconv.Atoi(id); err != nil {
			return nil, fmt.Errorf("%w: %s id %q is not an integer", types.ErrMalformedContent, kind.NoteElement(), id)
		}
		if reservedIDs[id] {
			continue
		}
		if t, _ := wordml.Attr(el, "type"); separatorTypes[t] {
			continue
		}
		if _, dup := set[id]; dup {
			return nil, fmt.Errorf("%w: duplicate %s id %s", types.ErrMalformedContent, kind.NoteElement(), id)
		}
		set[id] = types.Note{ID: id, Text: Clean(noteText(el))}
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%w: %s contains no notes", types.ErrNotesAbsent, kind.PartName())
	}
	return set, nil
}

// noteText concatenates the w:t content of a note in document order.
// Tabs and paragraph breaks count as a space.
func noteText(n *xmlquery.Node) string {
	var b strings.Builder
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case wordml.Is(c, "t"):
				b.WriteString(c.InnerText())
			case wordml.Is(c, "tab"):
				b.WriteByte(' ')
			case wordml.Is(c, "p") && b.Len() > 0:
				b.WriteByte(' ')
				walk(c)
			case c.Type == xmlquery.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// Clean strips the leading numbering artifact and surrounding whitespace.
func Clean(text string) string {
	return strings.TrimSpace(numberingPrefixRe.ReplaceAllString(text, ""))
}
