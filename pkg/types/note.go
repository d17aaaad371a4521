// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the incipit pipeline:
// notes and references, the conversion configuration, conversion reports,
// and the sentinel errors every stage wraps.
package types

import (
	"sort"
	"strconv"
)

// NoteKind selects which note apparatus a conversion rewrites.
type NoteKind string

const (
	KindEndnotes  NoteKind = "endnotes"
	KindFootnotes NoteKind = "footnotes"
)

// Valid reports whether k names a supported note kind.
func (k NoteKind) Valid() bool {
	return k == KindEndnotes || k == KindFootnotes
}

// PartName returns the package path of the notes part for this kind.
func (k NoteKind) PartName() string {
	if k == KindFootnotes {
		return "word/footnotes.xml"
	}
	return "word/endnotes.xml"
}

// NoteElement returns the local name of a single note element
// ("endnote" or "footnote").
func (k NoteKind) NoteElement() string {
	if k == KindFootnotes {
		return "footnote"
	}
	return "endnote"
}

// ReferenceElement returns the local name of the in-text marker element.
func (k NoteKind) ReferenceElement() string {
	return k.NoteElement() + "Reference"
}

// Note is one endnote or footnote with its cleaned citation text.
// Reserved separator ids ("-1" and "0") never appear as Notes.
type Note struct {
	// ID is the note identifier as it appears in the w:id attribute.
	ID string `json:"id" yaml:"id"`

	// Text is the concatenated run text with numbering artifacts stripped.
	Text string `json:"text" yaml:"text"`
}

// Reference records where a note marker sat in the body and what replaced it.
type Reference struct {
	// NoteID links the reference to its Note.
	NoteID string `json:"note_id" yaml:"note_id"`

	// BookmarkName is derived from NoteID and names the bookmark pair that
	// replaced the marker.
	BookmarkName string `json:"bookmark_name" yaml:"bookmark_name"`

	// BookmarkID is the synthetic w:id of the bookmark pair.
	BookmarkID int `json:"bookmark_id" yaml:"bookmark_id"`

	// Incipit is the short snippet of text preceding the marker.
	Incipit string `json:"incipit" yaml:"incipit"`
}

// NoteSet maps note id to Note.
type NoteSet map[string]Note

// SortedIDs returns the note ids in strictly ascending numeric order.
// Ids that do not parse as integers sort after numeric ones, lexically.
func (s NoteSet) SortedIDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return ids[i] < ids[j]
	})
	return ids
}

// ReferenceSet maps note id to the Reference recorded for its marker.
type ReferenceSet map[string]Reference
