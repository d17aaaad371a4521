// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"

	"github.com/pdiddy/incipit/internal/notes"
	"github.com/pdiddy/incipit/internal/rewrite"
	"github.com/pdiddy/incipit/internal/section"
	"github.com/pdiddy/incipit/internal/splice"
	"github.com/pdiddy/incipit/internal/wordml"
	"github.com/pdiddy/incipit/pkg/types"
)

// Outcome is the result of transforming the two parts in memory.
type Outcome struct {
	// Document is the serialized main document with the notes section spliced in.
	Document []byte

	Notes   types.NoteSet
	Rewrite *rewrite.Result
	Entries []section.Entry
}

// Transform runs the core pipeline over the raw main document and notes
// parts: extract notes, rewrite markers, build the notes section, splice it
// into the body, serialize. Each stage finishes before the next starts and
// the first failure aborts the whole transformation.
func Transform(cfg types.ConversionConfig, documentXML, notesXML []byte) (*Outcome, error) {
	cfg = cfg.WithDefaults()

	notesPart, err := wordml.Parse(notesXML)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cfg.Kind.PartName(), err)
	}
	noteSet, err := notes.Extract(notesPart, cfg.Kind)
	if err != nil {
		return nil, fmt.Errorf("extracting notes: %w", err)
	}

	doc, err := wordml.Parse(documentXML)
	if err != nil {
		return nil, fmt.Errorf("parsing main document: %w", err)
	}
	rw, err := rewrite.Rewrite(doc, rewrite.OptionsFrom(cfg))
	if err != nil {
		return nil, fmt.Errorf("rewriting references: %w", err)
	}

	block := section.Build(doc, noteSet, rw.References, section.OptionsFrom(cfg))
	if err := splice.Splice(doc, block); err != nil {
		return nil, fmt.Errorf("inserting notes section: %w", err)
	}

	return &Outcome{
		Document: doc.Bytes(),
		Notes:    noteSet,
		Rewrite:  rw,
		Entries:  section.Entries(noteSet, rw.References),
	}, nil
}
