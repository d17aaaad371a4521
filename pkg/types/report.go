// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one document.
type ConversionStatus string

const (
	ConversionNone    ConversionStatus = "none"
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// ReportEntry describes one note in the generated notes section.
type ReportEntry struct {
	// NoteID identifies the note.
	NoteID string `json:"note_id" yaml:"note_id"`

	// Incipit is the snippet shown before the citation. Empty when missing.
	Incipit string `json:"incipit,omitempty" yaml:"incipit,omitempty"`

	// Bookmark is the name the page field points at. Empty when missing.
	Bookmark string `json:"bookmark,omitempty" yaml:"bookmark,omitempty"`

	// BookmarkID is the synthetic bookmark id. Zero when missing.
	BookmarkID int `json:"bookmark_id,omitempty" yaml:"bookmark_id,omitempty"`

	// Citation is the cleaned note text.
	Citation string `json:"citation" yaml:"citation"`

	// Missing is true when no marker for the note was found in the body.
	Missing bool `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// ConversionReport summarizes a conversion (or a dry run) of one document.
type ConversionReport struct {
	// Input is the source container path.
	Input string `json:"input" yaml:"input"`

	// Output is the written container path. Empty for dry runs.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// InputDigest is the blake3 hex digest of the input container.
	InputDigest string `json:"input_digest" yaml:"input_digest"`

	// OutputDigest is the blake3 hex digest of the output container.
	OutputDigest string `json:"output_digest,omitempty" yaml:"output_digest,omitempty"`

	// Kind is the note apparatus that was rewritten.
	Kind NoteKind `json:"kind" yaml:"kind"`

	// Notes is the number of notes extracted.
	Notes int `json:"notes" yaml:"notes"`

	// References is the number of distinct notes with at least one marker.
	// A note cited twice counts once; Notes equals References plus Missing.
	References int `json:"references" yaml:"references"`

	// Missing is the number of notes with no marker in the body.
	Missing int `json:"missing" yaml:"missing"`

	// Entries lists the rendered notes in output order.
	Entries []ReportEntry `json:"entries" yaml:"entries"`

	// Status is the conversion outcome.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Error records the failure message. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// ConvertedAt is when the conversion finished.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
