// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Sentinel errors for conversion failures. Stages wrap them with context
// using fmt.Errorf("...: %w", err); callers test with errors.Is.
var (
	// ErrInputNotFound indicates the source container does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrNotesAbsent indicates the package has no notes part or no notes in it.
	ErrNotesAbsent = errors.New("no notes present")

	// ErrMalformedContent indicates a structured-text part failed to parse
	// or lacks the shape the transformation depends on.
	ErrMalformedContent = errors.New("malformed content")

	// ErrAnchorMissing indicates no insertion point exists in the document body.
	ErrAnchorMissing = errors.New("structural anchor missing")

	// ErrPackaging indicates the archive could not be read or written.
	ErrPackaging = errors.New("packaging failure")

	// ErrAlreadyConverted indicates the document already carries incipit
	// bookmarks from an earlier run. It is always reported together with
	// ErrMalformedContent.
	ErrAlreadyConverted = errors.New("document already converted")
)
