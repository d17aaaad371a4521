// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the incipit conversion over whole packages: it
// unpacks a document into a working tree, transforms the main document,
// repacks the result, and reports per-document status.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/incipit/internal/docx"
	"github.com/pdiddy/incipit/pkg/types"
)

// Recorder receives the report of every conversion attempt. The history
// ledger implements it.
type Recorder interface {
	Record(ctx context.Context, report types.ConversionReport) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DefaultOutputPath derives the output path from the input path by
// appending suffix to the base name: thesis.docx -> thesis-incipit.docx.
func DefaultOutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

// ConvertDocument converts the package at input and writes the result to
// output (DefaultOutputPath when empty). The working tree is removed before
// it returns, whatever the outcome, and output is only written when every
// stage succeeded. The returned report is non-nil even on failure.
func ConvertDocument(cfg types.ConversionConfig, input, output string, w io.Writer) (*types.ConversionReport, error) {
	cfg = cfg.WithDefaults()
	if output == "" {
		output = DefaultOutputPath(input, cfg.OutputSuffix)
	}
	report := &types.ConversionReport{Input: input, Kind: cfg.Kind, Status: types.ConversionFailed}

	outcome, err := run(cfg, input, output, report)
	report.ConvertedAt = time.Now().UTC()
	if err != nil {
		report.Error = err.Error()
		return report, err
	}

	fillReport(report, outcome)
	report.Output = output
	report.Status = types.ConversionDone
	if digest, err := docx.Digest(output); err == nil {
		report.OutputDigest = digest
	}

	if cfg.Verbose {
		for _, m := range outcome.Rewrite.Markers {
			fmt.Fprintf(w, "  note %s -> %s (id %d): %q\n",
				m.Reference.NoteID, m.Reference.BookmarkName, m.Reference.BookmarkID, m.Reference.Incipit)
		}
	}
	return report, nil
}

// Inspect runs the pipeline on input without writing anything and returns
// the report a conversion would produce.
func Inspect(cfg types.ConversionConfig, input string) (*types.ConversionReport, error) {
	cfg = cfg.WithDefaults()
	report := &types.ConversionReport{Input: input, Kind: cfg.Kind, Status: types.ConversionFailed}

	outcome, err := run(cfg, input, "", report)
	report.ConvertedAt = time.Now().UTC()
	if err != nil {
		report.Error = err.Error()
		return report, err
	}
	fillReport(report, outcome)
	report.Status = types.ConversionNone
	return report, nil
}

// run unpacks input, transforms it, and repacks to output unless output is
// empty. The working tree lives only for the duration of the call.
func run(cfg types.ConversionConfig, input, output string, report *types.ConversionReport) (*Outcome, error) {
	if !cfg.Kind.Valid() {
		return nil, fmt.Errorf("unknown note kind %q", cfg.Kind)
	}
	if _, err := os.Stat(input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrInputNotFound, input)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrPackaging, err)
	}
	if digest, err := docx.Digest(input); err == nil {
		report.InputDigest = digest
	}

	wt, err := docx.NewWorkTree()
	if err != nil {
		return nil, err
	}
	defer wt.Close()

	manifest, err := docx.Unpack(input, wt.Dir())
	if err != nil {
		return nil, err
	}
	if !manifest.Has(docx.DocumentPart) {
		return nil, fmt.Errorf("%w: %s missing from package", types.ErrMalformedContent, docx.DocumentPart)
	}
	notesPart := cfg.Kind.PartName()
	if !manifest.Has(notesPart) {
		return nil, fmt.Errorf("%w: %s missing from package", types.ErrNotesAbsent, notesPart)
	}

	documentXML, err := docx.ReadPart(wt.Dir(), docx.DocumentPart)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrPackaging, docx.DocumentPart, err)
	}
	notesXML, err := docx.ReadPart(wt.Dir(), notesPart)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrPackaging, notesPart, err)
	}

	outcome, err := Transform(cfg, documentXML, notesXML)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return outcome, nil
	}

	if err := docx.WritePart(wt.Dir(), docx.DocumentPart, outcome.Document); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v", types.ErrPackaging, docx.DocumentPart, err)
	}
	if err := docx.Pack(wt.Dir(), manifest, output); err != nil {
		return nil, err
	}
	return outcome, nil
}

// ConvertBatch converts each input to its default output path, printing
// per-document status to w and returning a summary. Inputs whose output
// already exists are skipped unless overwrite is set. Cancellation is
// checked between documents, never inside one.
func ConvertBatch(ctx context.Context, cfg types.ConversionConfig, inputs []string, overwrite bool, rec Recorder, w io.Writer) BatchResult {
	cfg = cfg.WithDefaults()
	var result BatchResult
	for _, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		output := DefaultOutputPath(in, cfg.OutputSuffix)
		status, _ := ConvertOne(ctx, cfg, in, output, overwrite, rec, w)
		switch status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertOne converts a single document to output, prints its status line,
// and hands the report to rec when rec is non-nil. The report is nil when
// the document was skipped.
func ConvertOne(ctx context.Context, cfg types.ConversionConfig, input, output string, overwrite bool, rec Recorder, w io.Writer) (types.ConversionStatus, *types.ConversionReport) {
	base := filepath.Base(input)
	if !overwrite {
		if _, err := os.Stat(output); err == nil {
			fmt.Fprintf(w, "skipped: %s (%s already exists)\n", base, filepath.Base(output))
			return types.ConversionSkipped, nil
		}
	}

	report, err := ConvertDocument(cfg, input, output, w)
	if rec != nil {
		if rerr := rec.Record(ctx, *report); rerr != nil {
			fmt.Fprintf(w, "warning: recording %s: %v\n", base, rerr)
		}
	}
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed, report
	}

	fmt.Fprintf(w, "converted: %s -> %s (%d notes, %d references, %d missing)\n",
		base, filepath.Base(report.Output), report.Notes, report.References, report.Missing)
	return types.ConversionDone, report
}
