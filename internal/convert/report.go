// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/incipit/pkg/types"
)

// fillReport copies the pipeline outcome into report.
func fillReport(report *types.ConversionReport, o *Outcome) {
	report.Notes = len(o.Notes)
	report.References = len(o.Rewrite.References)
	report.Missing = 0
	report.Entries = report.Entries[:0]
	for _, e := range o.Entries {
		entry := types.ReportEntry{
			NoteID:   e.Note.ID,
			Citation: e.Note.Text,
			Missing:  e.Missing,
		}
		if e.Missing {
			report.Missing++
		} else {
			entry.Incipit = e.Reference.Incipit
			entry.Bookmark = e.Reference.BookmarkName
			entry.BookmarkID = e.Reference.BookmarkID
		}
		report.Entries = append(report.Entries, entry)
	}
}

// MarshalReport renders a report as YAML.
func MarshalReport(report *types.ConversionReport) ([]byte, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return data, nil
}

// WriteReport writes a report as YAML to path.
func WriteReport(path string, report *types.ConversionReport) error {
	data, err := MarshalReport(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
