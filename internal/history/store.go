// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of conversions: what was converted,
// into what, with which digests and counts, and whether it succeeded.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/incipit/pkg/types"
)

const defaultLimit = 20

// Entry is one recorded conversion attempt.
type Entry struct {
	ID           int64                  `json:"id" yaml:"id"`
	Input        string                 `json:"input" yaml:"input"`
	Output       string                 `json:"output,omitempty" yaml:"output,omitempty"`
	InputDigest  string                 `json:"input_digest,omitempty" yaml:"input_digest,omitempty"`
	OutputDigest string                 `json:"output_digest,omitempty" yaml:"output_digest,omitempty"`
	Kind         types.NoteKind         `json:"kind" yaml:"kind"`
	Notes        int                    `json:"notes" yaml:"notes"`
	References   int                    `json:"references" yaml:"references"`
	Missing      int                    `json:"missing" yaml:"missing"`
	Status       types.ConversionStatus `json:"status" yaml:"status"`
	Error        string                 `json:"error,omitempty" yaml:"error,omitempty"`
	ConvertedAt  time.Time              `json:"converted_at" yaml:"converted_at"`
}

// Store manages the ledger database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the ledger at path, creating parent
// directories and the schema as needed.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			output TEXT,
			input_digest TEXT,
			output_digest TEXT,
			kind TEXT NOT NULL,
			notes INTEGER NOT NULL DEFAULT 0,
			refs INTEGER NOT NULL DEFAULT 0,
			missing INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_input ON conversions(input)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends a conversion report to the ledger.
func (s *Store) Record(ctx context.Context, r types.ConversionReport) error {
	at := r.ConvertedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (input, output, input_digest, output_digest, kind, notes, refs, missing, status, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Input, r.Output, r.InputDigest, r.OutputDigest, string(r.Kind),
		r.Notes, r.References, r.Missing, string(r.Status), r.Error,
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", r.Input, err)
	}
	return nil
}

// List returns the most recent entries, newest first. A limit of zero or
// less uses the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, output, input_digest, output_digest, kind, notes, refs, missing, status, error, converted_at
		 FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                                   Entry
			output, inDigest, outDigest, errMsg sql.NullString
			kind, status, at                    string
		)
		if err := rows.Scan(&e.ID, &e.Input, &output, &inDigest, &outDigest, &kind,
			&e.Notes, &e.References, &e.Missing, &status, &errMsg, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Output = output.String
		e.InputDigest = inDigest.String
		e.OutputDigest = outDigest.String
		e.Error = errMsg.String
		e.Kind = types.NoteKind(kind)
		e.Status = types.ConversionStatus(status)
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.ConvertedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
