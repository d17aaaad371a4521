// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// Export writes every recorded conversion, newest first, to path. The
// format follows the extension: .json writes JSON, anything else YAML.
func (s *Store) Export(ctx context.Context, path string) (int, error) {
	entries, err := s.List(ctx, exportLimit)
	if err != nil {
		return 0, fmt.Errorf("querying for export: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(entries, "", "  ")
	default:
		data, err = yaml.Marshal(entries)
	}
	if err != nil {
		return 0, fmt.Errorf("marshaling export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing export %s: %w", path, err)
	}
	return len(entries), nil
}
