// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts every .docx matching pattern,
// skipping outputs that already exist. Example: mage convert 'drafts/*.docx'.
func Convert(pattern string) error {
	mg.Deps(Build)

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	var inputs []string
	for _, m := range matches {
		if filepath.Ext(m) == ".docx" {
			inputs = append(inputs, m)
		}
	}
	if len(inputs) == 0 {
		fmt.Printf("[convert] no .docx files match %s\n", pattern)
		return nil
	}
	args := append([]string{"convert"}, inputs...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
