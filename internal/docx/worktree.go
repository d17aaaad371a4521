// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"fmt"
	"os"

	"github.com/pdiddy/incipit/pkg/types"
)

// WorkTree is a transient directory holding one unpacked package. It is
// owned by a single conversion; Close removes it.
type WorkTree struct {
	dir string
}

// NewWorkTree creates a fresh, empty working tree. Callers defer Close
// immediately so the tree is removed on every exit path.
func NewWorkTree() (*WorkTree, error) {
	dir, err := os.MkdirTemp("", "incipit-*")
	if err != nil {
		return nil, fmt.Errorf("%w: creating working tree: %v", types.ErrPackaging, err)
	}
	return &WorkTree{dir: dir}, nil
}

// Dir returns the tree's root directory.
func (w *WorkTree) Dir() string { return w.dir }

// Close removes the tree and everything in it. It is safe to call twice.
func (w *WorkTree) Close() error {
	if w.dir == "" {
		return nil
	}
	err := os.RemoveAll(w.dir)
	w.dir = ""
	return err
}
