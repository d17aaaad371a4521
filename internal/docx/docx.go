// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx unpacks a WordprocessingML package into a working tree and
// repacks the tree into a new package. The conversion pipeline treats both
// operations as opaque container reads and writes.
package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/incipit/pkg/types"
)

const (
	// DocumentPart is the main content part.
	DocumentPart = "word/document.xml"
)

// Entry records one archive member so it can be repacked in its original
// position with its original compression method.
type Entry struct {
	Name     string
	Method   uint16
	Modified time.Time
	IsDir    bool
}

// Manifest lists the members of an unpacked package in archive order.
type Manifest struct {
	Entries []Entry
}

// Has reports whether the package contains the named part.
func (m *Manifest) Has(name string) bool {
	for _, e := range m.Entries {
		if e.Name == name && !e.IsDir {
			return true
		}
	}
	return false
}

// Unpack extracts every member of the package at src into dir. Members whose
// names would escape dir are rejected.
func Unpack(src, dir string) (*Manifest, error) {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrInputNotFound, src)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrPackaging, err)
	}

	zr, err := zip.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrPackaging, src, err)
	}
	defer zr.Close()

	m := &Manifest{}
	for _, f := range zr.File {
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
			return nil, fmt.Errorf("%w: member %q escapes the working tree", types.ErrPackaging, f.Name)
		}
		entry := Entry{
			Name:     f.Name,
			Method:   f.Method,
			Modified: f.Modified,
			IsDir:    f.FileInfo().IsDir(),
		}
		if err := extract(f, dir, entry.IsDir); err != nil {
			return nil, fmt.Errorf("%w: extracting %s: %v", types.ErrPackaging, f.Name, err)
		}
		m.Entries = append(m.Entries, entry)
	}
	return m, nil
}

func extract(f *zip.File, dir string, isDir bool) error {
	path := filepath.Join(dir, filepath.FromSlash(f.Name))
	if isDir {
		return os.MkdirAll(path, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// outputMode is the permission set given to a packed document.
const outputMode os.FileMode = 0o644

// Pack writes the members listed in m, read from dir, to a new package at
// dst. The archive is assembled in a temporary file beside dst and renamed
// into place only when complete, so a failed Pack leaves no partial output.
func Pack(dir string, m *Manifest, dst string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".incipit-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating output: %v", types.ErrPackaging, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	zw := zip.NewWriter(tmp)
	for _, e := range m.Entries {
		if err = packEntry(zw, dir, e); err != nil {
			return fmt.Errorf("%w: packing %s: %v", types.ErrPackaging, e.Name, err)
		}
	}
	if err = zw.Close(); err != nil {
		return fmt.Errorf("%w: finishing archive: %v", types.ErrPackaging, err)
	}
	if err = tmp.Chmod(outputMode); err != nil {
		return fmt.Errorf("%w: setting output mode: %v", types.ErrPackaging, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing output: %v", types.ErrPackaging, err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("%w: writing %s: %v", types.ErrPackaging, dst, err)
	}
	return nil
}

func packEntry(zw *zip.Writer, dir string, e Entry) error {
	hdr := &zip.FileHeader{
		Name:     e.Name,
		Method:   e.Method,
		Modified: e.Modified,
	}
	if e.IsDir {
		hdr.Method = zip.Store
		_, err := zw.CreateHeader(hdr)
		return err
	}

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	f, err := os.Open(filepath.Join(dir, filepath.FromSlash(e.Name)))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// ReadPart reads an unpacked part from the working tree.
func ReadPart(dir, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
}

// WritePart replaces an unpacked part in the working tree.
func WritePart(dir, name string, data []byte) error {
	return os.WriteFile(filepath.Join(dir, filepath.FromSlash(name)), data, 0o644)
}
