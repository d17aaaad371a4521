// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docxtest builds small WordprocessingML parts and packages for
// tests. Only test code imports it.
package docxtest

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

const nsW = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

const header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// SectPr is a minimal body-level section properties element.
const SectPr = `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr>`

// Document wraps body content in a main document part.
func Document(body ...string) []byte {
	return []byte(header + `<w:document ` + nsW + `><w:body>` + strings.Join(body, "") + `</w:body></w:document>`)
}

// P builds a paragraph from runs.
func P(runs ...string) string {
	return "<w:p>" + strings.Join(runs, "") + "</w:p>"
}

// R builds a text run.
func R(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// EndnoteRef builds a run holding only an endnote reference marker.
func EndnoteRef(id string) string {
	return `<w:r><w:rPr><w:rStyle w:val="EndnoteReference"/></w:rPr><w:endnoteReference w:id="` + id + `"/></w:r>`
}

// FootnoteRef builds a run holding only a footnote reference marker.
func FootnoteRef(id string) string {
	return `<w:r><w:rPr><w:rStyle w:val="FootnoteReference"/></w:rPr><w:footnoteReference w:id="` + id + `"/></w:r>`
}

// Note is a fixture note: id and citation text.
type Note struct {
	ID   string
	Text string
}

// Endnotes builds an endnotes part holding the two separator notes and
// the given notes.
func Endnotes(notes ...Note) []byte {
	return notesPart("endnote", notes)
}

// Footnotes builds a footnotes part holding the two separator notes and
// the given notes.
func Footnotes(notes ...Note) []byte {
	return notesPart("footnote", notes)
}

func notesPart(el string, notes []Note) []byte {
	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, `<w:%ss %s>`, el, nsW)
	fmt.Fprintf(&b, `<w:%s w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:%s>`, el, el)
	fmt.Fprintf(&b, `<w:%s w:type="continuationSeparator" w:id="0"><w:p><w:r><w:continuationSeparator/></w:r></w:p></w:%s>`, el, el)
	for _, n := range notes {
		fmt.Fprintf(&b, `<w:%s w:id="%s"><w:p><w:r><w:%sRef/></w:r>%s</w:p></w:%s>`, el, n.ID, el, R(" "+n.Text), el)
	}
	fmt.Fprintf(&b, `</w:%ss>`, el)
	return []byte(b.String())
}

// Part is one package member.
type Part struct {
	Name string
	Data []byte
}

// Package returns the members of a minimal package around a main document
// and an endnotes part. A nil notes part is left out.
func Package(document, endnotes []byte) []Part {
	parts := []Part{
		{Name: "[Content_Types].xml", Data: []byte(header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/></Types>`)},
		{Name: "_rels/.rels", Data: []byte(header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`)},
		{Name: "word/document.xml", Data: document},
	}
	if endnotes != nil {
		parts = append(parts, Part{Name: "word/endnotes.xml", Data: endnotes})
	}
	parts = append(parts, Part{Name: "word/styles.xml", Data: []byte(header + `<w:styles ` + nsW + `/>`)})
	return parts
}

// WritePackage writes parts, in order, as a zip archive at path.
func WritePackage(t testing.TB, path string, parts []Part) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.Name,
			Method:   zip.Deflate,
			Modified: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(p.Data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

// ReadPackage returns the members of the archive at path in archive order.
func ReadPackage(t testing.TB, path string) []Part {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	var parts []Part
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		parts = append(parts, Part{Name: f.Name, Data: data})
	}
	return parts
}

// Find returns the data of the named part, or nil.
func Find(parts []Part, name string) []byte {
	for _, p := range parts {
		if p.Name == name {
			return p.Data
		}
	}
	return nil
}
