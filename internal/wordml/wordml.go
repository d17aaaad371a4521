// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wordml owns a parsed WordprocessingML part (document.xml,
// endnotes.xml, footnotes.xml) as a mutable xmlquery tree. Every mutation
// the pipeline performs goes through a Document method so a single caller
// owns the tree for the duration of a conversion.
package wordml

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/pdiddy/incipit/pkg/types"
)

const (
	// NamespaceW is the WordprocessingML main namespace.
	NamespaceW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	// namespaceXML is the namespace bound to the reserved xml: prefix.
	namespaceXML = "http://www.w3.org/XML/1998/namespace"

	defaultPrefix = "w"
)

// namespaces maps the prefix used in compiled selectors to its URI. Matching
// is by URI, so documents binding the main namespace to another prefix
// still match.
var namespaces = map[string]string{"w": NamespaceW}

// Compile compiles a selector that may use the w: prefix.
// It panics on an invalid expression; selectors are package constants.
func Compile(expr string) *xpath.Expr {
	e, err := xpath.CompileWithNS(expr, namespaces)
	if err != nil {
		panic(fmt.Sprintf("wordml: compiling %q: %v", expr, err))
	}
	return e
}

// Document is a parsed part. The zero value is not usable; call Parse.
type Document struct {
	doc    *xmlquery.Node
	prefix string
}

// Parse parses a part. Any syntax error, or a part without a root element,
// is reported as types.ErrMalformedContent.
func Parse(data []byte) (*Document, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedContent, err)
	}
	d := &Document{doc: doc}
	root := d.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", types.ErrMalformedContent)
	}
	d.prefix = boundPrefix(root)
	return d, nil
}

// boundPrefix returns the prefix the root element binds to NamespaceW,
// falling back to "w".
func boundPrefix(root *xmlquery.Node) string {
	for _, a := range root.Attr {
		if a.Name.Space == "xmlns" && a.Value == NamespaceW {
			return a.Name.Local
		}
	}
	if root.NamespaceURI == NamespaceW && root.Prefix != "" {
		return root.Prefix
	}
	return defaultPrefix
}

// Root returns the document element.
func (d *Document) Root() *xmlquery.Node {
	for n := d.doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// Prefix returns the prefix new elements are created with.
func (d *Document) Prefix() string { return d.prefix }

// Bytes serializes the whole part, declaration included. Text and
// attribute values are escaped exactly once by the serializer.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_ = d.doc.WriteWithOptions(&buf, xmlquery.WithEmptyTagSupport())
	return buf.Bytes()
}

// Find returns every node under top matching sel, in document order.
func (d *Document) Find(top *xmlquery.Node, sel *xpath.Expr) []*xmlquery.Node {
	if top == nil {
		top = d.doc
	}
	return xmlquery.QuerySelectorAll(top, sel)
}

// FindOne returns the first node under top matching sel, or nil.
func (d *Document) FindOne(top *xmlquery.Node, sel *xpath.Expr) *xmlquery.Node {
	if top == nil {
		top = d.doc
	}
	return xmlquery.QuerySelector(top, sel)
}

// Attribute is a w:-namespaced attribute for Element.
type Attribute struct {
	Local string
	Value string
}

// A builds an Attribute.
func A(local, value string) Attribute {
	return Attribute{Local: local, Value: value}
}

// Element creates a detached w: element with the given attributes.
func (d *Document) Element(local string, attrs ...Attribute) *xmlquery.Node {
	n := &xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         local,
		Prefix:       d.prefix,
		NamespaceURI: NamespaceW,
	}
	for _, a := range attrs {
		n.Attr = append(n.Attr, xmlquery.Attr{
			Name:         xml.Name{Space: d.prefix, Local: a.Local},
			Value:        a.Value,
			NamespaceURI: NamespaceW,
		})
	}
	return n
}

// Text creates a w:t element holding s. Leading or trailing spaces get
// xml:space="preserve" so consumers keep them.
func (d *Document) Text(s string) *xmlquery.Node {
	t := d.Element("t")
	if s != "" && (s[0] == ' ' || s[len(s)-1] == ' ') {
		t.Attr = append(t.Attr, xmlquery.Attr{
			Name:         xml.Name{Space: "xml", Local: "space"},
			Value:        "preserve",
			NamespaceURI: namespaceXML,
		})
	}
	xmlquery.AddChild(t, &xmlquery.Node{Type: xmlquery.TextNode, Data: s})
	return t
}

// Append adds nodes as the last children of parent, in order.
func (d *Document) Append(parent *xmlquery.Node, nodes ...*xmlquery.Node) {
	for _, n := range nodes {
		xmlquery.AddChild(parent, n)
	}
}

// InsertBefore inserts nodes, in order, as siblings immediately before ref.
func (d *Document) InsertBefore(ref *xmlquery.Node, nodes ...*xmlquery.Node) {
	parent := ref.Parent
	for _, n := range nodes {
		n.Parent = parent
		n.NextSibling = ref
		n.PrevSibling = ref.PrevSibling
		if ref.PrevSibling != nil {
			ref.PrevSibling.NextSibling = n
		} else if parent != nil {
			parent.FirstChild = n
		}
		ref.PrevSibling = n
	}
}

// InsertAfter inserts nodes, in order, as siblings immediately after ref.
func (d *Document) InsertAfter(ref *xmlquery.Node, nodes ...*xmlquery.Node) {
	prev := ref
	for _, n := range nodes {
		xmlquery.AddImmediateSibling(prev, n)
		prev = n
	}
}

// Replace puts nodes where old was and detaches old.
func (d *Document) Replace(old *xmlquery.Node, nodes ...*xmlquery.Node) {
	d.InsertBefore(old, nodes...)
	d.Remove(old)
}

// Remove detaches n and its subtree.
func (d *Document) Remove(n *xmlquery.Node) {
	xmlquery.RemoveFromTree(n)
}

// Clone returns a detached deep copy of n.
func (d *Document) Clone(n *xmlquery.Node) *xmlquery.Node {
	c := &xmlquery.Node{
		Type:         n.Type,
		Data:         n.Data,
		Prefix:       n.Prefix,
		NamespaceURI: n.NamespaceURI,
		Attr:         append([]xmlquery.Attr(nil), n.Attr...),
	}
	for k := n.FirstChild; k != nil; k = k.NextSibling {
		xmlquery.AddChild(c, d.Clone(k))
	}
	return c
}

// Is reports whether n is a w: element with the given local name.
func Is(n *xmlquery.Node, local string) bool {
	return n != nil && n.Type == xmlquery.ElementNode && n.NamespaceURI == NamespaceW && n.Data == local
}

// Attr returns the value of the w:-namespaced attribute local on n.
func Attr(n *xmlquery.Node, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == local && a.NamespaceURI == NamespaceW {
			return a.Value, true
		}
	}
	return "", false
}

// Ancestor returns the nearest ancestor of n that is a w: element named local.
func Ancestor(n *xmlquery.Node, local string) *xmlquery.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if Is(p, local) {
			return p
		}
	}
	return nil
}
