// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package splice inserts a generated block into the body of a main
// document part, before the body-level section properties.
package splice

import (
	"fmt"

	"github.com/antchfx/xmlquery"

	"github.com/pdiddy/incipit/internal/section"
	"github.com/pdiddy/incipit/internal/wordml"
	"github.com/pdiddy/incipit/pkg/types"
)

var selBody = wordml.Compile("/w:document/w:body")

// Splice inserts block as direct children of w:body: immediately before the
// last w:sectPr child when there is one, otherwise at the end of the body.
// A document without w:document/w:body fails with types.ErrAnchorMissing.
func Splice(doc *wordml.Document, block section.Block) error {
	body := doc.FindOne(nil, selBody)
	if body == nil {
		return fmt.Errorf("%w: no w:body under w:document", types.ErrAnchorMissing)
	}
	if len(block) == 0 {
		return nil
	}
	if anchor := lastSectPr(body); anchor != nil {
		doc.InsertBefore(anchor, block...)
		return nil
	}
	doc.Append(body, block...)
	return nil
}

// lastSectPr returns the last direct w:sectPr child of body, or nil.
func lastSectPr(body *xmlquery.Node) *xmlquery.Node {
	for n := body.LastChild; n != nil; n = n.PrevSibling {
		if wordml.Is(n, "sectPr") {
			return n
		}
	}
	return nil
}
