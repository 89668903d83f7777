// Package etree decodes raw dump pages using the etree XML DOM.
package etree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/castgraph"
)

// Compile-time interface verification.
var _ castgraph.PageDecoder = (*PageDecoder)(nil)

// PageDecoder implements castgraph.PageDecoder.
type PageDecoder struct{}

// NewPageDecoder creates a new PageDecoder.
func NewPageDecoder() *PageDecoder {
	return &PageDecoder{}
}

// Decode parses a single <page> element and returns its title, ID and
// revision text.
func (d *PageDecoder) Decode(raw string) (*castgraph.Page, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return nil, castgraph.Errorf(castgraph.EMALFORMED, "parsing page XML: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "page" {
		return nil, castgraph.Errorf(castgraph.EMALFORMED, "missing <page> element")
	}

	title := root.SelectElement("title")
	if title == nil || strings.TrimSpace(title.Text()) == "" {
		return nil, castgraph.Errorf(castgraph.EMALFORMED, "page without title")
	}

	page := &castgraph.Page{Title: title.Text()}

	if id := root.SelectElement("id"); id != nil {
		n, err := strconv.ParseUint(strings.TrimSpace(id.Text()), 10, 64)
		if err != nil {
			return nil, castgraph.Errorf(castgraph.EMALFORMED, "page %q: invalid id: %v", page.Title, err)
		}
		page.ID = n
	}

	if text := root.FindElement("./revision/text"); text != nil {
		page.Text = text.Text()
	}
	page.Hash = fmt.Sprintf("%x", xxhash.Sum64String(page.Text))

	return page, nil
}
