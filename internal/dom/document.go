package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is the live, currently rendered page.
// All reads and mutations made through its methods are serialized.
// Selections returned by Find share nodes with the document; mutating them
// directly bypasses that serialization.
type Document struct {
	mu  sync.RWMutex
	doc *goquery.Document
}

// NewDocument parses a full HTML page from r.
func NewDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &ExtractionError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseNotHTML,
		}
	}
	return NewDocumentFromNode(root), nil
}

// Parse is NewDocument for an in-memory page.
func Parse(markup string) (*Document, error) {
	return NewDocument(strings.NewReader(markup))
}

// NewDocumentFromNode wraps an already parsed tree. The tree is not copied.
func NewDocumentFromNode(root *html.Node) *Document {
	return &Document{
		doc: goquery.NewDocumentFromNode(root),
	}
}

// HTML serializes the whole document, doctype included.
func (d *Document) HTML() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	for c := d.root().FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", &ExtractionError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCauseRenderFailure,
			}
		}
	}
	return b.String(), nil
}

// Title returns the text of the first <title> element, or "" if there is none.
func (d *Document) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.doc.Find("title").First().Text()
}

// SetTitle replaces the text of the first <title> element, creating one
// under <head> when the document has none.
func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.setTitle(title)
}

// Find runs a CSS selector query against the document.
func (d *Document) Find(selector string) *goquery.Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.doc.Find(selector)
}

// Count returns how many elements match selector.
func (d *Document) Count(selector string) int {
	return d.Find(selector).Length()
}

func (d *Document) root() *html.Node {
	return d.doc.Nodes[0]
}

func (d *Document) setTitle(title string) {
	titleSel := d.doc.Find("title").First()
	if titleSel.Length() == 0 {
		head := d.doc.Find("head").First()
		if head.Length() == 0 {
			return
		}
		head.AppendNodes(&html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Title,
			Data:     "title",
		})
		titleSel = head.Find("title").First()
	}

	node := titleSel.Nodes[0]
	for c := node.FirstChild; c != nil; c = node.FirstChild {
		node.RemoveChild(c)
	}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: title})
}

// contains reports whether n is attached to this document's tree.
func (d *Document) contains(n *html.Node) bool {
	root := d.root()
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}
