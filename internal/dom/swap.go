package dom

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/carpool/internal/metadata"
	"golang.org/x/net/html"
)

/*
Responsibilities

- Parse a fetched page
- Isolate its content region and title
- Splice both into the live document

Swap Semantics

- Only the first match of the content selector and of <title> is used;
  later matches are ignored
- The whole matched element replaces the whole live element
- Every lookup runs before the first mutation: a failed swap leaves the
  live document untouched
*/

type Swapper struct {
	metadataSink    metadata.MetadataSink
	contentSelector string
}

func NewSwapper(
	metadataSink metadata.MetadataSink,
	contentSelector string,
) Swapper {
	return Swapper{
		metadataSink:    metadataSink,
		contentSelector: contentSelector,
	}
}

func (s *Swapper) ContentSelector() string {
	return s.contentSelector
}

// staged holds everything a swap needs, collected before touching the live page.
type staged struct {
	title   string
	content *html.Node
}

// Swap replaces the live document's title and content region with the ones
// found in markup. target selects the live element to replace; when nil, the
// first live element matching the content selector is used.
func (s *Swapper) Swap(live *Document, markup string, target *goquery.Selection) error {
	page, err := s.stage(markup)
	if err != nil {
		return err
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	targetNode, err := s.resolveTarget(live, target)
	if err != nil {
		return err
	}

	live.setTitle(page.title)
	replaceNode(targetNode, page.content)

	s.metadataSink.RecordSwap(page.title, s.contentSelector)
	return nil
}

func (s *Swapper) stage(markup string) (staged, error) {
	fetched, err := Parse(markup)
	if err != nil {
		return staged{}, err
	}

	content := fetched.doc.Find(s.contentSelector).First()
	if content.Length() == 0 {
		return staged{}, &ExtractionError{
			Message:   fmt.Sprintf("no element matches %q", s.contentSelector),
			Retryable: false,
			Cause:     ErrCauseContentNotFound,
		}
	}

	title := fetched.doc.Find("title").First()
	if title.Length() == 0 {
		return staged{}, &ExtractionError{
			Message:   "page has no <title> element",
			Retryable: false,
			Cause:     ErrCauseTitleNotFound,
		}
	}

	return staged{
		title:   title.Text(),
		content: content.Nodes[0],
	}, nil
}

// resolveTarget must be called with live.mu held.
func (s *Swapper) resolveTarget(live *Document, target *goquery.Selection) (*html.Node, error) {
	if target == nil {
		target = live.doc.Find(s.contentSelector)
	}
	if target.Length() == 0 {
		return nil, &ExtractionError{
			Message:   fmt.Sprintf("live document has no element matching %q", s.contentSelector),
			Retryable: false,
			Cause:     ErrCauseTargetNotFound,
		}
	}

	node := target.Nodes[0]
	if node.Parent == nil || !live.contains(node) {
		return nil, &ExtractionError{
			Message:   "target container is detached from the live document",
			Retryable: false,
			Cause:     ErrCauseForeignTarget,
		}
	}
	return node, nil
}

// replaceNode moves replacement out of its own tree and puts it where old was.
func replaceNode(old *html.Node, replacement *html.Node) {
	if replacement.Parent != nil {
		replacement.Parent.RemoveChild(replacement)
	}
	parent := old.Parent
	parent.InsertBefore(replacement, old)
	parent.RemoveChild(old)
}
