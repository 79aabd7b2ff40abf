package dom_test

import (
	"fmt"
	"testing"

	"github.com/rohmanhakim/carpool/internal/dom"
	"github.com/rohmanhakim/carpool/internal/metadata"
	"github.com/stretchr/testify/require"
)

const contentSelector = ".js-content"

// pageHTML builds a full page whose content region wraps content.
func pageHTML(title string, content string) string {
	return fmt.Sprintf(
		`<!doctype html><html lang=en><head><meta charset=utf-8><title>%s</title></head>`+
			`<body><nav>menu</nav><div class="js-content"><p>%s</p></div><footer>foot</footer></body></html>`,
		title, content,
	)
}

func mustParse(t *testing.T, markup string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(markup)
	require.NoError(t, err)
	return doc
}

func setupSwapper() (*dom.Swapper, *metadata.MemoryRecorder) {
	sink := &metadata.MemoryRecorder{}
	s := dom.NewSwapper(sink, contentSelector)
	return &s, sink
}
