package loader

import (
	"context"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vietravel-ai/travelbot/rag"
)

// HTMLLoader extracts readable text from an HTML document, one document
// per top-level content block. Script, style and navigation elements are
// dropped.
type HTMLLoader struct {
	reader   io.Reader
	metadata map[string]any
}

var _ rag.DocumentLoader = (*HTMLLoader)(nil)

// NewHTMLLoader creates a loader reading HTML from r
func NewHTMLLoader(r io.Reader, opts ...Option) *HTMLLoader {
	l := &HTMLLoader{
		reader: r,
		metadata: map[string]any{
			"type": "html",
		},
	}
	for _, opt := range opts {
		opt(l.metadata)
	}
	return l
}

// Load parses the HTML and returns the page text as a single document,
// with the page title recorded in metadata when present
func (l *HTMLLoader) Load(ctx context.Context) ([]rag.Document, error) {
	doc, err := goquery.NewDocumentFromReader(l.reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find("script, style, nav, header, footer").Remove()

	var parts []string
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})

	metadata := make(map[string]any, len(l.metadata)+1)
	maps.Copy(metadata, l.metadata)
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		metadata["title"] = title
	}

	return []rag.Document{{
		Content:  strings.Join(parts, "\n"),
		Metadata: metadata,
	}}, nil
}
