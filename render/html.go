// Package render converts assistant answers from markdown to HTML safe
// to embed in the chat interface.
package render

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// HTML renders a markdown answer into sanitized HTML. Map links produced
// by the pipeline survive sanitization; script injection does not.
func HTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})
	unsafe := markdown.Render(doc, renderer)

	return string(policy.SanitizeBytes(unsafe))
}
