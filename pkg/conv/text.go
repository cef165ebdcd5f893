// Package conv converts rich document formats into plain text suitable for
// chunking and embedding.
package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags
	policy     = bluemonday.UGCPolicy()
)

// HTMLToText strips markup and returns readable plain text. The input is
// sanitized first so script and style bodies never leak into the text.
func HTMLToText(src []byte) (string, error) {
	sanitized := policy.SanitizeBytes(src)
	return html2text.FromString(string(sanitized), html2text.Options{TextOnly: true})
}

// MarkdownToText renders markdown to HTML and flattens it to plain text.
func MarkdownToText(md []byte) (string, error) {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	rendered := markdown.Render(p.Parse(md), renderer)
	return HTMLToText(rendered)
}
