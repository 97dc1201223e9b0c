// Package markdown converts raw markdown text into HTML fragments.
package markdown

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
)

// Convert renders markdown source into an HTML fragment. Conversion cannot
// fail: any text is valid markdown, and empty input yields an empty
// fragment. A fresh parser is built per call because gomarkdown parsers are
// single-use.
func Convert(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	return markdown.ToHTML(src, p, nil)
}
