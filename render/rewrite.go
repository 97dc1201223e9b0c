package render

import (
	"regexp"
	"strings"
)

var attrPattern = regexp.MustCompile(`(href|src)="([^"]*)"`)

// RewriteURL prefixes a site-internal URL with the root prefix. The
// operation is idempotent: a URL already carrying the prefix comes back
// unchanged, so re-rendering never double-prefixes. External URLs (anything
// with a scheme), protocol-relative URLs, fragments, and relative paths are
// left alone.
func RewriteURL(u, root string) string {
	if root == "" || root == "/" {
		return u
	}
	if !strings.HasPrefix(u, "/") || strings.HasPrefix(u, "//") {
		return u
	}
	if u == strings.TrimSuffix(root, "/") || strings.HasPrefix(u, root) {
		return u
	}
	return strings.TrimSuffix(root, "/") + u
}

// RewriteHTML applies RewriteURL to every href and src attribute in an HTML
// fragment. The converter always emits double-quoted attributes, so that is
// the only form matched.
func RewriteHTML(fragment, root string) string {
	if root == "" || root == "/" {
		return fragment
	}
	return attrPattern.ReplaceAllStringFunc(fragment, func(attr string) string {
		sub := attrPattern.FindStringSubmatch(attr)
		return sub[1] + `="` + RewriteURL(sub[2], root) + `"`
	})
}
