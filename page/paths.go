package page

import (
	"path"
	"strings"
)

// OutputPath maps a source path to its mirrored output path: the markdown
// extension swapped for .html, directories untouched. index.md therefore
// lands at index.html and directory-style URLs resolve.
func OutputPath(relPath string) string {
	return strings.TrimSuffix(relPath, path.Ext(relPath)) + ".html"
}

// PageURL is the root-relative URL a page is reachable at. Index pages get
// the directory-style URL; everything else keeps its .html path.
func PageURL(relPath string) string {
	out := OutputPath(relPath)
	if path.Base(out) == "index.html" {
		dir := path.Dir(out)
		if dir == "." {
			return "/"
		}
		return "/" + dir + "/"
	}
	return "/" + out
}
