// Package page turns markdown source files into page models: extracted
// titles, publication dates, breadcrumb trails, and rendered HTML fragments.
package page

import (
	"bytes"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/perfect5th/simplesite/config"
	"github.com/perfect5th/simplesite/markdown"
)

// SourceFile is one markdown file found under the content root. RelPath is
// slash-separated and relative to the root.
type SourceFile struct {
	RelPath string
	Content []byte
}

// Crumb is one entry in a page's breadcrumb trail. Href is root-relative;
// the renderer applies the site's URL prefix.
type Crumb struct {
	Label string
	Href  string
}

// Page is the model built from one SourceFile.
type Page struct {
	RelPath     string
	OutPath     string
	URL         string
	Title       string
	Description string
	Date        time.Time
	Crumbs      []Crumb
	Fragment    []byte
}

// matter is the optional YAML frontmatter a page may carry. Files without
// frontmatter are plain markdown; parsing never rejects them.
type matter struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
}

// Builder derives Pages from SourceFiles using the site configuration and a
// markdown conversion function.
type Builder struct {
	cfg     config.SiteConfig
	convert func([]byte) []byte
	caser   cases.Caser
}

// NewBuilder returns a Builder. A nil convert falls back to the bundled
// markdown converter.
func NewBuilder(cfg config.SiteConfig, convert func([]byte) []byte) *Builder {
	if convert == nil {
		convert = markdown.Convert
	}
	return &Builder{
		cfg:     cfg,
		convert: convert,
		caser:   cases.Title(language.English),
	}
}

// Build derives the Page for one source file. It cannot fail: a page with
// no usable title falls back to the site title, and a page with no date
// simply has none.
func (b *Builder) Build(src SourceFile) Page {
	meta, body := splitFrontmatter(src.Content)

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = headingTitle(body)
	}
	if title == "" {
		title = b.cfg.Title
	}

	date := parseDate(meta.Date)
	if date.IsZero() {
		date = headingDate(body)
	}

	return Page{
		RelPath:     src.RelPath,
		OutPath:     OutputPath(src.RelPath),
		URL:         PageURL(src.RelPath),
		Title:       title,
		Description: strings.TrimSpace(meta.Description),
		Date:        date,
		Crumbs:      b.crumbs(src.RelPath),
		Fragment:    b.convert(body),
	}
}

// splitFrontmatter separates YAML frontmatter from the markdown body. On
// any parse error the whole file is treated as plain markdown.
func splitFrontmatter(content []byte) (matter, []byte) {
	var meta matter
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return matter{}, content
	}
	return meta, body
}

// headingTitle scans for the first top-level heading line: a line starting
// with a single '#' followed by whitespace. Its trimmed text is the title.
func headingTitle(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimRight(line, "\r")
		if isHeading(line, "#") {
			return strings.TrimSpace(line[1:])
		}
	}
	return ""
}

// headingDate implements the site's dating convention: the first non-blank
// line after the title is a second-level heading holding an ISO date. Pages
// without one are undated, which is normal.
func headingDate(body []byte) time.Time {
	lines := strings.Split(string(body), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if !isHeading(line, "#") {
			continue
		}
		for _, next := range lines[i+1:] {
			next = strings.TrimRight(next, "\r")
			if strings.TrimSpace(next) == "" {
				continue
			}
			if isHeading(next, "##") {
				return parseDate(strings.TrimSpace(next[2:]))
			}
			return time.Time{}
		}
		return time.Time{}
	}
	return time.Time{}
}

// isHeading reports whether line is a heading of exactly the given marker
// depth: the marker followed by a space or tab.
func isHeading(line, marker string) bool {
	if !strings.HasPrefix(line, marker) {
		return false
	}
	rest := line[len(marker):]
	return len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t')
}

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate tries the accepted date spellings. Formats without a zone are
// read in local time, matching how the feed has always been dated.
func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, format := range dateFormats {
		if ts, err := time.ParseInLocation(format, v, time.Local); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// crumbs builds the breadcrumb trail for a file: the root crumb, then one
// crumb per directory segment, each linking to that directory's index.
// Root-level files have no trail, and disabling crumbs empties every trail.
func (b *Builder) crumbs(relPath string) []Crumb {
	if !b.cfg.Crumbs {
		return nil
	}
	dir := path.Dir(relPath)
	if dir == "." || dir == "" {
		return nil
	}

	segments := strings.Split(dir, "/")
	crumbs := make([]Crumb, 0, len(segments)+1)
	crumbs = append(crumbs, Crumb{Label: b.cfg.RootLabel(), Href: "/"})

	prefix := "/"
	for _, segment := range segments {
		prefix += segment + "/"
		crumbs = append(crumbs, Crumb{Label: b.label(segment), Href: prefix})
	}
	return crumbs
}

// label resolves a segment's display label: a configured override, else the
// segment name humanized.
func (b *Builder) label(segment string) string {
	if label, ok := b.cfg.Labels[segment]; ok && label != "" {
		return label
	}
	humanized := strings.ReplaceAll(strings.ReplaceAll(segment, "-", " "), "_", " ")
	return b.caser.String(humanized)
}
