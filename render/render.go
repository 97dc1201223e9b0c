package render

import (
	"fmt"
	"html"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"

	"github.com/perfect5th/simplesite/config"
	"github.com/perfect5th/simplesite/page"
)

// Generator identifies this tool in rendered output and feeds.
const Generator = "simplesite"

const baseTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator" content="<%= generator %>">
<title><%= title %></title>
<%= if (description != "") { %><meta name="description" content="<%= description %>">
<% } %><%= if (canonical != "") { %><link rel="canonical" href="<%= canonical %>">
<% } %><%= if (stylesheet != "") { %><link rel="stylesheet" href="<%= stylesheet %>">
<% } %><%= for (font) in fonts { %><link rel="preload" href="<%= font %>" as="font" crossorigin>
<% } %></head>
<body>
<header>
<a class="site-title" href="<%= home %>"><%= siteTitle %></a>
<%= crumbs %>
</header>
<main>
<%= yield %>
</main>
<%= if (script != "") { %><script src="<%= script %>"></script>
<% } %></body>
</html>
`

// Document is a fully rendered page ready to be written to the output tree.
type Document struct {
	OutPath string
	HTML    []byte
}

// Renderer wraps a single parsed page template. The zero value is not
// usable; construct with New.
type Renderer struct {
	cfg   config.SiteConfig
	tpl   *plush.Template
	fonts []string
}

// New parses the site template once up front. When the config names a
// template file it replaces the built-in one; a missing or unreadable
// file is a hard error rather than a silent fallback. fonts lists the
// font files, relative to the working directory, that the emitter will
// copy alongside the pages.
func New(cfg config.SiteConfig, fonts []string) (*Renderer, error) {
	src := baseTemplate
	if cfg.Template != "" {
		raw, err := os.ReadFile(cfg.Template)
		if err != nil {
			return nil, errors.Wrapf(err, "reading template %s", cfg.Template)
		}
		src = string(raw)
	}

	tpl, err := plush.Parse(src)
	if err != nil {
		return nil, errors.Wrap(err, "parsing site template")
	}

	hrefs := make([]string, 0, len(fonts))
	for _, f := range fonts {
		hrefs = append(hrefs, assetHref(f, cfg.Root))
	}

	return &Renderer{cfg: cfg, tpl: tpl, fonts: hrefs}, nil
}

// Render produces the final HTML document for a page. The converted
// fragment and every asset reference get the root prefix applied before
// they reach the template.
func (r *Renderer) Render(p page.Page) (Document, error) {
	ctx := plush.NewContext()
	ctx.Set("generator", Generator)
	ctx.Set("title", p.Title)
	ctx.Set("siteTitle", r.cfg.Title)
	ctx.Set("description", p.Description)
	ctx.Set("home", RewriteURL("/", r.cfg.Root))
	ctx.Set("canonical", r.canonical(p))
	ctx.Set("stylesheet", assetHref(r.cfg.Stylesheet, r.cfg.Root))
	ctx.Set("script", assetHref(r.cfg.Script, r.cfg.Root))
	ctx.Set("fonts", r.fonts)
	ctx.Set("crumbs", template.HTML(CrumbNav(p.Crumbs, r.cfg.Root)))
	ctx.Set("yield", template.HTML(RewriteHTML(string(p.Fragment), r.cfg.Root)))

	out, err := r.tpl.Exec(ctx)
	if err != nil {
		return Document{}, errors.Wrapf(err, "rendering %s", p.RelPath)
	}

	return Document{OutPath: p.OutPath, HTML: []byte(out)}, nil
}

func (r *Renderer) canonical(p page.Page) string {
	if r.cfg.Origin == "" {
		return ""
	}
	return r.cfg.Origin + RewriteURL(p.URL, r.cfg.Root)
}

// CrumbNav renders the breadcrumb trail as a nav element. Pages without
// crumbs get an empty string so the template emits nothing for them.
func CrumbNav(crumbs []page.Crumb, root string) string {
	if len(crumbs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="crumbs">`)
	for i, c := range crumbs {
		if i > 0 {
			b.WriteString(` <span class="crumb-sep">/</span> `)
		}
		fmt.Fprintf(&b, `<a href="%s">%s</a>`,
			html.EscapeString(RewriteURL(c.Href, root)), html.EscapeString(c.Label))
	}
	b.WriteString(`</nav>`)
	return b.String()
}

// assetHref maps a configured asset path to the URL it will be served
// from, which mirrors its path under the output tree.
func assetHref(asset, root string) string {
	if asset == "" {
		return ""
	}
	return RewriteURL(path.Clean("/"+filepath.ToSlash(asset)), root)
}
