package utils

import (
	"encoding/xml"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/perfect5th/simplesite/config"
	"github.com/perfect5th/simplesite/page"
	"github.com/perfect5th/simplesite/render"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// GenerateSitemap renders the sitemap covering every page in the site.
// Entries are sorted by location so repeated builds emit identical bytes.
// Pages without a publication date use the build time for lastmod.
func GenerateSitemap(cfg config.SiteConfig, pages []page.Page, now time.Time) ([]byte, error) {
	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	for _, p := range pages {
		lastMod := now
		if !p.Date.IsZero() {
			lastMod = p.Date
		}
		sitemap.Urls = append(sitemap.Urls, Url{
			Loc:     cfg.Origin + render.RewriteURL(p.URL, cfg.Root),
			LastMod: lastMod.Format("2006-01-02"),
		})
	}

	sort.Slice(sitemap.Urls, func(i, j int) bool {
		return sitemap.Urls[i].Loc < sitemap.Urls[j].Loc
	})

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling sitemap")
	}

	return append([]byte(xml.Header), xmlOutput...), nil
}
