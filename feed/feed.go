package feed

import (
	"encoding/xml"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/perfect5th/simplesite/config"
	"github.com/perfect5th/simplesite/page"
	"github.com/perfect5th/simplesite/render"
)

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Atom    string   `xml:"xmlns:atom,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string   `xml:"title"`
	Description   string   `xml:"description"`
	Link          string   `xml:"link"`
	AtomLink      atomLink `xml:"atom:link"`
	PubDate       string   `xml:"pubDate"`
	LastBuildDate string   `xml:"lastBuildDate"`
	Generator     string   `xml:"generator"`
	Items         []item   `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

// Build renders the RSS 2.0 document for the site's dated pages. Pages
// without a publication date are left out. Items are ordered newest first,
// ties broken by title, and capped at cfg.Feed.MaxItems. A site with no
// dated pages gets no feed: Build returns nil bytes and no error.
func Build(cfg config.SiteConfig, pages []page.Page, now time.Time) ([]byte, error) {
	var dated []page.Page
	for _, p := range pages {
		if !p.Date.IsZero() {
			dated = append(dated, p)
		}
	}
	if len(dated) == 0 {
		return nil, nil
	}

	sort.SliceStable(dated, func(i, j int) bool {
		if !dated[i].Date.Equal(dated[j].Date) {
			return dated[i].Date.After(dated[j].Date)
		}
		return dated[i].Title < dated[j].Title
	})
	if max := cfg.Feed.MaxItems; max > 0 && len(dated) > max {
		dated = dated[:max]
	}

	siteURL := cfg.Origin + cfg.Root
	stamp := now.Format(time.RFC1123Z)

	doc := rss{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: channel{
			Title:       cfg.Title,
			Description: cfg.Description,
			Link:        siteURL,
			AtomLink: atomLink{
				Href: siteURL + "feed.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			PubDate:       stamp,
			LastBuildDate: stamp,
			Generator:     render.Generator,
		},
	}

	for _, p := range dated {
		link := cfg.Origin + render.RewriteURL(p.URL, cfg.Root)
		doc.Channel.Items = append(doc.Channel.Items, item{
			Title:       p.Title,
			Link:        link,
			GUID:        link,
			PubDate:     p.Date.Format(time.RFC1123Z),
			Description: string(p.Fragment),
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling feed")
	}

	return append([]byte(xml.Header), out...), nil
}
