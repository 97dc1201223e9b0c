package site

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/perfect5th/simplesite/config"
	"github.com/perfect5th/simplesite/feed"
	"github.com/perfect5th/simplesite/page"
	"github.com/perfect5th/simplesite/render"
	"github.com/perfect5th/simplesite/utils"
)

// Summary reports what a build produced.
type Summary struct {
	Pages   int
	Assets  int
	Skipped int
}

// Builder turns the markdown tree under cfg.Content into a browsable HTML
// tree under cfg.Output.
type Builder struct {
	cfg config.SiteConfig
}

func NewBuilder(cfg config.SiteConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build runs the whole pipeline: walk the content tree, build and render
// every page, write the output tree, copy assets, and emit the feed and
// sitemap when an origin is configured. The output directory is recreated
// from scratch so stale files never survive a rebuild. Unreadable sources
// are skipped with a warning; a missing content root or any output write
// failure aborts the build.
func (b *Builder) Build() (Summary, error) {
	var summary Summary

	builder := page.NewBuilder(b.cfg, nil)
	var pages []page.Page
	skipped, err := page.Walk(b.cfg.Content, func(src page.SourceFile) error {
		pages = append(pages, builder.Build(src))
		return nil
	})
	if err != nil {
		return summary, err
	}
	summary.Skipped = skipped

	renderer, err := render.New(b.cfg, b.fontFiles())
	if err != nil {
		return summary, err
	}

	if err := os.RemoveAll(b.cfg.Output); err != nil {
		return summary, errors.Wrapf(ErrWriteFailure, "clearing %s: %v", b.cfg.Output, err)
	}
	if err := os.MkdirAll(b.cfg.Output, os.ModePerm); err != nil {
		return summary, errors.Wrapf(ErrWriteFailure, "creating %s: %v", b.cfg.Output, err)
	}

	written := make(map[string]string, len(pages))
	for _, p := range pages {
		// Sources that differ only in markdown extension case collide on
		// the same output path. The first page in walk order wins.
		if prev, ok := written[p.OutPath]; ok {
			logrus.WithFields(logrus.Fields{
				"source":   p.RelPath,
				"previous": prev,
				"output":   p.OutPath,
			}).Warn("Output path collision; keeping the earlier page")
			summary.Skipped++
			continue
		}
		written[p.OutPath] = p.RelPath

		doc, err := renderer.Render(p)
		if err != nil {
			return summary, err
		}
		if err := b.writeFile(doc.OutPath, doc.HTML); err != nil {
			return summary, err
		}
		summary.Pages++
		logrus.WithFields(logrus.Fields{
			"source": p.RelPath,
			"output": doc.OutPath,
		}).Info("Generated page")
	}

	assets, err := b.copyAssets()
	if err != nil {
		return summary, err
	}
	summary.Assets = assets

	if err := b.emitFeeds(pages); err != nil {
		return summary, err
	}

	return summary, nil
}

// emitFeeds writes feed.xml and sitemap.xml at the output root. Both need
// absolute URLs, so neither is produced without a configured origin.
func (b *Builder) emitFeeds(pages []page.Page) error {
	if b.cfg.Origin == "" {
		logrus.Debug("No origin configured; skipping feed and sitemap")
		return nil
	}

	now := time.Now()

	if !b.cfg.Feed.Disabled {
		out, err := feed.Build(b.cfg, pages, now)
		if err != nil {
			return err
		}
		if out == nil {
			logrus.Debug("No dated pages; skipping feed")
		} else {
			if err := b.writeFile("feed.xml", out); err != nil {
				return err
			}
			logrus.Info("Generated feed.xml")
		}
	}

	out, err := utils.GenerateSitemap(b.cfg, pages, now)
	if err != nil {
		return err
	}
	if err := b.writeFile("sitemap.xml", out); err != nil {
		return err
	}
	logrus.Info("Generated sitemap.xml")

	return nil
}

// writeFile writes one output file, creating parent directories as needed.
// rel is slash-separated relative to the output root.
func (b *Builder) writeFile(rel string, data []byte) error {
	dest := filepath.Join(b.cfg.Output, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
		return errors.Wrapf(ErrWriteFailure, "creating %s: %v", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return errors.Wrapf(ErrWriteFailure, "writing %s: %v", dest, err)
	}
	return nil
}

// copyAssets copies the configured stylesheet, script, and font files into
// the output tree at the same relative paths they occupy in the project.
// Missing or unreadable sources are skipped with a warning; failures to
// write copies abort like any other output failure.
func (b *Builder) copyAssets() (int, error) {
	count := 0
	for _, asset := range []string{b.cfg.Stylesheet, b.cfg.Script, b.cfg.Fonts} {
		if asset == "" {
			continue
		}
		n, err := b.copyPath(asset)
		if err != nil {
			return count, err
		}
		count += n
	}
	return count, nil
}

// copyPath copies a file, or every file under a directory, preserving the
// source's relative path under the output root.
func (b *Builder) copyPath(src string) (int, error) {
	count := 0
	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logrus.WithField("path", path).WithError(err).Warn("Skipping missing asset")
			return nil
		}
		if info.IsDir() {
			return nil
		}

		input, err := os.ReadFile(path)
		if err != nil {
			logrus.WithField("path", path).WithError(err).Warn("Skipping unreadable asset")
			return nil
		}

		if err := b.writeFile(filepath.ToSlash(path), input); err != nil {
			return err
		}
		count++
		logrus.WithField("path", path).Debug("Copied asset")
		return nil
	})
	return count, err
}

// fontFiles lists every file under the configured fonts directory, in
// walk order, as working-directory-relative paths. A missing directory
// just means no fonts.
func (b *Builder) fontFiles() []string {
	if b.cfg.Fonts == "" {
		return nil
	}

	var fonts []string
	filepath.Walk(b.cfg.Fonts, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			fonts = append(fonts, path)
		}
		return nil
	})
	return fonts
}
