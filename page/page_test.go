package page

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfect5th/simplesite/config"
)

func testConfig(t *testing.T) config.SiteConfig {
	t.Helper()
	cfg, err := config.Load("does-not-exist.yaml")
	require.NoError(t, err)
	return cfg
}

func TestBuildTitleFromHeading(t *testing.T) {
	b := NewBuilder(testConfig(t), nil)

	p := b.Build(SourceFile{
		RelPath: "post.md",
		Content: []byte("# My First Post  \n\nWelcome."),
	})

	assert.Equal(t, "My First Post", p.Title)
	assert.Contains(t, string(p.Fragment), "My First Post</h1>")
}

func TestBuildTitleIgnoresDeeperHeadings(t *testing.T) {
	b := NewBuilder(testConfig(t), nil)

	p := b.Build(SourceFile{
		RelPath: "post.md",
		Content: []byte("## Not a title\n\nIntro text\n\n# Actual Title\n"),
	})

	assert.Equal(t, "Actual Title", p.Title)
}

func TestBuildTitleFallsBackToSiteTitle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Title = "Perfect5th"
	b := NewBuilder(cfg, nil)

	p := b.Build(SourceFile{RelPath: "notes.md", Content: []byte("Just some prose.\n")})
	assert.Equal(t, "Perfect5th", p.Title)
}

func TestBuildEmptyFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Title = "Perfect5th"
	b := NewBuilder(cfg, nil)

	p := b.Build(SourceFile{RelPath: "empty.md"})

	assert.Equal(t, "Perfect5th", p.Title)
	assert.Empty(t, p.Fragment)
	assert.True(t, p.Date.IsZero())
}

func TestBuildFrontmatterOverrides(t *testing.T) {
	b := NewBuilder(testConfig(t), nil)

	src := SourceFile{
		RelPath: "post.md",
		Content: []byte(`---
title: Frontmatter Title
date: 2023-01-15
description: A short summary.
---
# Heading Title

Body.
`),
	}
	p := b.Build(src)

	assert.Equal(t, "Frontmatter Title", p.Title)
	assert.Equal(t, "A short summary.", p.Description)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.Local), p.Date)
	assert.NotContains(t, string(p.Fragment), "Frontmatter Title", "frontmatter must not leak into the fragment")
}

func TestBuildDateFromSecondHeading(t *testing.T) {
	b := NewBuilder(testConfig(t), nil)

	p := b.Build(SourceFile{
		RelPath: "aoc/day1.md",
		Content: []byte("# Day One\n\n## 2022-12-01\n\nPuzzle talk.\n"),
	})

	assert.Equal(t, time.Date(2022, 12, 1, 0, 0, 0, 0, time.Local), p.Date)
}

func TestBuildDateAbsentWhenProseFollowsTitle(t *testing.T) {
	b := NewBuilder(testConfig(t), nil)

	p := b.Build(SourceFile{
		RelPath: "about.md",
		Content: []byte("# About\n\nNo date heading here.\n\n## 2022-12-01\n"),
	})

	assert.True(t, p.Date.IsZero())
}

func TestBuildDateInvalidIsZero(t *testing.T) {
	b := NewBuilder(testConfig(t), nil)

	p := b.Build(SourceFile{
		RelPath: "post.md",
		Content: []byte("# Post\n\n## sometime last winter\n"),
	})

	assert.True(t, p.Date.IsZero())
}

func TestParseDateFormats(t *testing.T) {
	assert.Equal(t, time.Date(2022, 12, 1, 9, 30, 0, 0, time.Local), parseDate("2022-12-01T09:30:00"))
	assert.Equal(t, time.Date(2022, 12, 1, 9, 30, 0, 0, time.Local), parseDate("2022-12-01 09:30:00"))
	assert.False(t, parseDate("2022-12-01T09:30:00Z").IsZero())
	assert.True(t, parseDate("12/01/2022").IsZero())
	assert.True(t, parseDate("").IsZero())
}

func TestCrumbsRootPageHasNone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Crumbs = true
	b := NewBuilder(cfg, nil)

	p := b.Build(SourceFile{RelPath: "index.md", Content: []byte("# Home\nWelcome")})
	assert.Empty(t, p.Crumbs)
}

func TestCrumbsNestedPage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Crumbs = true
	b := NewBuilder(cfg, nil)

	p := b.Build(SourceFile{RelPath: "guides/index.md", Content: []byte("# Guides\nList")})

	require.Len(t, p.Crumbs, 2)
	assert.Equal(t, Crumb{Label: "Home", Href: "/"}, p.Crumbs[0])
	assert.Equal(t, Crumb{Label: "Guides", Href: "/guides/"}, p.Crumbs[1])
}

func TestCrumbsDeepPage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Crumbs = true
	b := NewBuilder(cfg, nil)

	p := b.Build(SourceFile{RelPath: "aoc/2022/day-one.md", Content: []byte("# Day One")})

	require.Len(t, p.Crumbs, 3)
	assert.Equal(t, Crumb{Label: "Home", Href: "/"}, p.Crumbs[0])
	assert.Equal(t, Crumb{Label: "Aoc", Href: "/aoc/"}, p.Crumbs[1])
	assert.Equal(t, Crumb{Label: "2022", Href: "/aoc/2022/"}, p.Crumbs[2])
}

func TestCrumbsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Crumbs = false
	b := NewBuilder(cfg, nil)

	p := b.Build(SourceFile{RelPath: "guides/setup.md", Content: []byte("# Setup")})
	assert.Empty(t, p.Crumbs)
}

func TestCrumbLabels(t *testing.T) {
	cfg := testConfig(t)
	cfg.Crumbs = true
	cfg.Labels = map[string]string{"aoc": "Advent of Code", "/": "Start"}
	b := NewBuilder(cfg, nil)

	p := b.Build(SourceFile{RelPath: "aoc/some_post.md", Content: []byte("# Post")})

	require.Len(t, p.Crumbs, 2)
	assert.Equal(t, "Start", p.Crumbs[0].Label)
	assert.Equal(t, "Advent of Code", p.Crumbs[1].Label)
}

func TestHumanizedLabels(t *testing.T) {
	b := NewBuilder(testConfig(t), nil)

	assert.Equal(t, "Getting Started", b.label("getting-started"))
	assert.Equal(t, "Release Notes", b.label("release_notes"))
	assert.Equal(t, "Guides", b.label("guides"))
}
