// Package config loads the site manifest and environment overrides into an
// immutable SiteConfig shared by every build stage.
package config

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Environment variables recognized on top of the manifest.
const (
	EnvRoot   = "SITE_ROOT"
	EnvTitle  = "SITE_TITLE"
	EnvCrumbs = "CRUMBS"
	EnvOrigin = "SITE_ORIGIN"
)

const (
	DefaultManifest = "site.yaml"
	DefaultTitle    = "Simple Site"
	DefaultContent  = "content"
	DefaultOutput   = "public"

	// HomeLabel is the display label of the root breadcrumb. A manifest can
	// override it under labels with the "/" key, which can never collide
	// with a path segment.
	HomeLabel = "Home"
)

// FeedConfig controls feed.xml generation. The feed is written whenever the
// site has an origin and at least one dated page, unless disabled here.
type FeedConfig struct {
	Disabled bool `yaml:"disabled"`
	MaxItems int  `yaml:"max_items"`
}

// SiteConfig is the process-wide site configuration. It is loaded once at
// startup and treated as read-only by all later stages.
type SiteConfig struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Origin      string            `yaml:"origin"`
	Root        string            `yaml:"root"`
	Content     string            `yaml:"content"`
	Output      string            `yaml:"output"`
	Stylesheet  string            `yaml:"stylesheet"`
	Script      string            `yaml:"script"`
	Fonts       string            `yaml:"fonts"`
	Template    string            `yaml:"template"`
	Crumbs      bool              `yaml:"crumbs"`
	Labels      map[string]string `yaml:"labels"`
	Feed        FeedConfig        `yaml:"feed"`
}

// Load reads the manifest at path, applies environment overrides, and fills
// in defaults. A missing manifest file is not an error; defaults plus the
// environment fully describe a site.
func Load(path string) (SiteConfig, error) {
	cfg := SiteConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return SiteConfig{}, errors.Wrapf(err, "parsing manifest %s", path)
		}
	case os.IsNotExist(err):
		// Defaults and environment only.
	default:
		return SiteConfig{}, errors.Wrapf(err, "reading manifest %s", path)
	}

	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

func (c *SiteConfig) applyEnv() {
	if v := os.Getenv(EnvRoot); v != "" {
		c.Root = v
	}
	if v := os.Getenv(EnvTitle); v != "" {
		c.Title = v
	}
	if v := os.Getenv(EnvOrigin); v != "" {
		c.Origin = v
	}
	if v, ok := parseBool(os.Getenv(EnvCrumbs)); ok {
		c.Crumbs = v
	}
}

func (c *SiteConfig) normalize() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Content == "" {
		c.Content = DefaultContent
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Feed.MaxItems <= 0 {
		c.Feed.MaxItems = 10
	}
	c.Root = NormalizeRoot(c.Root)
	c.Origin = strings.TrimRight(strings.TrimSpace(c.Origin), "/")
}

// validate rejects settings the build stages cannot honor. Asset paths
// double as URL paths under the site root and must stay inside the
// project directory.
func (c SiteConfig) validate() error {
	for _, p := range []string{c.Stylesheet, c.Script, c.Fonts} {
		if p == "" {
			continue
		}
		clean := path.Clean(filepath.ToSlash(p))
		if clean == ".." || strings.HasPrefix(clean, "../") {
			return errors.Errorf("asset path %s escapes the project directory", p)
		}
	}
	return nil
}

// RootLabel returns the display label for the root breadcrumb.
func (c SiteConfig) RootLabel() string {
	if label, ok := c.Labels["/"]; ok && label != "" {
		return label
	}
	return HomeLabel
}

// NormalizeRoot forces a URL path prefix into canonical "/…/" form. The
// empty prefix normalizes to "/".
func NormalizeRoot(root string) string {
	root = strings.TrimSpace(root)
	if root == "" || root == "/" {
		return "/"
	}
	if !strings.HasPrefix(root, "/") {
		root = "/" + root
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root
}

// parseBool accepts the usual boolean-ish spellings. The second return is
// false when the value is empty or unrecognized, leaving the manifest value
// in effect.
func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, true
	case "0", "f", "false", "n", "no", "off":
		return false, true
	}
	return false, false
}
