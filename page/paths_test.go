package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	cases := map[string]string{
		"index.md":           "index.html",
		"guides/index.md":    "guides/index.html",
		"guides/setup.md":    "guides/setup.html",
		"a/b/c.md":           "a/b/c.html",
		"notes/v1.2-plan.md": "notes/v1.2-plan.html",
	}
	for in, want := range cases {
		assert.Equal(t, want, OutputPath(in), "input %q", in)
	}
}

func TestPageURL(t *testing.T) {
	cases := map[string]string{
		"index.md":        "/",
		"guides/index.md": "/guides/",
		"guides/setup.md": "/guides/setup.html",
		"a/b/index.md":    "/a/b/",
	}
	for in, want := range cases {
		assert.Equal(t, want, PageURL(in), "input %q", in)
	}
}
