package page

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrMissingRoot is returned when the content root does not exist or is not
// a directory. Nothing is written in that case.
var ErrMissingRoot = errors.New("content root not found")

// Walk calls fn for every markdown file under root, in lexicographic path
// order so repeated builds see the files in the same sequence. Unreadable
// files are logged and skipped; their count is returned. An error from fn
// stops the walk.
func Walk(root string, fn func(SourceFile) error) (int, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Wrap(ErrMissingRoot, root)
		}
		return 0, errors.Wrapf(err, "stat %s", root)
	}
	if !info.IsDir() {
		return 0, errors.Wrapf(ErrMissingRoot, "%s is not a directory", root)
	}

	skipped := 0
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				logrus.WithField("path", p).WithError(err).Warn("Skipping unreadable directory")
				skipped++
				return filepath.SkipDir
			}
			logrus.WithField("path", p).WithError(err).Warn("Skipping unreadable entry")
			skipped++
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		content, readErr := os.ReadFile(p)
		if readErr != nil {
			logrus.WithField("path", p).WithError(readErr).Warn("Skipping unreadable file")
			skipped++
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return errors.Wrapf(relErr, "relative path for %s", p)
		}
		return fn(SourceFile{RelPath: filepath.ToSlash(rel), Content: content})
	})
	if walkErr != nil {
		return skipped, walkErr
	}
	return skipped, nil
}
