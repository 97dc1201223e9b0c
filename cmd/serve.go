package cmd

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/perfect5th/simplesite/config"
	"github.com/perfect5th/simplesite/handlers"
	"github.com/perfect5th/simplesite/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site, serve it locally, and rebuild on changes",
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")

		builder := site.NewBuilder(siteConfig)
		if _, err := builder.Build(); err != nil {
			logrus.WithError(err).Fatal("Initial build failed")
		}

		watcher, err := watchForChanges(builder, siteConfig)
		if err != nil {
			logrus.WithError(err).Warn("Live rebuild disabled")
		} else {
			defer watcher.Close()
		}

		router := handlers.SetupRouter(siteConfig)
		logrus.Infof("Serving ./%s on http://localhost:%s%s",
			siteConfig.Output, port, siteConfig.Root)

		logrus.Fatal(http.ListenAndServe(":"+port, router))
	},
}

// watchForChanges rebuilds the site, after a short debounce, whenever a
// source file changes. Events under the output directory are ignored so
// rebuild writes never trigger another rebuild.
func watchForChanges(builder *site.Builder, cfg config.SiteConfig) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	output := filepath.Clean(cfg.Output)

	go func() {
		var buildTimer *time.Timer
		debounce := 500 * time.Millisecond

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if insidePath(event.Name, output) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}

				logrus.WithField("path", event.Name).Debug("Change detected")

				if event.Has(fsnotify.Create) && isDir(event.Name) {
					if err := watcher.Add(event.Name); err != nil {
						logrus.WithField("path", event.Name).WithError(err).Warn("Could not watch new directory")
					}
				}

				if buildTimer != nil {
					buildTimer.Stop()
				}
				buildTimer = time.AfterFunc(debounce, func() {
					logrus.Info("Rebuilding site...")
					if _, err := builder.Build(); err != nil {
						logrus.WithError(err).Error("Rebuild failed")
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.WithError(err).Warn("Watcher error")
			}
		}
	}()

	// The content and font trees are watched recursively; for single-file
	// assets, watching the parent directory is enough.
	for _, root := range []string{cfg.Content, cfg.Fonts} {
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if watchErr := watcher.Add(path); watchErr != nil {
					logrus.WithField("path", path).WithError(watchErr).Warn("Could not watch directory")
				}
			}
			return nil
		})
	}

	for _, f := range []string{cfg.Stylesheet, cfg.Script, cfg.Template} {
		if f == "" {
			continue
		}
		if err := watcher.Add(filepath.Dir(f)); err != nil {
			logrus.WithField("path", f).WithError(err).Warn("Could not watch asset directory")
		}
	}

	return watcher, nil
}

func insidePath(p, root string) bool {
	p = filepath.Clean(p)
	return p == root || strings.HasPrefix(p, root+string(filepath.Separator))
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to serve the site on")
}
