package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perfect5th/simplesite/config"
)

var configPath string
var siteConfig config.SiteConfig

var rootCmd = &cobra.Command{
	Use:   "simplesite",
	Short: "Simplesite - Markdown in, browsable site out",
	Long: `Simplesite renders a tree of markdown files into a static HTML site
with the same structure, adding breadcrumbs, an RSS feed, and a sitemap.
Configure it through a site.yaml manifest or SITE_* environment variables.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		siteConfig, err = config.Load(configPath)
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		config.DefaultManifest, "path to the site manifest")
}
