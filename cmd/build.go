package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/perfect5th/simplesite/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a static version of the site",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Building static site...")

		summary, err := site.NewBuilder(siteConfig).Build()
		if err != nil {
			logrus.WithError(err).Fatal("Build failed")
		}

		fmt.Printf("Generated %d pages and %d assets in ./%s",
			summary.Pages, summary.Assets, siteConfig.Output)
		if summary.Skipped > 0 {
			fmt.Printf(" (%d sources skipped)", summary.Skipped)
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
