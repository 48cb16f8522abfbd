package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/caremad/site/internal/config"
	"github.com/caremad/site/internal/site"
)

var (
	drafts    bool
	outputDir string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site to the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadSettings()
		if err != nil {
			return err
		}
		if outputDir != "" {
			if conf.Output, err = filepath.Abs(outputDir); err != nil {
				return err
			}
		}
		return renderSite(conf, drafts)
	},
}

func init() {
	buildCmd.Flags().BoolVar(&drafts, "drafts", false, "include content with status: draft")
	buildCmd.Flags().StringVarP(&outputDir, "output", "o", "", "override the output directory")
}

func renderSite(conf *config.Settings, drafts bool) error {
	s, err := site.Read(conf, drafts, site.WithLogger(logger))
	if err != nil {
		return err
	}
	return s.Build()
}
