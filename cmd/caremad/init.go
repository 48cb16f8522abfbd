package main

import (
	"github.com/spf13/cobra"

	"github.com/caremad/site/internal/config"
)

var force bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example settings profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settingsPaths[0]
		if err := config.Init(path, force); err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("Wrote settings")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")
}
