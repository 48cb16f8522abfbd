package main

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/caremad/site/internal/config"
)

var (
	settingsPaths []string
	verbose       bool

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
)

var rootCmd = &cobra.Command{
	Use:   "caremad",
	Short: "Static blog generator for caremad.io",
	Long: `caremad renders the markdown posts and pages of the content directory
through the configured theme and writes the site to the output directory.

Settings profiles are applied in order, so a publish profile can be layered
over the defaults:

  caremad build -s conf/defaults.yaml -s conf/publish.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&settingsPaths, "settings", "s", []string{"conf/defaults.yaml"}, "settings profile, repeat to layer profiles")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(buildCmd, serveCmd, initCmd)
}

func loadSettings() (*config.Settings, error) {
	conf, err := config.Load(settingsPaths...)
	if err != nil {
		return nil, err
	}
	logger.Debug().Strs("profiles", settingsPaths).Str("output", conf.Output).Msg("Loaded settings")
	return conf, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("caremad failed")
		os.Exit(1)
	}
}
