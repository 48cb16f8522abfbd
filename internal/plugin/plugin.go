// Package plugin runs named post-build steps listed in the settings.
package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/otiai10/copy"
	"github.com/rs/zerolog"

	"github.com/caremad/site/internal/config"
)

var ErrUnknownPlugin = errors.New("unknown plugin")

type Plugin interface {
	Name() string
	Run(s *config.Settings, log zerolog.Logger) error
}

var registry = map[string]func() Plugin{
	"assets": func() Plugin { return assets{} },
}

// Names lists the registered plugins.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Load returns the plugins in the order they are listed.
func Load(names []string) ([]Plugin, error) {
	plugins := make([]Plugin, 0, len(names))
	for _, n := range names {
		newPlugin, ok := registry[n]
		if !ok {
			return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownPlugin, n, Names())
		}
		plugins = append(plugins, newPlugin())
	}
	return plugins, nil
}

// assets publishes the theme's static files under the asset http path.
// Stylesheet compilation is left to the external toolchain named by
// compass_bin.
type assets struct{}

func (assets) Name() string { return "assets" }

func (assets) Run(s *config.Settings, log zerolog.Logger) error {
	if s.Theme == "" {
		return nil
	}
	src := s.ThemeStaticDir()
	if _, err := os.Stat(src); os.IsNotExist(err) {
		log.Debug().Str("dir", src).Msg("Theme has no static directory")
		return nil
	}

	if s.AssetConfig.CompassBin != "" {
		log.Debug().
			Str("compass_bin", s.AssetConfig.CompassBin).
			Strs("compass_plugins", s.AssetConfig.CompassPlugins).
			Msg("Stylesheets are compiled outside the build")
	}

	dest := filepath.Join(s.Output, filepath.FromSlash(s.AssetConfig.HTTPPath()))
	log.Info().Str("src", src).Str("dest", dest).Msg("Copying theme assets")
	return copy.Copy(src, dest)
}
