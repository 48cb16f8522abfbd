package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremad/site/internal/config"
)

func TestLoad(t *testing.T) {
	plugins, err := Load([]string{"assets"})
	require.NoError(t, err)
	require.Len(t, plugins, 1)
	assert.Equal(t, "assets", plugins[0].Name())

	_, err = Load([]string{"assets", "gzip_cache"})
	require.ErrorIs(t, err, ErrUnknownPlugin)
	assert.Contains(t, err.Error(), "gzip_cache")
}

func TestAssetsCopiesThemeStatic(t *testing.T) {
	theme := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(theme, "static", "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(theme, "static", "css", "main.css"), []byte("body{}"), 0o644))

	s := &config.Settings{
		Theme:  theme,
		Output: t.TempDir(),
		AssetConfig: config.AssetConfig{
			CompassBin:    "/usr/bin/compass",
			CompassConfig: map[string]string{"http_path": "/static/theme/"},
		},
	}

	require.NoError(t, assets{}.Run(s, zerolog.Nop()))

	out, err := os.ReadFile(filepath.Join(s.Output, "static", "theme", "css", "main.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(out))
}

func TestAssetsWithoutStaticDir(t *testing.T) {
	s := &config.Settings{Theme: t.TempDir(), Output: t.TempDir()}
	require.NoError(t, assets{}.Run(s, zerolog.Nop()))

	entries, err := os.ReadDir(s.Output)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
