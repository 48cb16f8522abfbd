package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultsYAML = `
author: Donald Stufft
sitename: Caremad
timezone: America/New_York
default_lang: en
default_pagination: 0
direct_templates: [index]
article_url: "blog/{slug}/"
filename_metadata: '(?P<date>\d{4}-\d{2}-\d{2})-(?P<slug>.*)'
theme: themes/caremad
plugins: [assets]
asset_config:
  compass_bin: bin/compass
  compass_plugins: [compass-normalize]
  compass_config:
    http_path: /theme/
links:
  - name: Go
    url: https://go.dev/
`

const publishYAML = `
siteurl: https://caremad.io/
relative_urls: false
feeds:
  all_atom: feeds/all.atom.xml
  category_atom: feeds/%s.atom.xml
delete_output_directory: true
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "defaults.yaml", defaultsYAML)

	s, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "Caremad", s.SiteName)
	assert.Equal(t, "blog/{slug}/", s.Permalink)
	assert.Equal(t, filepath.Join(dir, "content"), s.Path)
	assert.Equal(t, filepath.Join(dir, "output"), s.Output)
	assert.Equal(t, filepath.Join(dir, "themes/caremad"), s.Theme)
	assert.Equal(t, filepath.Join(dir, "bin/compass"), s.AssetConfig.CompassBin)
	assert.Equal(t, "theme", s.AssetConfig.HTTPPath())
	assert.Equal(t, "America/New_York", s.Location().String())
	assert.NotNil(t, s.FilenamePattern())
	assert.Empty(t, s.Feeds.AllAtom)
	assert.False(t, s.DeleteOutputDirectory)
	assert.Equal(t, "blackfriday", s.Markdown.Engine)
}

func TestLoadPublishOverlay(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "defaults.yaml", defaultsYAML)
	publish := writeFile(t, dir, "publish.yaml", publishYAML)

	s, err := Load(base, publish)
	require.NoError(t, err)

	assert.Equal(t, "Donald Stufft", s.Author)
	assert.Equal(t, "https://caremad.io", s.SiteURL)
	assert.Equal(t, "https://caremad.io", s.Feeds.Domain)
	assert.Equal(t, "feeds/all.atom.xml", s.Feeds.AllAtom)
	assert.Equal(t, "feeds/%s.atom.xml", s.Feeds.CategoryAtom)
	assert.True(t, s.DeleteOutputDirectory)
	assert.Equal(t, []string{"assets"}, s.Plugins)
	assert.Equal(t, "https://caremad.io/blog/x/", s.URLFor("blog/x/index.html"))
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("CAREMAD_SITEURL", "https://example.org")
	dir := t.TempDir()
	p := writeFile(t, dir, "s.yaml", "siteurl: ${CAREMAD_SITEURL}\n")

	s, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", s.SiteURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, ErrConfigNotFound)

	_, err = Load()
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"bad timezone", "timezone: Mars/Olympus\n", "timezone"},
		{"bad filename regexp", "filename_metadata: '(?P<date'\n", "filename_metadata"},
		{"category feed without placeholder", "feeds:\n  category_atom: feeds/cat.xml\n", "feeds.category_atom"},
		{"unknown engine", "markdown:\n  engine: pandoc\n", "markdown.engine"},
		{"negative pagination", "default_pagination: -1\n", "default_pagination"},
		{"negative frequent categories", "num_frequent_categories: -2\n", "num_frequent_categories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "s.yaml", tt.body)
			_, err := Load(p)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestURLFor(t *testing.T) {
	s := &Settings{SiteURL: "https://caremad.io"}
	assert.Equal(t, "https://caremad.io/", s.URLFor("index.html"))
	assert.Equal(t, "https://caremad.io/about.html", s.URLFor("about.html"))

	s.RelativeURLs = true
	assert.Equal(t, "/blog/hello/", s.URLFor("blog/hello/index.html"))
}

func TestInit(t *testing.T) {
	p := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, Init(p, false))
	require.Error(t, Init(p, false))
	require.NoError(t, Init(p, true))

	s, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "Caremad", s.SiteName)
	assert.Equal(t, []string{"compass-normalize"}, s.AssetConfig.CompassPlugins)
	assert.Equal(t, "/theme/", s.AssetConfig.CompassConfig["http_path"])
	assert.Equal(t, 5, s.NumFrequentCategories)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "content"), s.Path)
	assert.Equal(t, filepath.Join(wd, "output"), s.Output)
	assert.Equal(t, filepath.Join(wd, "themes", "caremad"), s.Theme)
}

func TestInitInSubdirectory(t *testing.T) {
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	require.NoError(t, Init(filepath.Join("conf", "defaults.yaml"), false))

	raw, err := os.ReadFile(filepath.Join(dir, "conf", "defaults.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "path: ../content\n")
	assert.Contains(t, string(raw), "output: ../output\n")
	assert.Contains(t, string(raw), "theme: ../themes/caremad\n")
}

func TestLoadRepositoryProfiles(t *testing.T) {
	dev, err := Load("../../conf/defaults.yaml")
	require.NoError(t, err)
	assert.True(t, dev.RelativeURLs)
	assert.Empty(t, dev.Feeds.AllAtom)
	assert.Equal(t, 5, dev.NumFrequentCategories)
	assert.Equal(t, 2, dev.MinPostsForFrequentCategories)
	assert.Equal(t, "/blog/hello/", dev.URLFor("blog/hello/index.html"))

	publish, err := Load("../../conf/defaults.yaml", "../../conf/publish.yaml")
	require.NoError(t, err)
	assert.Equal(t, "https://caremad.io", publish.SiteURL)
	assert.Equal(t, "feeds/%s.atom.xml", publish.Feeds.CategoryAtom)
	assert.True(t, publish.DeleteOutputDirectory)
	assert.Equal(t, dev.Path, publish.Path)
	assert.Equal(t, "https://caremad.io/blog/hello/", publish.URLFor("blog/hello/index.html"))
}
