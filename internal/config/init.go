package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Example returns the settings written by Init. They match the development
// profile of the site: feeds off, posts under blog/<slug>/. root is the
// project directory as seen from the settings file, since Load resolves
// relative paths against the file's directory.
func Example(root string) *Settings {
	return &Settings{
		Author:      "Donald Stufft",
		SiteName:    "Caremad",
		Timezone:    "America/New_York",
		DefaultLang: "en",
		Links: []Link{
			{Name: "Go", URL: "https://go.dev/"},
			{Name: "You can modify those links in your settings file", URL: "#"},
		},
		Social: []Link{
			{Name: "You can add links in your settings file", URL: "#"},
		},
		DirectTemplates:  []string{"index"},
		Permalink:        "blog/{slug}/",
		FilenameMetadata: `(?P<date>\d{4}-\d{2}-\d{2})-(?P<slug>.*)`,
		Path:             path.Join(root, "content"),
		Output:           path.Join(root, "output"),
		StaticPaths:      []string{"static"},
		Theme:            path.Join(root, "themes/caremad"),
		Plugins:          []string{"assets"},
		AssetConfig: AssetConfig{
			CompassBin:     path.Join(root, "bin/compass"),
			CompassPlugins: []string{"compass-normalize"},
			CompassConfig:  map[string]string{"http_path": "/theme/"},
		},
		Markdown: Markdown{Engine: "blackfriday"},

		NumFrequentCategories:         5,
		MinPostsForFrequentCategories: 2,
	}
}

// Init writes the example settings to file. The content, output and theme
// paths point below the working directory.
func Init(file string, force bool) error {
	if _, err := os.Stat(file); err == nil && !force {
		return fmt.Errorf("settings file already exists: %s (use --force to overwrite)", file)
	}

	root, err := projectRoot(file)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(Example(root))
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// projectRoot is the working directory relative to the directory of file,
// in slash form: ".." for conf/defaults.yaml.
func projectRoot(file string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(dir, wd)
	if err != nil {
		return "", fmt.Errorf("failed to locate %s from %s: %w", wd, dir, err)
	}
	return filepath.ToSlash(rel), nil
}
