// Package config holds the site settings. Settings are read once at startup
// from one or more YAML profiles and passed explicitly to every component.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrConfigNotFound = errors.New("settings file not found")

// Link is a blogroll or social entry.
type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Feeds struct {
	Domain string `yaml:"domain"`
	// Path of the feed holding every post, empty disables it.
	AllAtom string `yaml:"all_atom"`
	// Pattern with a single %s replaced by the category slug.
	CategoryAtom string `yaml:"category_atom"`
}

type AssetConfig struct {
	CompassBin     string            `yaml:"compass_bin"`
	CompassPlugins []string          `yaml:"compass_plugins"`
	CompassConfig  map[string]string `yaml:"compass_config"`
}

// HTTPPath is where theme assets are published, relative to the output root.
func (a AssetConfig) HTTPPath() string {
	p := strings.Trim(a.CompassConfig["http_path"], "/")
	if p == "" {
		return "theme"
	}
	return p
}

type Markdown struct {
	Engine string `yaml:"engine"`
}

type Settings struct {
	Author      string `yaml:"author"`
	SiteName    string `yaml:"sitename"`
	SiteURL     string `yaml:"siteurl"`
	Timezone    string `yaml:"timezone"`
	DefaultLang string `yaml:"default_lang"`

	RelativeURLs bool `yaml:"relative_urls"`

	Feeds Feeds `yaml:"feeds"`

	DefaultPagination int      `yaml:"default_pagination"`
	DirectTemplates   []string `yaml:"direct_templates"`

	// Every page lists up to NumFrequentCategories categories holding at
	// least MinPostsForFrequentCategories posts. Zero turns the list off.
	NumFrequentCategories         int `yaml:"num_frequent_categories"`
	MinPostsForFrequentCategories int `yaml:"min_posts_for_frequent_categories"`

	Permalink      string `yaml:"article_url"`
	CategorySaveAs string `yaml:"category_save_as"`
	TagSaveAs      string `yaml:"tag_save_as"`
	AuthorSaveAs   string `yaml:"author_save_as"`

	FilenameMetadata string `yaml:"filename_metadata"`

	Path               string   `yaml:"path"`
	Output             string   `yaml:"output"`
	StaticPaths        []string `yaml:"static_paths"`
	IgnoreFiles        []string `yaml:"ignore_files"`
	MarkdownExtensions []string `yaml:"markdown_extensions"`

	Theme       string      `yaml:"theme"`
	Plugins     []string    `yaml:"plugins"`
	AssetConfig AssetConfig `yaml:"asset_config"`

	Links  []Link `yaml:"links"`
	Social []Link `yaml:"social"`

	DeleteOutputDirectory bool `yaml:"delete_output_directory"`

	Markdown Markdown `yaml:"markdown"`

	location   *time.Location
	filenameRe *regexp.Regexp
}

// Load reads the given profiles in order. Keys present in a later profile
// override the earlier ones, so a publish profile can be layered over the
// defaults. Relative paths are resolved against the first profile's directory.
func Load(paths ...string) (*Settings, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no settings file given", ErrConfigNotFound)
	}

	s := &Settings{}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", p, err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), s); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", p, err)
		}
	}

	s.applyDefaults()
	s.normalizePaths(filepath.Dir(paths[0]))

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyDefaults() {
	if s.SiteName == "" {
		s.SiteName = s.Author
	}
	if s.Timezone == "" {
		s.Timezone = "UTC"
	}
	if s.DefaultLang == "" {
		s.DefaultLang = "en"
	}
	if s.Permalink == "" {
		s.Permalink = "blog/{slug}/"
	}
	if s.Feeds.Domain == "" {
		s.Feeds.Domain = s.SiteURL
	}
	if len(s.DirectTemplates) == 0 {
		s.DirectTemplates = []string{"index"}
	}
	if s.Path == "" {
		s.Path = "content"
	}
	if s.Output == "" {
		s.Output = "output"
	}
	if s.StaticPaths == nil {
		s.StaticPaths = []string{"static"}
	}
	if len(s.MarkdownExtensions) == 0 {
		s.MarkdownExtensions = []string{".md", ".markdown"}
	}
	if s.Markdown.Engine == "" {
		s.Markdown.Engine = "blackfriday"
	}
	s.SiteURL = strings.TrimRight(s.SiteURL, "/")
	s.Feeds.Domain = strings.TrimRight(s.Feeds.Domain, "/")
}

// The executable can be called from anywhere, so paths are anchored to the
// directory holding the settings.
func (s *Settings) normalizePaths(baseDir string) {
	s.Path = normalizePath(s.Path, baseDir)
	s.Output = normalizePath(s.Output, baseDir)
	if s.Theme != "" {
		s.Theme = normalizePath(s.Theme, baseDir)
	}
	if s.AssetConfig.CompassBin != "" && strings.ContainsRune(s.AssetConfig.CompassBin, filepath.Separator) {
		s.AssetConfig.CompassBin = normalizePath(s.AssetConfig.CompassBin, baseDir)
	}
}

func normalizePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

// Location is the timezone content dates are interpreted in.
func (s *Settings) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// FilenamePattern is the compiled filename_metadata expression, or nil.
func (s *Settings) FilenamePattern() *regexp.Regexp {
	return s.filenameRe
}

// TemplateDir is the theme's template directory.
func (s *Settings) TemplateDir() string {
	return filepath.Join(s.Theme, "templates")
}

// ThemeStaticDir is the theme's static asset directory.
func (s *Settings) ThemeStaticDir() string {
	return filepath.Join(s.Theme, "static")
}

// URLFor returns the link to a path relative to the output root.
func (s *Settings) URLFor(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	rel = strings.TrimSuffix(rel, "index.html")
	if s.RelativeURLs || s.SiteURL == "" {
		return "/" + rel
	}
	return s.SiteURL + "/" + rel
}
