package content

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/caremad/site/internal/config"
)

// Collection is everything discovered under the content directory.
type Collection struct {
	Posts Items
	Pages Items
}

type frontMatter struct {
	Title      string   `yaml:"title"`
	Slug       string   `yaml:"slug"`
	Date       string   `yaml:"date"`
	Author     string   `yaml:"author"`
	Category   string   `yaml:"category"`
	Categories []string `yaml:"categories"`
	Tags       []string `yaml:"tags"`
	Summary    string   `yaml:"summary"`
	Lang       string   `yaml:"lang"`
	Status     string   `yaml:"status"`
	Template   string   `yaml:"template"`
	Type       string   `yaml:"type"`
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Read discovers every markdown file below s.Path. Static paths and files
// matching an ignore pattern are skipped. Drafts are kept only when drafts
// is true.
func Read(s *config.Settings, drafts bool) (*Collection, error) {
	files, err := findContentFiles(s)
	if err != nil {
		return nil, err
	}

	c := &Collection{
		Posts: make(Items, 0, len(files)),
	}
	for _, f := range files {
		it, err := readItem(f, s)
		if err != nil {
			return nil, err
		}
		if it.IsDraft() && !drafts {
			continue
		}
		if it.Kind == Page {
			c.Pages = append(c.Pages, it)
		} else {
			c.Posts = append(c.Posts, it)
		}
	}

	sort.Sort(c.Posts)
	slices.SortFunc(c.Pages, func(a, b *Item) int { return strings.Compare(a.Filepath, b.Filepath) })

	return c, nil
}

func findContentFiles(s *config.Settings) ([]string, error) {
	files := make([]string, 0, 100)

	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.Path, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if isStaticPath(rel, s.StaticPaths) || ignored(rel, s.IgnoreFiles) {
				return fs.SkipDir
			}
			return nil
		}

		if ignored(rel, s.IgnoreFiles) {
			return nil
		}
		if slices.Contains(s.MarkdownExtensions, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(s.Path, walk); err != nil {
		return nil, fmt.Errorf("failed to walk content directory %s: %w", s.Path, err)
	}
	return files, nil
}

func isStaticPath(rel string, staticPaths []string) bool {
	for _, sp := range staticPaths {
		sp = strings.Trim(filepath.ToSlash(sp), "/")
		if rel == sp || strings.HasPrefix(rel, sp+"/") {
			return true
		}
	}
	return false
}

func ignored(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func readItem(path string, s *config.Settings) (*Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, fmt.Errorf("invalid front matter in %v: %w", path, err)
	}

	it := &Item{
		Filepath:   path,
		Body:       body,
		Title:      fm.Title,
		Author:     fm.Author,
		Categories: make([]string, 0, 5),
		Tags:       fm.Tags,
		Summary:    fm.Summary,
		Lang:       fm.Lang,
		Status:     strings.ToLower(strings.TrimSpace(fm.Status)),
		Template:   fm.Template,
	}

	base := it.Filename()
	if re := s.FilenamePattern(); re != nil {
		if m := re.FindStringSubmatch(base); m != nil {
			for i, name := range re.SubexpNames() {
				switch name {
				case "slug":
					it.Slug = m[i]
				case "date":
					d, err := parseDate(m[i], s.Location())
					if err != nil {
						return nil, fmt.Errorf("invalid date in file name %v: %w", path, err)
					}
					it.Date = d
				}
			}
		}
	}

	if fm.Date != "" {
		d, err := parseDate(fm.Date, s.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid date in %v: %w", path, err)
		}
		it.Date = d
	}
	if fm.Slug != "" {
		it.Slug = fm.Slug
	}
	if it.Slug == "" {
		it.Slug = Slugify(base)
	}
	if it.Title == "" {
		it.Title = titleFromSlug(it.Slug)
	}
	if it.Author == "" {
		it.Author = s.Author
	}
	if it.Lang == "" {
		it.Lang = s.DefaultLang
	}

	if fm.Category != "" {
		it.Categories = append(it.Categories, strings.TrimSpace(fm.Category))
	}
	for _, c := range fm.Categories {
		if c = strings.TrimSpace(c); c != "" && !slices.Contains(it.Categories, c) {
			it.Categories = append(it.Categories, c)
		}
	}

	if strings.EqualFold(fm.Type, "page") || it.Date.IsZero() {
		it.Kind = Page
	}

	return it, nil
}

func parseDate(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}
