// Package site runs a complete build: read the content, render every post,
// page, listing and feed, then copy static files and run plugins.
package site

import (
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"github.com/rs/zerolog"

	"github.com/caremad/site/internal/config"
	"github.com/caremad/site/internal/content"
	"github.com/caremad/site/internal/markup"
	"github.com/caremad/site/internal/plugin"
	"github.com/caremad/site/internal/render"
	"github.com/caremad/site/internal/writer"
)

var ErrUnsafeOutput = errors.New("refusing to delete output directory")

type Site struct {
	conf      *config.Settings
	log       zerolog.Logger
	content   *content.Collection
	converter markup.Converter
	renderer  writer.Renderer
	plugins   []plugin.Plugin
}

type Option func(*Site)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Site) { s.log = l }
}

// WithRenderer replaces the theme template renderer.
func WithRenderer(r writer.Renderer) Option {
	return func(s *Site) { s.renderer = r }
}

// Read discovers the site's content. Drafts are included when drafts is
// true.
func Read(conf *config.Settings, drafts bool, opts ...Option) (*Site, error) {
	s := &Site{
		conf: conf,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.converter, err = markup.New(conf.Markdown.Engine); err != nil {
		return nil, err
	}
	if s.plugins, err = plugin.Load(conf.Plugins); err != nil {
		return nil, err
	}
	if s.renderer == nil {
		s.renderer = render.NewTemplateRenderer(conf.TemplateDir())
	}

	if s.content, err = content.Read(conf, drafts); err != nil {
		return nil, err
	}
	s.log.Info().Int("posts", len(s.content.Posts)).Int("pages", len(s.content.Pages)).Msg("Read content")

	return s, nil
}

func (s *Site) Posts() content.Items { return s.content.Posts }
func (s *Site) Pages() content.Items { return s.content.Pages }

// Build writes the whole site to the output directory. The first error
// stops the build.
func (s *Site) Build() error {
	s.log.Info().Str("dir", s.conf.Output).Msg("Writing site")

	if err := s.prepareOutput(); err != nil {
		return err
	}

	if err := s.convert(); err != nil {
		return err
	}

	posts := writer.NewPostWriter(s.renderer, s.conf)
	pages := writer.NewPageWriter(s.renderer, s.conf)
	if err := s.assignPaths(posts, pages); err != nil {
		return err
	}

	taxonomies := []content.Taxonomy{content.Categories, content.Tags, content.Authors}
	terms := make(map[content.Taxonomy]content.Terms, len(taxonomies))
	taxWriters := make(map[content.Taxonomy]*writer.TaxonomyWriter, len(taxonomies))
	for _, tax := range taxonomies {
		w := writer.NewTaxonomyWriter(s.renderer, s.conf, tax)
		ts := content.GroupBy(s.content.Posts, tax)
		if w.Enabled() {
			for _, t := range ts {
				rel, err := w.RelPath(t)
				if err != nil {
					return err
				}
				t.SaveAs = rel
				t.URL = s.conf.URLFor(rel)
			}
		}
		s.log.Debug().Stringer(tax.String(), ts).Msg("Grouped posts")
		terms[tax] = ts
		taxWriters[tax] = w
	}

	ctx := writer.NewContext(s.conf, s.content, terms[content.Categories])
	ctx["tags"] = terms[content.Tags]
	ctx["authors"] = terms[content.Authors]

	if err := posts.Write(s.content.Posts, ctx); err != nil {
		return err
	}
	if err := pages.Write(s.content.Pages, ctx); err != nil {
		return err
	}
	if err := writer.NewIndexWriter(s.renderer, s.conf).Write(s.content.Posts, ctx); err != nil {
		return err
	}
	for _, tax := range taxonomies {
		if err := taxWriters[tax].Write(terms[tax], ctx); err != nil {
			return err
		}
	}
	if err := writer.NewFeedWriter(s.conf, s.log).Write(s.content.Posts, terms[content.Categories]); err != nil {
		return err
	}

	if err := s.CopyStaticFiles(); err != nil {
		return err
	}
	return s.runPlugins()
}

func (s *Site) prepareOutput() error {
	out := s.conf.Output
	if s.conf.DeleteOutputDirectory {
		if contains(out, s.conf.Path) || (s.conf.Theme != "" && contains(out, s.conf.Theme)) {
			return fmt.Errorf("%w %s: it contains the content or theme directory", ErrUnsafeOutput, out)
		}
		s.log.Info().Str("dir", out).Msg("Deleting output directory")
		if err := os.RemoveAll(out); err != nil {
			return fmt.Errorf("failed to remove output directory %s: %w", out, err)
		}
	}
	if err := os.MkdirAll(out, 0o775); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", out, err)
	}
	return nil
}

func contains(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (s *Site) convert() error {
	for _, items := range []content.Items{s.content.Posts, s.content.Pages} {
		for _, it := range items {
			html, err := s.converter.Convert(it.Body)
			if err != nil {
				return fmt.Errorf("failed to convert %s: %w", it.Filepath, err)
			}
			it.Content = template.HTML(html)
		}
	}
	return nil
}

func (s *Site) assignPaths(posts *writer.PostWriter, pages *writer.PageWriter) error {
	for _, p := range s.content.Posts {
		rel, err := posts.RelPath(p)
		if err != nil {
			return err
		}
		p.SaveAs = rel
		p.URL = s.conf.URLFor(rel)
		s.log.Debug().Stringer("post", p).Str("save_as", rel).Msg("Assigned path")
	}
	for _, p := range s.content.Pages {
		rel, err := pages.RelPath(p)
		if err != nil {
			return err
		}
		p.SaveAs = rel
		p.URL = s.conf.URLFor(rel)
		s.log.Debug().Stringer("page", p).Str("save_as", rel).Msg("Assigned path")
	}
	return nil
}

// CopyStaticFiles copies every configured static path below the content
// directory to the same place below the output directory.
func (s *Site) CopyStaticFiles() error {
	for _, sp := range s.conf.StaticPaths {
		src := filepath.Join(s.conf.Path, filepath.FromSlash(sp))
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		dest := filepath.Join(s.conf.Output, filepath.FromSlash(sp))
		s.log.Info().Str("src", src).Str("dest", dest).Msg("Recursively copying static files")
		if err := copy.Copy(src, dest); err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) runPlugins() error {
	for _, p := range s.plugins {
		s.log.Debug().Str("plugin", p.Name()).Msg("Running plugin")
		if err := p.Run(s.conf, s.log.With().Str("plugin", p.Name()).Logger()); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
	}
	return nil
}
