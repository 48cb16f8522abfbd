// Package writer decides where each piece of the site is written and hands
// the template data to a Renderer.
package writer

import (
	"maps"

	"github.com/caremad/site/internal/config"
	"github.com/caremad/site/internal/content"
)

// Renderer executes template with data and writes the result to dest.
type Renderer interface {
	Render(data map[string]any, template, dest string) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(data map[string]any, template, dest string) error

func (f RendererFunc) Render(data map[string]any, template, dest string) error {
	return f(data, template, dest)
}

// Context is the template data shared by every rendered file.
type Context map[string]any

func NewContext(s *config.Settings, c *content.Collection, categories content.Terms) Context {
	frequent := categories.Frequent(s.NumFrequentCategories, s.MinPostsForFrequentCategories)
	return Context{
		"site":                s,
		"sitename":            s.SiteName,
		"siteurl":             s.SiteURL,
		"author":              s.Author,
		"lang":                s.DefaultLang,
		"links":               s.Links,
		"social":              s.Social,
		"pages":               c.Pages,
		"categories":          categories,
		"frequent_categories": frequent,
		"theme_url":           s.URLFor(s.AssetConfig.HTTPPath() + "/"),
	}
}

func (c Context) with(extra map[string]any) map[string]any {
	data := make(map[string]any, len(c)+len(extra))
	maps.Copy(data, c)
	maps.Copy(data, extra)
	return data
}

func templateFor(it *content.Item, fallback string) string {
	if it.Template != "" {
		return it.Template
	}
	return fallback
}
