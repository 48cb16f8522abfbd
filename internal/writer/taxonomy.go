package writer

import (
	"fmt"
	"path/filepath"

	"github.com/caremad/site/internal/config"
	"github.com/caremad/site/internal/content"
	"github.com/caremad/site/internal/permalink"
)

// TaxonomyWriter renders one listing page per category, tag or author. An
// empty save-as pattern disables it.
type TaxonomyWriter struct {
	renderer  Renderer
	outputDir string
	taxonomy  content.Taxonomy
	saveAs    string
	template  string
}

func NewTaxonomyWriter(r Renderer, s *config.Settings, tax content.Taxonomy) *TaxonomyWriter {
	w := &TaxonomyWriter{
		renderer:  r,
		outputDir: s.Output,
		taxonomy:  tax,
		template:  tax.String() + ".html",
	}
	switch tax {
	case content.Categories:
		w.saveAs = s.CategorySaveAs
	case content.Tags:
		w.saveAs = s.TagSaveAs
	case content.Authors:
		w.saveAs = s.AuthorSaveAs
	}
	return w
}

func (w *TaxonomyWriter) Enabled() bool { return w.saveAs != "" }

func (w *TaxonomyWriter) RelPath(t *content.Term) (string, error) {
	dest, err := permalink.DestinationFor(w.saveAs, t)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", w.taxonomy, t.Name, err)
	}
	return dest, nil
}

func (w *TaxonomyWriter) Write(terms content.Terms, ctx Context) error {
	if !w.Enabled() {
		return nil
	}
	for _, t := range terms {
		rel, err := w.RelPath(t)
		if err != nil {
			return err
		}
		data := ctx.with(map[string]any{
			"term":       t,
			"posts":      t.Posts,
			"page_title": t.Name,
		})
		dest := filepath.Join(w.outputDir, filepath.FromSlash(rel))
		if err := w.renderer.Render(data, w.template, dest); err != nil {
			return err
		}
	}
	return nil
}
