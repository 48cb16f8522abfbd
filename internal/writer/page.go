package writer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caremad/site/internal/config"
	"github.com/caremad/site/internal/content"
)

var ErrOutsideSource = errors.New("page is outside the content directory")

// PageWriter keeps the source layout of pages: <src>/docs/setup.md is
// written to <out>/docs/setup/index.html.
type PageWriter struct {
	renderer  Renderer
	sourceDir string
	outputDir string
	template  string
}

func NewPageWriter(r Renderer, s *config.Settings) *PageWriter {
	return &PageWriter{
		renderer:  r,
		sourceDir: s.Path,
		outputDir: s.Output,
		template:  "page.html",
	}
}

// RelPath is the slash separated path of p below the output root.
func (w *PageWriter) RelPath(p *content.Item) (string, error) {
	rel, err := filepath.Rel(w.sourceDir, p.Filepath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is not below %s", ErrOutsideSource, p.Filepath, w.sourceDir)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel) + "/index.html", nil
}

// Destination is the file p is written to.
func (w *PageWriter) Destination(p *content.Item) (string, error) {
	rel, err := w.RelPath(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.outputDir, filepath.FromSlash(rel)), nil
}

func (w *PageWriter) Write(pages content.Items, ctx Context) error {
	for _, p := range pages {
		dest, err := w.Destination(p)
		if err != nil {
			return err
		}
		data := ctx.with(map[string]any{
			"post":       p,
			"page_title": p.Title,
		})
		if err := w.renderer.Render(data, templateFor(p, w.template), dest); err != nil {
			return err
		}
	}
	return nil
}
