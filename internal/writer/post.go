package writer

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/caremad/site/internal/config"
	"github.com/caremad/site/internal/content"
	"github.com/caremad/site/internal/permalink"
)

var ErrOutsideOutput = errors.New("post would be written outside the output directory")

// PostWriter writes every post to the output root joined with its resolved
// permalink.
type PostWriter struct {
	renderer  Renderer
	outputDir string
	permalink string
	template  string
}

func NewPostWriter(r Renderer, s *config.Settings) *PostWriter {
	return &PostWriter{
		renderer:  r,
		outputDir: s.Output,
		permalink: s.Permalink,
		template:  "post.html",
	}
}

// RelPath is the slash separated path of p below the output root.
func (w *PostWriter) RelPath(p *content.Item) (string, error) {
	dest, err := permalink.DestinationFor(w.permalink, p)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", p.Filepath, err)
	}
	// Slugs come from front matter and may climb out with "..".
	dest = path.Clean(dest)
	if dest == ".." || strings.HasPrefix(dest, "../") {
		return "", fmt.Errorf("%w: %s resolves to %s", ErrOutsideOutput, p.Filepath, dest)
	}
	return dest, nil
}

// Destination is the file p is written to.
func (w *PostWriter) Destination(p *content.Item) (string, error) {
	rel, err := w.RelPath(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.outputDir, filepath.FromSlash(rel)), nil
}

func (w *PostWriter) Write(posts content.Items, ctx Context) error {
	for _, p := range posts {
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
