package writer

import (
	"path/filepath"
	"strconv"

	"github.com/caremad/site/internal/config"
	"github.com/caremad/site/internal/content"
)

// IndexWriter renders the direct templates. "index" goes to index.html and
// is paginated when pagination is on; any other template x goes to
// x/index.html with every post.
type IndexWriter struct {
	renderer  Renderer
	outputDir string
	templates []string
	perPage   int
	urlFor    func(string) string
}

func NewIndexWriter(r Renderer, s *config.Settings) *IndexWriter {
	return &IndexWriter{
		renderer:  r,
		outputDir: s.Output,
		templates: s.DirectTemplates,
		perPage:   s.DefaultPagination,
		urlFor:    s.URLFor,
	}
}

// PageRelPath is the slash separated output path of page n (1-based) of a
// direct template.
func PageRelPath(name string, n int) string {
	base := ""
	if name != "index" {
		base = name + "/"
	}
	if n <= 1 {
		return base + "index.html"
	}
	return base + "page/" + strconv.Itoa(n) + "/index.html"
}

func (w *IndexWriter) Write(posts content.Items, ctx Context) error {
	for _, name := range w.templates {
		chunks := []content.Items{posts}
		if name == "index" && w.perPage > 0 {
			chunks = paginate(posts, w.perPage)
		}

		for i, chunk := range chunks {
			n := i + 1
			data := ctx.with(map[string]any{
				"posts":       chunk,
				"all_posts":   posts,
				"page_name":   name,
				"page_number": n,
				"page_count":  len(chunks),
			})
			if n > 1 {
				data["prev_url"] = w.urlFor(PageRelPath(name, n-1))
			}
			if n < len(chunks) {
				data["next_url"] = w.urlFor(PageRelPath(name, n+1))
			}

			dest := filepath.Join(w.outputDir, filepath.FromSlash(PageRelPath(name, n)))
			if err := w.renderer.Render(data, name+".html", dest); err != nil {
				return err
			}
		}
	}
	return nil
}

// paginate always returns at least one, possibly empty, page.
func paginate(posts content.Items, perPage int) []content.Items {
	if len(posts) == 0 {
		return []content.Items{posts}
	}
	chunks := make([]content.Items, 0, len(posts)/perPage+1)
	for start := 0; start < len(posts); start += perPage {
		end := min(start+perPage, len(posts))
		chunks = append(chunks, posts[start:end])
	}
	return chunks
}
