package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	atom "github.com/thomas11/atomgenerator"

	"github.com/caremad/site/internal/config"
	"github.com/caremad/site/internal/content"
)

// FeedWriter writes the atom feeds: one with every post and one per
// category. Each is skipped when its path is not configured.
type FeedWriter struct {
	settings *config.Settings
	log      zerolog.Logger
	now      func() time.Time
}

func NewFeedWriter(s *config.Settings, log zerolog.Logger) *FeedWriter {
	return &FeedWriter{settings: s, log: log, now: time.Now}
}

func (w *FeedWriter) Write(posts content.Items, categories content.Terms) error {
	s := w.settings
	if s.Feeds.AllAtom != "" {
		if err := w.writeFeed(s.SiteName, s.Feeds.AllAtom, "", posts); err != nil {
			return err
		}
	}

	if s.Feeds.CategoryAtom == "" {
		return nil
	}
	for _, c := range categories {
		rel := fmt.Sprintf(s.Feeds.CategoryAtom, c.Slug)
		title := s.SiteName + ` Category "` + c.Name + `."`
		if err := w.writeFeed(title, rel, c.SaveAs, c.Posts); err != nil {
			return err
		}
	}
	return nil
}

func (w *FeedWriter) link(rel string) string {
	rel = strings.TrimSuffix(strings.TrimPrefix(rel, "/"), "index.html")
	return w.settings.Feeds.Domain + "/" + rel
}

// renderFeed builds the feed stored at rel. It links to the listing page
// at pageRel, or to the site root when pageRel is empty.
func (w *FeedWriter) renderFeed(title, rel, pageRel string, posts content.Items) ([]byte, error) {
	feed := atom.Feed{
		Title:   title,
		Link:    w.link(pageRel),
		PubDate: w.now(),
	}
	feed.AddAuthor(atom.Author{
		Name: w.settings.Author,
		Uri:  w.link(pageRel),
	})

	for _, p := range posts {
		if p.Kind != content.Post {
			continue
		}
		feed.AddEntry(w.entryFor(p))
	}

	if errs := feed.Validate(); len(errs) > 0 {
		w.log.Error().Str("feed", rel).Int("errors", len(errs)).Msg("Atom feed is not valid")
		for _, e := range errs {
			w.log.Error().Str("feed", rel).Err(e).Msg("Atom validation error")
		}
		return nil, errs[0]
	}

	return feed.GenXml()
}

func (w *FeedWriter) entryFor(p *content.Item) *atom.Entry {
	e := &atom.Entry{
		Title:       p.Title,
		Description: p.Summary,
		Link:        w.link(p.SaveAs),
		PubDate:     p.Date,
		Content:     string(p.Content),
	}
	for _, c := range p.Categories {
		e.AddCategory(atom.Category{Term: c})
	}
	return e
}

func (w *FeedWriter) writeFeed(title, rel, pageRel string, posts content.Items) error {
	xml, err := w.renderFeed(title, rel, pageRel, posts)
	if err != nil {
		return err
	}

	dest := filepath.Join(w.settings.Output, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), 0o775); err != nil {
		return err
	}
	w.log.Debug().Str("dest", dest).Int("entries", len(posts)).Msg("Writing feed")
	return os.WriteFile(dest, xml, os.FileMode(0o664))
}
