package content

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
)

type Taxonomy int

const (
	Categories Taxonomy = iota
	Tags
	Authors
)

func (t Taxonomy) String() string {
	switch t {
	case Tags:
		return "tag"
	case Authors:
		return "author"
	default:
		return "category"
	}
}

func (t Taxonomy) values(it *Item) []string {
	switch t {
	case Tags:
		return it.Tags
	case Authors:
		if it.Author == "" {
			return nil
		}
		return []string{it.Author}
	default:
		return it.Categories
	}
}

// Term is one category, tag or author with its posts.
type Term struct {
	Name  string
	Slug  string
	Posts Items
	// SaveAs and URL are only set when the taxonomy has listing pages.
	SaveAs string
	URL    string
}

// Field implements permalink.Fields.
func (t *Term) Field(key string) (string, bool) {
	switch key {
	case "slug":
		return t.Slug, true
	case "name":
		return t.Name, true
	}
	return "", false
}

func (t *Term) LatestDateFormatted() string {
	return t.Posts.latestDate().Format("Jan 2, 2006")
}

// Terms are ordered by number of posts, then by newest post.
type Terms []*Term

func (ts Terms) String() string {
	b := new(bytes.Buffer)
	for _, t := range ts {
		b.WriteString(t.Name)
		b.WriteString(": ")
		for i, p := range t.Posts {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Title)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Frequent returns the first n terms holding at least minPosts posts.
func (ts Terms) Frequent(n, minPosts int) Terms {
	frequent := make(Terms, 0, max(n, 0))
	for i, t := range ts {
		if i >= n || len(t.Posts) < minPosts {
			break
		}
		frequent = append(frequent, t)
	}
	return frequent
}

// GroupBy groups posts by the given taxonomy. Terms whose names slugify to
// the same value are merged.
func GroupBy(posts Items, tax Taxonomy) Terms {
	byTerm := make(Terms, 0, 20)
	index := make(map[string]*Term)

	for _, p := range posts {
		for _, name := range tax.values(p) {
			slug := Slugify(name)
			if slug == "" {
				continue
			}
			t, ok := index[slug]
			if !ok {
				t = &Term{Name: name, Slug: slug, Posts: make(Items, 0, 10)}
				index[slug] = t
				byTerm = append(byTerm, t)
			}
			t.Posts = append(t.Posts, p)
		}
	}

	slices.SortFunc(byTerm, func(a, b *Term) int {
		// More posts first
		if c := cmp.Compare(len(b.Posts), len(a.Posts)); c != 0 {
			return c
		}
		// then newer first
		if c := b.Posts.latestDate().Compare(a.Posts.latestDate()); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})

	return byTerm
}
