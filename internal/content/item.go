// Package content models posts and pages and reads them from the content
// directory.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"
)

type Kind int

const (
	// Post is a dated entry of the chronological stream.
	Post Kind = iota
	// Page is a standalone page with no place in the post stream.
	Page
)

func (k Kind) String() string {
	if k == Page {
		return "page"
	}
	return "post"
}

// Item is a single post or page. Items are immutable once read, except for
// Content, SaveAs and URL which the build fills in.
type Item struct {
	Kind       Kind
	Title      string
	Slug       string
	Date       time.Time
	Author     string
	Categories []string
	Tags       []string
	Summary    string
	Lang       string
	Status     string
	// Template overrides the writer's default template when set.
	Template string
	Filepath string
	Body     []byte

	Content template.HTML
	// SaveAs is the slash separated output path below the output root.
	SaveAs string
	URL    string
}

func (it *Item) IsDraft() bool { return it.Status == "draft" }

// Filename is the source base name without its extension.
func (it *Item) Filename() string {
	base := filepath.Base(it.Filepath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Category is the first category, or "" if the item has none.
func (it *Item) Category() string {
	if len(it.Categories) == 0 {
		return ""
	}
	return it.Categories[0]
}

// Field implements permalink.Fields.
func (it *Item) Field(key string) (string, bool) {
	switch key {
	case "slug":
		return it.Slug, true
	case "title":
		return Slugify(it.Title), true
	case "filename":
		return it.Filename(), true
	case "category":
		return Slugify(it.Category()), true
	case "author":
		return Slugify(it.Author), true
	case "lang":
		return it.Lang, true
	}

	if it.Date.IsZero() {
		return "", false
	}
	switch key {
	case "date":
		return it.Date.Format("2006-01-02"), true
	case "date.year":
		return it.Date.Format("2006"), true
	case "date.month":
		return it.Date.Format("01"), true
	case "date.day":
		return it.Date.Format("02"), true
	}
	return "", false
}

// Called from templates
func (it *Item) FormatDate() string {
	return it.Date.Format("January 2, 2006")
}

func (it *Item) FormatDateShort() string {
	return it.Date.Format("Jan 2, 2006")
}

func (it *Item) String() string {
	b := new(bytes.Buffer)
	b.WriteString(it.Kind.String())
	b.WriteString(" ")
	b.WriteString(it.Slug)
	b.WriteString("\ntitle: ")
	b.WriteString(it.Title)
	if !it.Date.IsZero() {
		b.WriteString("\ndate: ")
		b.WriteString(it.Date.String())
	}
	b.WriteString("\ncategories: ")
	fmt.Fprintln(b, it.Categories)

	body := it.Body
	if len(body) > 200 {
		body = append(body[:200:200], '.', '.', '.')
	}
	b.WriteString("body: ")
	b.Write(body)

	return b.String()
}

// Sorted newest first.
type Items []*Item

func (is Items) Len() int      { return len(is) }
func (is Items) Swap(i, j int) { is[i], is[j] = is[j], is[i] }
func (is Items) Less(i, j int) bool {
	if is[i].Date.Equal(is[j].Date) {
		return is[i].Slug < is[j].Slug
	}
	return is[i].Date.After(is[j].Date)
}

func (is Items) latestDate() time.Time {
	var t time.Time
	for _, it := range is {
		if it.Date.After(t) {
			t = it.Date
		}
	}
	return t
}
