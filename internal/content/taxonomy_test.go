package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(slug string, day int, categories ...string) *Item {
	return &Item{
		Slug:       slug,
		Title:      slug,
		Date:       time.Date(2013, 5, day, 0, 0, 0, 0, time.UTC),
		Categories: categories,
		Author:     "Donald Stufft",
	}
}

func TestGroupBy(t *testing.T) {
	posts := Items{
		post("c", 3, "Python"),
		post("b", 2, "Security", "python"),
		post("a", 1, "Go"),
	}

	terms := GroupBy(posts, Categories)
	require.Len(t, terms, 3)

	assert.Equal(t, "Python", terms[0].Name)
	assert.Equal(t, "python", terms[0].Slug)
	assert.Len(t, terms[0].Posts, 2)
	assert.Equal(t, "Security", terms[1].Name)
	assert.Equal(t, "Go", terms[2].Name)

	assert.Equal(t, Terms{terms[0]}, terms.Frequent(5, 2))
	assert.Equal(t, terms[:2], terms.Frequent(2, 1))
	assert.Empty(t, terms.Frequent(0, 1))

	assert.Equal(t, "Python: c, b\nSecurity: b\nGo: a\n", terms.String())

	slug, ok := terms[0].Field("slug")
	assert.True(t, ok)
	assert.Equal(t, "python", slug)
}

func TestGroupByAuthors(t *testing.T) {
	terms := GroupBy(Items{post("a", 1), post("b", 2)}, Authors)
	require.Len(t, terms, 1)
	assert.Equal(t, "donald-stufft", terms[0].Slug)
	assert.Equal(t, "May 2, 2013", terms[0].LatestDateFormatted())
}

func TestItemString(t *testing.T) {
	p := post("hello", 1, "Python")
	p.Body = []byte("First post.")

	s := p.String()
	assert.Contains(t, s, "post hello\ntitle: hello\n")
	assert.Contains(t, s, "date: 2013-05-01")
	assert.Contains(t, s, "categories: [Python]\n")
	assert.Contains(t, s, "body: First post.")

	p.Body = make([]byte, 300)
	assert.Contains(t, p.String(), "...")
	assert.Len(t, p.Body, 300, "String must not modify the body")

	page := &Item{Kind: Page, Slug: "about"}
	assert.NotContains(t, page.String(), "date:")
}
