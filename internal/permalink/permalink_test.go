package permalink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestination(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"about.html", "about.html"},
		{"blog/old-post.html", "blog/old-post.html"},
		{"blog/my-post/", "blog/my-post/index.html"},
		{"/", "/index.html"},
		{"about", "about.html"},
		{"blog/my-post", "blog/my-post.html"},
		{"notes.htm", "notes.htm.html"},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			got := Destination(tt.slug)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Destination(got), "suffix policy must be idempotent")
		})
	}
}

func TestResolve(t *testing.T) {
	fields := Map{
		"slug":      "hello-world",
		"filename":  "2013-05-01-hello-world",
		"date.year": "2013",
	}

	tests := []struct {
		pattern string
		want    string
	}{
		{"blog/{slug}/", "blog/hello-world/"},
		{"/blog/{slug}/", "blog/hello-world/"},
		{"{{date.year}}/{{filename}}.html", "2013/2013-05-01-hello-world.html"},
		{"{{ slug }}", "hello-world"},
		{"static", "static"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Resolve(tt.pattern, fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	fields := Map{"slug": "x"}

	_, err := Resolve("blog/{title}/", fields)
	require.ErrorIs(t, err, ErrUnknownField)

	for _, pattern := range []string{"blog/{slug", "blog/{{slug}", "blog/slug}", "blog/{}/"} {
		_, err := Resolve(pattern, fields)
		require.ErrorIs(t, err, ErrMalformedPattern, pattern)
	}
}

func TestDestinationFor(t *testing.T) {
	got, err := DestinationFor("blog/{slug}/", Map{"slug": "hello-world"})
	require.NoError(t, err)
	assert.Equal(t, "blog/hello-world/index.html", got)

	got, err = DestinationFor("{slug}", Map{"slug": "about"})
	require.NoError(t, err)
	assert.Equal(t, "about.html", got)

	_, err = DestinationFor("{nope}", Map{})
	require.ErrorIs(t, err, ErrUnknownField)
}
