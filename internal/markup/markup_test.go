package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverters(t *testing.T) {
	src := []byte("# Title\n\nSome *emphasis* and ~~strike~~.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")

	for _, engine := range []string{"blackfriday", "goldmark"} {
		t.Run(engine, func(t *testing.T) {
			c, err := New(engine)
			require.NoError(t, err)

			out, err := c.Convert(src)
			require.NoError(t, err)

			html := string(out)
			assert.Contains(t, html, "<h1")
			assert.Contains(t, html, "<em>emphasis</em>")
			assert.Contains(t, html, "<del>strike</del>")
			assert.Contains(t, html, "<table>")
		})
	}
}

func TestNewUnknownEngine(t *testing.T) {
	_, err := New("pandoc")
	require.Error(t, err)
}
