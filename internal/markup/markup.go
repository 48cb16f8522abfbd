// Package markup converts markdown bodies to HTML.
package markup

import (
	"bytes"
	"fmt"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type Converter interface {
	Convert(src []byte) ([]byte, error)
}

// New returns the converter registered under engine.
func New(engine string) (Converter, error) {
	switch engine {
	case "", "blackfriday":
		return newBlackfriday(), nil
	case "goldmark":
		return newGoldmark(), nil
	}
	return nil, fmt.Errorf("unknown markdown engine %q", engine)
}

const htmlFlags = blackfriday.UseXHTML |
	blackfriday.Smartypants |
	blackfriday.SmartypantsFractions |
	blackfriday.SmartypantsLatexDashes

const extensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.HeadingIDs

type blackfridayConverter struct {
	params blackfriday.HTMLRendererParameters
}

func newBlackfriday() *blackfridayConverter {
	return &blackfridayConverter{params: blackfriday.HTMLRendererParameters{Flags: htmlFlags}}
}

func (b *blackfridayConverter) Convert(src []byte) ([]byte, error) {
	// The renderer keeps per-document state, so each call gets its own.
	r := blackfriday.NewHTMLRenderer(b.params)
	return blackfriday.Run(src, blackfriday.WithRenderer(r), blackfriday.WithExtensions(extensions)), nil
}

type goldmarkConverter struct {
	md goldmark.Markdown
}

func newGoldmark() *goldmarkConverter {
	return &goldmarkConverter{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
			gmhtml.WithUnsafe(),
		),
	)}
}

func (g *goldmarkConverter) Convert(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
