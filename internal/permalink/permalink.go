// Package permalink turns a permalink pattern and a content item into the
// relative path the item is written to.
//
// Patterns reference item fields with {key} or {{key}}, for example
// "blog/{slug}/" or "{{date.year}}/{{filename}}.html". The resolved slug is
// then mapped to a file: directory-style slugs get index.html, bare slugs get
// a .html suffix.
package permalink

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownField     = errors.New("unknown permalink field")
	ErrMalformedPattern = errors.New("malformed permalink pattern")
)

// Fields exposes the values a pattern may reference.
type Fields interface {
	Field(key string) (string, bool)
}

// Map is a Fields backed by a plain map.
type Map map[string]string

func (m Map) Field(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Resolve substitutes every placeholder in pattern. A leading slash is
// dropped so the result is always relative.
func Resolve(pattern string, fields Fields) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern))

	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch c {
		case '{':
			open, shut := "{", "}"
			if strings.HasPrefix(pattern[i:], "{{") {
				open, shut = "{{", "}}"
			}
			end := strings.Index(pattern[i+len(open):], shut)
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed %q in %q", ErrMalformedPattern, open, pattern)
			}
			key := strings.TrimSpace(pattern[i+len(open) : i+len(open)+end])
			if key == "" || strings.ContainsAny(key, "{}") {
				return "", fmt.Errorf("%w: bad placeholder in %q", ErrMalformedPattern, pattern)
			}
			v, ok := fields.Field(key)
			if !ok {
				return "", fmt.Errorf("%w: %q in %q", ErrUnknownField, key, pattern)
			}
			b.WriteString(v)
			i += len(open) + end + len(shut)
		case '}':
			return "", fmt.Errorf("%w: single '}' in %q", ErrMalformedPattern, pattern)
		default:
			b.WriteByte(c)
			i++
		}
	}

	return strings.TrimLeft(b.String(), "/"), nil
}

// Destination applies the suffix policy to a resolved slug. The result
// always ends in .html and applying it twice changes nothing.
func Destination(slug string) string {
	switch {
	case strings.HasSuffix(slug, ".html"):
		return slug
	case strings.HasSuffix(slug, "/"):
		return slug + "index.html"
	default:
		return slug + ".html"
	}
}

// DestinationFor resolves pattern against fields and applies the suffix
// policy.
func DestinationFor(pattern string, fields Fields) (string, error) {
	slug, err := Resolve(pattern, fields)
	if err != nil {
		return "", err
	}
	return Destination(slug), nil
}
