package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"
)

// ValidationError names the offending settings key.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid setting %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid setting %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

var knownEngines = map[string]bool{
	"blackfriday": true,
	"goldmark":    true,
}

// Validate checks the settings and caches the derived timezone and
// filename expression.
func (s *Settings) Validate() error {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return &ValidationError{Field: "timezone", Reason: "unknown timezone " + s.Timezone, Err: err}
	}
	s.location = loc

	if s.FilenameMetadata != "" {
		re, err := regexp.Compile(s.FilenameMetadata)
		if err != nil {
			return &ValidationError{Field: "filename_metadata", Reason: "does not compile", Err: err}
		}
		s.filenameRe = re
	}

	if s.Feeds.CategoryAtom != "" && strings.Count(s.Feeds.CategoryAtom, "%s") != 1 {
		return &ValidationError{Field: "feeds.category_atom", Reason: "must contain exactly one %s"}
	}

	if strings.TrimSpace(s.Permalink) == "" {
		return &ValidationError{Field: "article_url", Reason: "must not be empty"}
	}

	if !knownEngines[s.Markdown.Engine] {
		return &ValidationError{Field: "markdown.engine", Reason: "unknown engine " + s.Markdown.Engine}
	}

	if s.DefaultPagination < 0 {
		return &ValidationError{Field: "default_pagination", Reason: "must not be negative"}
	}
	if s.NumFrequentCategories < 0 {
		return &ValidationError{Field: "num_frequent_categories", Reason: "must not be negative"}
	}

	return nil
}
