// Package render executes theme templates and writes the result to disk.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// GlobalTemplate is parsed together with every page template when the
// theme has one. It usually holds the outer layout.
const GlobalTemplate = "global.html"

// TemplateRenderer renders named templates from a theme directory.
type TemplateRenderer struct {
	dir   string
	funcs template.FuncMap

	mu    sync.Mutex
	cache map[string]*template.Template
}

func NewTemplateRenderer(dir string) *TemplateRenderer {
	return &TemplateRenderer{
		dir:   dir,
		funcs: defaultFuncs(),
		cache: make(map[string]*template.Template),
	}
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate":      func(d time.Time) string { return d.Format("January 2, 2006") },
		"formatDateShort": func(d time.Time) string { return d.Format("Jan 2, 2006") },
		"isoDate":         func(d time.Time) string { return d.Format(time.RFC3339) },
		"lower":           strings.ToLower,
	}
}

// Render executes name with data and writes the output to dest, creating
// parent directories as needed.
func (r *TemplateRenderer) Render(data map[string]any, name, dest string) error {
	t, err := r.template(name)
	if err != nil {
		return err
	}

	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return fmt.Errorf("failed to execute template %s for %s: %w", name, dest, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o775); err != nil {
		return err
	}
	return os.WriteFile(dest, b.Bytes(), os.FileMode(0o664))
}

func (r *TemplateRenderer) template(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.cache[name]; ok {
		return t, nil
	}

	files := []string{filepath.Join(r.dir, name)}
	global := filepath.Join(r.dir, GlobalTemplate)
	if name != GlobalTemplate {
		if _, err := os.Stat(global); err == nil {
			files = append([]string{global}, files...)
		}
	}

	t, err := template.New(filepath.Base(files[0])).Funcs(r.funcs).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	r.cache[name] = t
	return t, nil
}
