// Package views renders the HTML pages of the site.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"yatube/app/auth"
)

//go:embed templates
var files embed.FS

// Data is the context a page is rendered with.
type Data map[string]any

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template

	mu        sync.RWMutex
	observers []func(name string, data Data)
}

// New parses every page under templates/ together with the layout and includes.
func New() (*Renderer, error) {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		return nil, err
	}
	return NewFromFS(sub)
}

// NewFromFS parses templates from fsys, which must hold base.html,
// includes/*.html and the page directories.
func NewFromFS(fsys fs.FS) (*Renderer, error) {
	shared := template.New("base.html").Funcs(funcs)
	if _, err := shared.ParseFS(fsys, "base.html", "includes/*.html"); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") || path == "base.html" || strings.HasPrefix(path, "includes/") {
			return nil
		}
		t, err := shared.Clone()
		if err != nil {
			return err
		}
		if _, err := t.ParseFS(fsys, path); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		r.pages[path] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Observe registers fn to be called with every rendered page.
func (r *Renderer) Observe(fn func(name string, data Data)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Has reports whether a page named name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render writes page name with status. The viewer and the current path are
// added to data as "User" and "Path".
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data Data) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	if data == nil {
		data = Data{}
	}
	if user, ok := auth.UserFromContext(req.Context()); ok {
		data["User"] = user
	}
	data["Path"] = req.URL.Path
	data["Template"] = name

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	r.mu.RLock()
	for _, fn := range r.observers {
		fn(name, data)
	}
	r.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"linebreaksbr": func(s string) template.HTML {
		escaped := template.HTMLEscapeString(s)
		return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
	},
	"truncatewords": func(s string, n int) string {
		words := strings.Fields(s)
		if len(words) <= n {
			return s
		}
		return strings.Join(words[:n], " ") + " …"
	},
	"truncatechars": func(s string, n int) string {
		if utf8.RuneCountInString(s) <= n {
			return s
		}
		return string([]rune(s)[:n]) + "…"
	},
	"date": func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	},
	"media": func(key string) string {
		return "/media/" + key
	},
	"year": func() int {
		return time.Now().Year()
	},
	"active": func(path, prefix string) bool {
		return path == prefix
	},
}
