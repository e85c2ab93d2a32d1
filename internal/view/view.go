// Package view renders the service's HTML pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/hyperjump/courtfinder/internal/redirect"
	"github.com/hyperjump/courtfinder/internal/search"
)

// Page template names.
const (
	PageHome       = "home"
	PageResults    = "results"
	PageStart      = "start"
	PageOptions    = "options"
	PageNameSearch = "name_search"
	PageCourt      = "court"
	PageNotFound   = "not_found"
	PageError      = "error"
)

var pageNames = []string{PageHome, PageResults, PageStart, PageOptions, PageNameSearch, PageCourt, PageNotFound, PageError}

//go:embed templates
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// Renderer executes page templates. It is safe for concurrent use.
type Renderer struct {
	basePath string
	pages    map[string]*template.Template
}

// NewRenderer parses every page against the shared layout. Links in the
// rendered pages are prefixed with basePath.
func NewRenderer(basePath string) (*Renderer, error) {
	base, err := template.New("layout.html").
		Funcs(funcs(basePath)).
		ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	r := &Renderer{basePath: basePath, pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s page: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// HTML renders the named page and writes it with status. Nothing is written
// when rendering fails, so the caller can still send an error page.
func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, page *Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Assets serves the embedded stylesheet and scripts. Mount it under /assets/.
func Assets() http.Handler {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func funcs(basePath string) template.FuncMap {
	return template.FuncMap{
		"url": func(p string) string {
			return redirect.JoinBase(basePath, p)
		},
		"courtURL": func(slug string) string {
			return redirect.JoinBase(basePath, "/courts/"+slug)
		},
		"searchURL": func(p, query string) string {
			return redirect.SearchPath(redirect.JoinBase(basePath, p), query)
		},
		"highlight": highlight,
		"plural":    plural,
	}
}

// highlight escapes text and wraps the parts matching query in <mark>.
func highlight(text, query string) template.HTML {
	var b strings.Builder
	for _, seg := range search.Highlight(text, query) {
		if seg.Match {
			b.WriteString("<mark>")
			b.WriteString(template.HTMLEscapeString(seg.Text))
			b.WriteString("</mark>")
			continue
		}
		b.WriteString(template.HTMLEscapeString(seg.Text))
	}
	return template.HTML(b.String())
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
