// Package pages renders the site's HTML pages and serves static assets.
package pages

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// LayoutFile wraps every page; each page file defines a "content" block
const LayoutFile = "layout.html"

var pageFiles = map[string]string{
	"index":         "index.html",
	"writers":       "writers_list.html",
	"writer_detail": "writer_detail.html",
	"chess":         "chess.html",
	"quiz":          "quiz.html",
}

// PageData is passed to every template
type PageData struct {
	Title    string
	Page     string
	WriterID string
}

// Pages holds parsed templates and the static file root
type Pages struct {
	templates map[string]*template.Template
	staticDir string
}

// New parses the page templates in templateDir. Every page must be present.
func New(templateDir, staticDir string) (*Pages, error) {
	layout := filepath.Join(templateDir, LayoutFile)
	if _, err := os.Stat(layout); err != nil {
		return nil, fmt.Errorf("failed to find layout template: %w", err)
	}

	templates := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		tmpl, err := template.ParseFiles(layout, filepath.Join(templateDir, file))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Pages{templates: templates, staticDir: staticDir}, nil
}

func (p *Pages) render(w http.ResponseWriter, page string, data PageData) {
	data.Page = page

	// Render to a buffer so a template error does not leave a half page
	var buf bytes.Buffer
	if err := p.templates[page].ExecuteTemplate(&buf, LayoutFile, data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("failed to render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug().Err(err).Str("page", page).Msg("failed to write page")
	}
}

// HandleIndex handles GET /
func (p *Pages) HandleIndex(w http.ResponseWriter, r *http.Request) {
	p.render(w, "index", PageData{Title: "Salon"})
}

// HandleWriters handles GET /writers
func (p *Pages) HandleWriters(w http.ResponseWriter, r *http.Request) {
	p.render(w, "writers", PageData{Title: "Writers"})
}

// HandleWriterDetail handles GET /writers/{id}
func (p *Pages) HandleWriterDetail(w http.ResponseWriter, r *http.Request) {
	p.render(w, "writer_detail", PageData{Title: "Writer", WriterID: r.PathValue("id")})
}

// HandleChess handles GET /chess
func (p *Pages) HandleChess(w http.ResponseWriter, r *http.Request) {
	p.render(w, "chess", PageData{Title: "Chess"})
}

// HandleQuiz handles GET /quiz
func (p *Pages) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	p.render(w, "quiz", PageData{Title: "Quiz"})
}

// RegisterRoutes registers page and static routes with an HTTP mux
func (p *Pages) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", p.HandleIndex)
	mux.HandleFunc("GET /writers", p.HandleWriters)
	mux.HandleFunc("GET /writers/{id}", p.HandleWriterDetail)
	mux.HandleFunc("GET /chess", p.HandleChess)
	mux.HandleFunc("GET /quiz", p.HandleQuiz)
	if p.staticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(p.staticDir))))
	}
}
