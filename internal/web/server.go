// Package web provides the HTTP server, pages, and JSON API for the
// destination catalog.
package web

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/gtravel/snapshots/internal/auditlog"
	"github.com/gtravel/snapshots/internal/auth"
	"github.com/gtravel/snapshots/internal/destination"
	"github.com/gtravel/snapshots/internal/region"
	"github.com/gtravel/snapshots/internal/section"
	"github.com/gtravel/snapshots/internal/sidebar"
	"github.com/gtravel/snapshots/internal/tag"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the catalog HTTP server.
type Server struct {
	store     *destination.Store
	regions   *region.Repository
	tags      *tag.Repository
	sections  *section.Repository
	logs      *auditlog.Repository
	sidebar   *sidebar.Service
	sessions  *auth.SessionStore
	authCfg   auth.Config
	templates *template.Template
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer creates a web server with the given database and auth config.
func NewServer(db *sql.DB, cfg auth.Config) (*Server, error) {
	funcMap := template.FuncMap{
		"formatStr":      tmplFormatStr,
		"formatStrEmpty": tmplFormatStrEmpty,
		"markdown":       tmplMarkdown,
		"raw":            tmplRaw,
		"statusLabel":    tmplStatusLabel,
		"tagLabel":       tag.Label,
		"categoryColor":  tag.CategoryColor,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	sessions, err := auth.NewSessionStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating session store: %w", err)
	}

	s := &Server{
		store:     destination.NewStore(db),
		regions:   region.NewRepository(db),
		tags:      tag.NewRepository(db),
		sections:  section.NewRepository(db),
		logs:      auditlog.NewRepository(db),
		sidebar:   sidebar.NewService(db),
		sessions:  sessions,
		authCfg:   cfg,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/regions/", s.handleRegion)
	s.mux.HandleFunc("/destinations/", s.handleDestination)
	s.mux.HandleFunc("/sections/", s.handleSection)
	s.mux.HandleFunc("/search", s.handleSearch)

	s.mux.HandleFunc("/admin", s.handleAdminDashboard)
	s.mux.HandleFunc("/admin/login", s.handleAdminLogin)
	s.mux.HandleFunc("/admin/logout", s.handleAdminLogout)
	s.mux.HandleFunc("/admin/destinations/", s.handleAdminDestinationRoute)
	s.mux.HandleFunc("/admin/tags", s.handleAdminTags)
	s.mux.HandleFunc("/admin/sections", s.handleAdminSections)
	s.mux.HandleFunc("/admin/audit-log", s.handleAdminAuditLog)

	s.mux.HandleFunc("/api/regions", s.handleAPIRegions)
	s.mux.HandleFunc("/api/regions/", s.handleAPIRegions)
	s.mux.HandleFunc("/api/destinations", s.handleAPIDestinations)
	s.mux.HandleFunc("/api/destinations/", s.handleAPIDestinations)
	s.mux.HandleFunc("/api/search", s.handleAPISearch)
	s.mux.HandleFunc("/api/sidebar", s.handleAPISidebar)
	s.mux.HandleFunc("/api/tags", s.handleAPITags)
	s.mux.HandleFunc("/api/tags/", s.handleAPITags)
	s.mux.HandleFunc("/api/special-sections", s.handleAPISections)
	s.mux.HandleFunc("/api/special-sections/", s.handleAPISections)
	s.mux.HandleFunc("/api/admin/log", s.handleAPIAuditLog)
	s.mux.HandleFunc("/api/admin/login", s.handleAPILogin)
	s.mux.HandleFunc("/api/admin/logout", s.handleAPILogout)

	s.handler = auth.RequireAdmin(sessions, s.mux)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting catalog on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// render executes a full page template.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}

// isAdmin reports whether the request carries a valid admin session.
func (s *Server) isAdmin(r *http.Request) bool {
	return s.sessions.Validate(r) == nil
}

// Template helper functions

func tmplFormatStr(s *string) string {
	if s == nil {
		return "—"
	}
	return *s
}

// tmplFormatStrEmpty is for form values, where nil must render as "".
func tmplFormatStrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// tmplMarkdown renders trusted admin-authored markdown to HTML.
func tmplMarkdown(source string) template.HTML {
	var buf strings.Builder
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}

// tmplRaw renders snippet fragments so their <mark> emphasis survives.
func tmplRaw(s string) template.HTML {
	return template.HTML(s)
}

func tmplStatusLabel(st destination.Status) string {
	switch st {
	case destination.StatusActive:
		return "Active"
	case destination.StatusNotSelling:
		return "Not Selling"
	case destination.StatusStopSell:
		return "Stop Sell"
	}
	return string(st)
}
