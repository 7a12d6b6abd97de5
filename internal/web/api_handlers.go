package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gtravel/snapshots/internal/catalog"
	"github.com/gtravel/snapshots/internal/destination"
	"github.com/gtravel/snapshots/internal/section"
	"github.com/gtravel/snapshots/internal/tag"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiCatalogError maps domain errors to HTTP status codes.
func apiCatalogError(w http.ResponseWriter, err error) {
	switch {
	case catalog.IsValidation(err):
		apiError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrNotFound):
		apiError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, catalog.ErrConflict):
		apiError(w, err.Error(), http.StatusConflict)
	default:
		apiError(w, "internal error", http.StatusInternalServerError)
	}
}

// handleAPIRegions routes /api/regions requests.
func (s *Server) handleAPIRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/api/regions"), "/")
	if slug == "" {
		regions, err := s.regions.ListWithCounts()
		if err != nil {
			apiCatalogError(w, err)
			return
		}
		apiJSON(w, regions, http.StatusOK)
		return
	}

	reg, err := s.regions.Get(slug)
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	apiJSON(w, reg, http.StatusOK)
}

// handleAPIDestinations routes /api/destinations requests.
func (s *Server) handleAPIDestinations(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/api/destinations"), "/")

	// /api/destinations — list or create
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			s.apiListDestinations(w, r)
		case http.MethodPost:
			s.apiCreateDestination(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/destinations/{slug}/pricing-tiers
	if strings.HasSuffix(path, "/pricing-tiers") {
		if r.Method != http.MethodPut {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiUpsertPricingTiers(w, r, strings.TrimSuffix(path, "/pricing-tiers"))
		return
	}

	if strings.Contains(path, "/") {
		apiError(w, "not found", http.StatusNotFound)
		return
	}

	// /api/destinations/{slug} — get, update, or delete
	switch r.Method {
	case http.MethodGet:
		s.apiGetDestination(w, path)
	case http.MethodPut, http.MethodPatch:
		s.apiUpdateDestination(w, r, path)
	case http.MethodDelete:
		s.apiDeleteDestination(w, path)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// apiListDestinations lists destinations, optionally filtered by region
// and/or a comma-separated tag set (AND semantics).
func (s *Server) apiListDestinations(w http.ResponseWriter, r *http.Request) {
	regionSlug := r.URL.Query().Get("region")

	if tagsParam := r.URL.Query().Get("tags"); tagsParam != "" {
		var tags []string
		for _, t := range strings.Split(tagsParam, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		dests, err := s.store.FilterByTags(tags, regionSlug)
		if err != nil {
			apiCatalogError(w, err)
			return
		}
		apiJSON(w, dests, http.StatusOK)
		return
	}

	var (
		dests []*destination.Destination
		err   error
	)
	switch {
	case regionSlug != "":
		dests, err = s.store.Repo().ListByRegion(regionSlug)
	case r.URL.Query().Get("all") == "true":
		dests, err = s.store.Repo().ListAll()
	default:
		dests, err = s.store.Repo().ListActive()
	}
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	if dests == nil {
		dests = make([]*destination.Destination, 0)
	}
	apiJSON(w, dests, http.StatusOK)
}

func (s *Server) apiCreateDestination(w http.ResponseWriter, r *http.Request) {
	var draft destination.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	slug, err := s.store.Create(draft)
	if err != nil {
		apiCatalogError(w, err)
		return
	}

	s.sidebar.Invalidate()
	d, err := s.store.Repo().Get(slug)
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	apiJSON(w, d, http.StatusCreated)
}

func (s *Server) apiGetDestination(w http.ResponseWriter, slug string) {
	d, err := s.store.Repo().Get(slug)
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	apiJSON(w, d, http.StatusOK)
}

func (s *Server) apiUpdateDestination(w http.ResponseWriter, r *http.Request, slug string) {
	var patch destination.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := s.store.Update(slug, patch); err != nil {
		apiCatalogError(w, err)
		return
	}

	s.sidebar.Invalidate()
	d, err := s.store.Repo().Get(slug)
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	apiJSON(w, d, http.StatusOK)
}

func (s *Server) apiDeleteDestination(w http.ResponseWriter, slug string) {
	if err := s.store.Delete(slug); err != nil {
		apiCatalogError(w, err)
		return
	}
	s.sidebar.Invalidate()
	apiJSON(w, map[string]interface{}{"slug": slug, "removed": true}, http.StatusOK)
}

func (s *Server) apiUpsertPricingTiers(w http.ResponseWriter, r *http.Request, slug string) {
	var req struct {
		PricingTiers []destination.PricingTier `json:"pricing_tiers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := s.store.UpsertPricingTiers(slug, req.PricingTiers); err != nil {
		apiCatalogError(w, err)
		return
	}

	d, err := s.store.Repo().Get(slug)
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	apiJSON(w, d, http.StatusOK)
}

// handleAPISearch searches destinations and special sections.
func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			apiError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	results, err := s.store.Search(query, limit)
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	sections, err := s.sections.Search(query)
	if err != nil {
		apiCatalogError(w, err)
		return
	}

	if results == nil {
		results = make([]destination.SearchResult, 0)
	}
	if sections == nil {
		sections = make([]section.Section, 0)
	}

	type response struct {
		Destinations []destination.SearchResult `json:"destinations"`
		Sections     []section.Section          `json:"special_sections"`
	}
	apiJSON(w, response{Destinations: results, Sections: sections}, http.StatusOK)
}

// handleAPISidebar returns the cached navigation tree.
func (s *Server) handleAPISidebar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := s.sidebar.Get()
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	apiJSON(w, data, http.StatusOK)
}

// handleAPITags routes /api/tags requests.
func (s *Server) handleAPITags(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/api/tags"), "/")

	if slug == "" {
		switch r.Method {
		case http.MethodGet:
			s.apiListTags(w, r)
		case http.MethodPost:
			s.apiCreateTag(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		t, err := s.tags.Get(slug)
		if err != nil {
			apiCatalogError(w, err)
			return
		}
		apiJSON(w, t, http.StatusOK)
	case http.MethodPut, http.MethodPatch:
		s.apiUpdateTag(w, r, slug)
	case http.MethodDelete:
		if err := s.tags.Delete(slug); err != nil {
			apiCatalogError(w, err)
			return
		}
		apiJSON(w, map[string]interface{}{"slug": slug, "removed": true}, http.StatusOK)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiListTags(w http.ResponseWriter, r *http.Request) {
	var (
		tags []tag.Definition
		err  error
	)
	if cat := r.URL.Query().Get("category"); cat != "" {
		if !tag.ValidCategory(cat) {
			apiError(w, fmt.Sprintf("unknown category %q", cat), http.StatusBadRequest)
			return
		}
		tags, err = s.tags.ListByCategory(tag.Category(cat))
	} else {
		tags, err = s.tags.List()
	}
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	if tags == nil {
		tags = make([]tag.Definition, 0)
	}
	apiJSON(w, tags, http.StatusOK)
}

func (s *Server) apiCreateTag(w http.ResponseWriter, r *http.Request) {
	var t tag.Definition
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if t.Slug == "" {
		t.Slug = tag.Slugify(t.Label)
	}

	if err := s.tags.Create(t); err != nil {
		apiCatalogError(w, err)
		return
	}
	apiJSON(w, t, http.StatusCreated)
}

func (s *Server) apiUpdateTag(w http.ResponseWriter, r *http.Request, slug string) {
	var req struct {
		Label    *string       `json:"label"`
		Category *tag.Category `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := s.tags.Update(slug, req.Label, req.Category); err != nil {
		apiCatalogError(w, err)
		return
	}

	t, err := s.tags.Get(slug)
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	apiJSON(w, t, http.StatusOK)
}

// handleAPISections routes /api/special-sections requests.
func (s *Server) handleAPISections(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/api/special-sections"), "/")

	if slug == "" {
		switch r.Method {
		case http.MethodGet:
			sections, err := s.sections.List()
			if err != nil {
				apiCatalogError(w, err)
				return
			}
			if sections == nil {
				sections = make([]section.Section, 0)
			}
			apiJSON(w, sections, http.StatusOK)
		case http.MethodPost:
			s.apiCreateSection(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		sec, err := s.sections.Get(slug)
		if err != nil {
			apiCatalogError(w, err)
			return
		}
		apiJSON(w, sec, http.StatusOK)
	case http.MethodPut, http.MethodPatch:
		s.apiUpdateSection(w, r, slug)
	case http.MethodDelete:
		if err := s.sections.Delete(slug); err != nil {
			apiCatalogError(w, err)
			return
		}
		s.sidebar.Invalidate()
		apiJSON(w, map[string]interface{}{"slug": slug, "removed": true}, http.StatusOK)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiCreateSection(w http.ResponseWriter, r *http.Request) {
	var sec section.Section
	if err := json.NewDecoder(r.Body).Decode(&sec); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if sec.Slug == "" {
		sec.Slug = tag.Slugify(sec.Title)
	}

	if err := s.sections.Create(sec); err != nil {
		apiCatalogError(w, err)
		return
	}
	s.sidebar.Invalidate()
	apiJSON(w, sec, http.StatusCreated)
}

func (s *Server) apiUpdateSection(w http.ResponseWriter, r *http.Request, slug string) {
	var sec section.Section
	if err := json.NewDecoder(r.Body).Decode(&sec); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	sec.Slug = slug

	if err := s.sections.Update(slug, sec); err != nil {
		apiCatalogError(w, err)
		return
	}
	s.sidebar.Invalidate()
	apiJSON(w, sec, http.StatusOK)
}

// handleAPIAuditLog returns recent audit entries, most recent first.
func (s *Server) handleAPIAuditLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			apiError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.logs.Recent(limit)
	if err != nil {
		apiCatalogError(w, err)
		return
	}
	apiJSON(w, entries, http.StatusOK)
}

// handleAPILogin checks the shared password and issues a session cookie.
func (s *Server) handleAPILogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if !s.authCfg.CheckPassword(req.Password) {
		apiError(w, "incorrect password", http.StatusUnauthorized)
		return
	}

	if err := s.sessions.Create(w); err != nil {
		apiError(w, "internal error", http.StatusInternalServerError)
		return
	}
	apiJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}

// handleAPILogout clears the session cookie.
func (s *Server) handleAPILogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.sessions.Destroy(w)
	apiJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}
