package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gtravel/snapshots/internal/auditlog"
	"github.com/gtravel/snapshots/internal/catalog"
	"github.com/gtravel/snapshots/internal/destination"
	"github.com/gtravel/snapshots/internal/region"
	"github.com/gtravel/snapshots/internal/section"
	"github.com/gtravel/snapshots/internal/tag"
)

type loginData struct {
	From  string
	Error string
}

type dashboardData struct {
	Destinations []*destination.Destination
	Regions      []region.WithCount
	RecentLog    []auditlog.Entry
	IsAdmin      bool
}

type destinationFormData struct {
	Destination *destination.Destination
	Regions     []region.Region
	Categories  []tag.CategoryInfo
	TagsByCat   map[tag.Category][]tag.Definition
	IsAdmin     bool
}

type adminTagsData struct {
	Categories []tag.CategoryInfo
	TagsByCat  map[tag.Category][]tag.Definition
	Error      string
	IsAdmin    bool
}

type adminSectionsData struct {
	Sections []section.Section
	Error    string
	IsAdmin  bool
}

type auditLogData struct {
	Entries []auditlog.Entry
	IsAdmin bool
}

// handleAdminLogin renders the login form and checks the shared password.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" || !strings.HasPrefix(from, "/") {
		from = "/admin"
	}

	if r.Method == http.MethodGet {
		s.render(w, "login.html", loginData{From: from})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if !s.authCfg.CheckPassword(r.FormValue("password")) {
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, "login.html", loginData{From: from, Error: "Incorrect password"})
		return
	}

	if err := s.sessions.Create(w); err != nil {
		http.Error(w, fmt.Sprintf("Error creating session: %v", err), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, from, http.StatusSeeOther)
}

// handleAdminLogout clears the session.
func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.sessions.Destroy(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAdminDashboard renders the admin overview.
func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	dests, err := s.store.Repo().ListAll()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading destinations: %v", err), http.StatusInternalServerError)
		return
	}
	regions, err := s.regions.ListWithCounts()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading regions: %v", err), http.StatusInternalServerError)
		return
	}
	recent, err := s.logs.Recent(10)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading audit log: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "admin_dashboard.html", dashboardData{
		Destinations: dests,
		Regions:      regions,
		RecentLog:    recent,
		IsAdmin:      true,
	})
}

// handleAdminDestinationRoute routes /admin/destinations/{slug}/* requests.
func (s *Server) handleAdminDestinationRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/destinations/")

	switch {
	case path == "new":
		s.handleAdminDestinationNew(w, r)
	case strings.HasSuffix(path, "/edit"):
		s.handleAdminDestinationEdit(w, r, strings.TrimSuffix(path, "/edit"))
	case strings.HasSuffix(path, "/delete"):
		s.handleAdminDestinationDelete(w, r, strings.TrimSuffix(path, "/delete"))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleAdminDestinationNew(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.renderDestinationForm(w, nil)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	draft := destination.Draft{
		Name:       strings.TrimSpace(r.FormValue("name")),
		Slug:       tag.Slugify(r.FormValue("slug")),
		RegionSlug: r.FormValue("region"),
		Status:     destination.Status(r.FormValue("status")),
		UpdatedBy:  strings.TrimSpace(r.FormValue("updated_by")),
		Tags:       r.Form["tags"],
	}
	if draft.Slug == "" {
		draft.Slug = tag.Slugify(draft.Name)
	}
	applyOptionalFields(r, optionalDraftFields(&draft))

	slug, err := s.store.Create(draft)
	if err != nil {
		s.writeFormError(w, err)
		return
	}

	s.sidebar.Invalidate()
	http.Redirect(w, r, "/admin/destinations/"+slug+"/edit", http.StatusSeeOther)
}

func (s *Server) handleAdminDestinationEdit(w http.ResponseWriter, r *http.Request, slug string) {
	if r.Method == http.MethodGet {
		d, err := s.store.Repo().Get(slug)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		s.renderDestinationForm(w, d)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	patch := destination.Patch{
		Name:      formPtr(r, "name"),
		Status:    statusPtr(r.FormValue("status")),
		UpdatedBy: strings.TrimSpace(r.FormValue("updated_by")),
		Tags:      r.Form["tags"],
	}
	if regionSlug := r.FormValue("region"); regionSlug != "" {
		patch.RegionSlug = &regionSlug
	}
	applyOptionalFields(r, optionalPatchFields(&patch))

	if err := s.store.Update(slug, patch); err != nil {
		s.writeFormError(w, err)
		return
	}

	s.sidebar.Invalidate()
	http.Redirect(w, r, "/admin/destinations/"+slug+"/edit", http.StatusSeeOther)
}

func (s *Server) handleAdminDestinationDelete(w http.ResponseWriter, r *http.Request, slug string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.store.Delete(slug); err != nil {
		s.writeFormError(w, err)
		return
	}
	s.sidebar.Invalidate()
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) renderDestinationForm(w http.ResponseWriter, d *destination.Destination) {
	regions, err := s.regions.List()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading regions: %v", err), http.StatusInternalServerError)
		return
	}
	byCat, err := s.tagsByCategory()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading tags: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "admin_destination_form.html", destinationFormData{
		Destination: d,
		Regions:     regions,
		Categories:  tag.Categories(),
		TagsByCat:   byCat,
		IsAdmin:     true,
	})
}

// handleAdminTags renders the tag manager and handles create/delete posts.
func (s *Server) handleAdminTags(w http.ResponseWriter, r *http.Request) {
	var formErr string

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		var err error
		if del := r.FormValue("delete"); del != "" {
			err = s.tags.Delete(del)
		} else {
			err = s.tags.Create(tag.Definition{
				Slug:     tag.Slugify(r.FormValue("label")),
				Label:    strings.TrimSpace(r.FormValue("label")),
				Category: tag.Category(r.FormValue("category")),
			})
		}
		if err != nil {
			if catalog.IsValidation(err) || errors.Is(err, catalog.ErrConflict) || errors.Is(err, catalog.ErrNotFound) {
				formErr = err.Error()
			} else {
				http.Error(w, fmt.Sprintf("Error updating tags: %v", err), http.StatusInternalServerError)
				return
			}
		}
	}

	byCat, err := s.tagsByCategory()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading tags: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "admin_tags.html", adminTagsData{
		Categories: tag.Categories(),
		TagsByCat:  byCat,
		Error:      formErr,
		IsAdmin:    true,
	})
}

// handleAdminSections renders the section editor and handles save/delete.
func (s *Server) handleAdminSections(w http.ResponseWriter, r *http.Request) {
	var formErr string

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if err := s.applySectionForm(r); err != nil {
			if catalog.IsValidation(err) || errors.Is(err, catalog.ErrConflict) || errors.Is(err, catalog.ErrNotFound) {
				formErr = err.Error()
			} else {
				http.Error(w, fmt.Sprintf("Error updating sections: %v", err), http.StatusInternalServerError)
				return
			}
		} else {
			s.sidebar.Invalidate()
		}
	}

	sections, err := s.sections.List()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading sections: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "admin_sections.html", adminSectionsData{
		Sections: sections,
		Error:    formErr,
		IsAdmin:  true,
	})
}

func (s *Server) applySectionForm(r *http.Request) error {
	if del := r.FormValue("delete"); del != "" {
		return s.sections.Delete(del)
	}

	sec := section.Section{
		Slug:    tag.Slugify(r.FormValue("slug")),
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: r.FormValue("content"),
	}
	if scope := r.FormValue("region_scope"); scope != "" {
		sec.RegionScope = &scope
	}
	if sec.Slug == "" {
		sec.Slug = tag.Slugify(sec.Title)
	}

	if r.FormValue("existing") == "true" {
		return s.sections.Update(sec.Slug, sec)
	}
	return s.sections.Create(sec)
}

// handleAdminAuditLog renders the change history page.
func (s *Server) handleAdminAuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.logs.Recent(50)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading audit log: %v", err), http.StatusInternalServerError)
		return
	}
	s.render(w, "admin_audit.html", auditLogData{Entries: entries, IsAdmin: true})
}

func (s *Server) tagsByCategory() (map[tag.Category][]tag.Definition, error) {
	all, err := s.tags.List()
	if err != nil {
		return nil, err
	}
	byCat := make(map[tag.Category][]tag.Definition)
	for _, t := range all {
		byCat[t.Category] = append(byCat[t.Category], t)
	}
	return byCat, nil
}

// writeFormError maps catalog errors from form posts to HTTP status codes.
func (s *Server) writeFormError(w http.ResponseWriter, err error) {
	switch {
	case catalog.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, fmt.Sprintf("Error saving: %v", err), http.StatusInternalServerError)
	}
}

func formPtr(r *http.Request, name string) *string {
	if !r.Form.Has(name) {
		return nil
	}
	v := r.FormValue(name)
	return &v
}

func statusPtr(v string) *destination.Status {
	if v == "" {
		return nil
	}
	st := destination.Status(v)
	return &st
}

// optionalField pairs a form field name with its destination pointer.
type optionalField struct {
	name   string
	target **string
}

func applyOptionalFields(r *http.Request, fields []optionalField) {
	for _, f := range fields {
		if v := formPtr(r, f.name); v != nil {
			*f.target = v
		}
	}
}

func optionalDraftFields(d *destination.Draft) []optionalField {
	return []optionalField{
		{"night_min", &d.NightMin},
		{"key_facts", &d.KeyFacts},
		{"urgency", &d.Urgency},
		{"solo_pricing", &d.SoloPricing},
		{"pax_limit", &d.PaxLimit},
		{"accommodations", &d.Accommodations},
		{"how_to_feature", &d.HowToFeature},
		{"pair_with", &d.PairWith},
		{"general_notes_1", &d.GeneralNotes1},
		{"general_notes_2", &d.GeneralNotes2},
		{"client_types_good", &d.ClientTypesGood},
		{"client_types_okay", &d.ClientTypesOkay},
		{"client_types_bad", &d.ClientTypesBad},
		{"seasonality", &d.Seasonality},
		{"cs_rsm_source", &d.CsRsmSource},
		{"summary_of_changes", &d.SummaryOfChanges},
	}
}

func optionalPatchFields(p *destination.Patch) []optionalField {
	return []optionalField{
		{"night_min", &p.NightMin},
		{"key_facts", &p.KeyFacts},
		{"urgency", &p.Urgency},
		{"solo_pricing", &p.SoloPricing},
		{"pax_limit", &p.PaxLimit},
		{"accommodations", &p.Accommodations},
		{"how_to_feature", &p.HowToFeature},
		{"pair_with", &p.PairWith},
		{"general_notes_1", &p.GeneralNotes1},
		{"general_notes_2", &p.GeneralNotes2},
		{"client_types_good", &p.ClientTypesGood},
		{"client_types_okay", &p.ClientTypesOkay},
		{"client_types_bad", &p.ClientTypesBad},
		{"seasonality", &p.Seasonality},
		{"cs_rsm_source", &p.CsRsmSource},
		{"summary_of_changes", &p.SummaryOfChanges},
	}
}
