package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gtravel/snapshots/internal/destination"
	"github.com/gtravel/snapshots/internal/region"
	"github.com/gtravel/snapshots/internal/section"
	"github.com/gtravel/snapshots/internal/sidebar"
	"github.com/gtravel/snapshots/internal/tag"
)

type homeData struct {
	Regions []region.WithCount
	Sidebar sidebar.Data
	IsAdmin bool
}

type regionData struct {
	Region       *region.Region
	Destinations []*destination.Destination
	Sidebar      sidebar.Data
	IsAdmin      bool
}

type destinationData struct {
	Destination *destination.Destination
	Seasonality []destination.SeasonalityEntry
	Tags        []tag.Definition
	Sidebar     sidebar.Data
	IsAdmin     bool
}

type searchData struct {
	Query        string
	Destinations []destination.SearchResult
	Sections     []section.Section
	Sidebar      sidebar.Data
	IsAdmin      bool
}

type sectionData struct {
	Section *section.Section
	Sidebar sidebar.Data
	IsAdmin bool
}

// handleHome renders the region overview page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	regions, err := s.regions.ListWithCounts()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading regions: %v", err), http.StatusInternalServerError)
		return
	}

	nav, err := s.sidebar.Get()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading navigation: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "home.html", homeData{Regions: regions, Sidebar: nav, IsAdmin: s.isAdmin(r)})
}

// handleRegion renders one region and its destinations.
func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/regions/")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}

	reg, err := s.regions.Get(slug)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	dests, err := s.store.Repo().ListByRegion(slug)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading destinations: %v", err), http.StatusInternalServerError)
		return
	}

	nav, err := s.sidebar.Get()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading navigation: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "region.html", regionData{
		Region:       reg,
		Destinations: dests,
		Sidebar:      nav,
		IsAdmin:      s.isAdmin(r),
	})
}

// handleDestination renders a destination detail page.
func (s *Server) handleDestination(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/destinations/")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}

	d, err := s.store.Repo().Get(slug)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	tags, err := s.tags.List()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading tags: %v", err), http.StatusInternalServerError)
		return
	}

	nav, err := s.sidebar.Get()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading navigation: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "destination.html", destinationData{
		Destination: d,
		Seasonality: destination.ParseSeasonality(d.Seasonality),
		Tags:        tags,
		Sidebar:     nav,
		IsAdmin:     s.isAdmin(r),
	})
}

// handleSearch renders search results over destinations and sections.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	data := searchData{Query: query, IsAdmin: s.isAdmin(r)}
	if strings.TrimSpace(query) != "" {
		results, err := s.store.Search(query, 0)
		if err != nil {
			http.Error(w, fmt.Sprintf("Error searching: %v", err), http.StatusInternalServerError)
			return
		}
		sections, err := s.sections.Search(query)
		if err != nil {
			http.Error(w, fmt.Sprintf("Error searching sections: %v", err), http.StatusInternalServerError)
			return
		}
		data.Destinations = results
		data.Sections = sections
	}

	nav, err := s.sidebar.Get()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading navigation: %v", err), http.StatusInternalServerError)
		return
	}
	data.Sidebar = nav

	s.render(w, "search.html", data)
}

// handleSection renders a special section page with markdown content.
func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/sections/")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}

	sec, err := s.sections.Get(slug)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	nav, err := s.sidebar.Get()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading navigation: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "section.html", sectionData{Section: sec, Sidebar: nav, IsAdmin: s.isAdmin(r)})
}
