// Package sidebar builds the cached navigation tree: destinations grouped by
// continent and by region, plus special section links.
package sidebar

import (
	"database/sql"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gtravel/snapshots/internal/cache"
	"github.com/gtravel/snapshots/internal/destination"
	"github.com/gtravel/snapshots/internal/region"
	"github.com/gtravel/snapshots/internal/section"
)

// DefaultTTL is how long a computed navigation tree is served before it is
// recomputed.
const DefaultTTL = 5 * time.Minute

// Item is one destination link in the tree.
type Item struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	RegionSlug string `json:"region_slug"`
	RegionName string `json:"region_name"`
}

// ContinentGroup holds the destinations of one continent.
type ContinentGroup struct {
	Name         string `json:"name"`
	Destinations []Item `json:"destinations"`
}

// RegionGroup holds the destinations of one region.
type RegionGroup struct {
	region.Region
	Destinations []Item `json:"destinations"`
}

// SectionLink is one special section entry.
type SectionLink struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Data is the complete navigation tree.
type Data struct {
	Continents      []ContinentGroup `json:"continents"`
	Regions         []RegionGroup    `json:"regions"`
	SpecialSections []SectionLink    `json:"special_sections"`
}

// Service computes the tree and serves it through a TTL cache. Writes to
// destinations, regions, or sections should call Invalidate.
type Service struct {
	regions      *region.Repository
	destinations *destination.Repository
	sections     *section.Repository
	cache        *cache.TTL[Data]
}

// NewService creates a sidebar service with the default TTL.
func NewService(db *sql.DB) *Service {
	return NewServiceWithCache(db, cache.NewTTL[Data](DefaultTTL))
}

// NewServiceWithCache creates a sidebar service with an injected cache.
func NewServiceWithCache(db *sql.DB, c *cache.TTL[Data]) *Service {
	return &Service{
		regions:      region.NewRepository(db),
		destinations: destination.NewRepository(db),
		sections:     section.NewRepository(db),
		cache:        c,
	}
}

// Get returns the navigation tree, computing it if the cache has expired.
func (s *Service) Get() (Data, error) {
	return s.cache.Get(s.build)
}

// Invalidate drops the cached tree.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

func (s *Service) build() (Data, error) {
	regions, err := s.regions.List()
	if err != nil {
		return Data{}, err
	}
	dests, err := s.destinations.ListActive()
	if err != nil {
		return Data{}, err
	}
	sections, err := s.sections.List()
	if err != nil {
		return Data{}, err
	}

	col := collate.New(language.English)

	byRegion := make(map[string][]Item)
	byContinent := make(map[string][]Item)
	for _, d := range dests {
		item := Item{Name: d.Name, Slug: d.Slug, RegionSlug: d.RegionSlug, RegionName: d.RegionName}
		byRegion[d.RegionSlug] = append(byRegion[d.RegionSlug], item)
		continent := ContinentFor(d.Slug, d.RegionSlug)
		byContinent[continent] = append(byContinent[continent], item)
	}

	regionGroups := make([]RegionGroup, 0, len(regions))
	for _, reg := range regions {
		items := byRegion[reg.Slug]
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].Name, items[j].Name) < 0
		})
		regionGroups = append(regionGroups, RegionGroup{Region: reg, Destinations: items})
	}

	continentGroups := make([]ContinentGroup, 0, len(byContinent))
	for name, items := range byContinent {
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].Name, items[j].Name) < 0
		})
		continentGroups = append(continentGroups, ContinentGroup{Name: name, Destinations: items})
	}
	sort.SliceStable(continentGroups, func(i, j int) bool {
		ri, rj := continentRank(continentGroups[i].Name), continentRank(continentGroups[j].Name)
		switch {
		case ri != -1 && rj != -1:
			return ri < rj
		case ri != -1:
			return true
		case rj != -1:
			return false
		default:
			return col.CompareString(continentGroups[i].Name, continentGroups[j].Name) < 0
		}
	})

	links := make([]SectionLink, 0, len(sections))
	for _, sec := range sections {
		links = append(links, SectionLink{Title: sec.Title, Slug: sec.Slug})
	}

	return Data{
		Continents:      continentGroups,
		Regions:         regionGroups,
		SpecialSections: links,
	}, nil
}
