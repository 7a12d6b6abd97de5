// Package destination provides the destination domain model, data access,
// and the search and tag-filter engines built on top of it.
package destination

import (
	"encoding/json"
	"time"
)

// Status represents where a destination is in the selling lifecycle.
// Only active destinations appear in public listings and search.
type Status string

const (
	StatusActive     Status = "active"
	StatusNotSelling Status = "not_selling"
	StatusStopSell   Status = "stop_sell"
)

// ValidStatus returns true if s is a known status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusNotSelling, StatusStopSell:
		return true
	}
	return false
}

// PricingTier is one row of a destination's pricing table. SortOrder is kept
// equal to array position on every write.
type PricingTier struct {
	TierLabel    string  `json:"tier_label"`
	PricePerWeek *string `json:"price_per_week"`
	PricePerDay  *string `json:"price_per_day"`
	Notes        *string `json:"notes"`
	SortOrder    int     `json:"sort_order"`
}

// SeasonalityEntry is one row of the seasonality table. Level is free text
// normalized case-insensitively for color-coding, not a closed enum.
type SeasonalityEntry struct {
	Level       string `json:"level"`
	DateRange   string `json:"date_range"`
	Description string `json:"description"`
}

// ParseSeasonality decodes the serialized seasonality blob. A missing or
// unparseable value degrades to nil so callers fall back to raw-text display.
func ParseSeasonality(raw *string) []SeasonalityEntry {
	if raw == nil || *raw == "" {
		return nil
	}
	var entries []SeasonalityEntry
	if err := json.Unmarshal([]byte(*raw), &entries); err != nil {
		return nil
	}
	return entries
}

// Destination is a single travel-location record. The slug is the globally
// unique id, immutable once created; ID always equals Slug.
type Destination struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	RegionSlug string `json:"region_slug"`
	// RegionName is a denormalized copy taken at create or region
	// reassignment; it is not re-synced when the region itself is renamed.
	RegionName string `json:"region_name"`
	Status     Status `json:"status"`

	NightMin         *string `json:"night_min"`
	KeyFacts         *string `json:"key_facts"`
	Urgency          *string `json:"urgency"`
	SoloPricing      *string `json:"solo_pricing"`
	PaxLimit         *string `json:"pax_limit"`
	Accommodations   *string `json:"accommodations"`
	HowToFeature     *string `json:"how_to_feature"`
	PairWith         *string `json:"pair_with"`
	GeneralNotes1    *string `json:"general_notes_1"`
	GeneralNotes2    *string `json:"general_notes_2"`
	ClientTypesGood  *string `json:"client_types_good"`
	ClientTypesOkay  *string `json:"client_types_okay"`
	ClientTypesBad   *string `json:"client_types_bad"`
	Seasonality      *string `json:"seasonality"`
	CsRsmSource      *string `json:"cs_rsm_source"`
	SummaryOfChanges *string `json:"summary_of_changes"`

	PricingTiers []PricingTier `json:"pricing_tiers"`
	Tags         []string      `json:"tags"`
	SearchTokens []string      `json:"search_tokens"`

	DateUpdated *string   `json:"date_updated"`
	UpdatedBy   *string   `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchFields returns the field values the token index is built from.
func (d *Destination) SearchFields() []string {
	return []string{
		d.Name,
		deref(d.KeyFacts),
		deref(d.Urgency),
		deref(d.Accommodations),
		deref(d.ClientTypesGood),
		deref(d.ClientTypesOkay),
		deref(d.ClientTypesBad),
		deref(d.GeneralNotes1),
		deref(d.GeneralNotes2),
		deref(d.PairWith),
		d.RegionName,
	}
}

// SnippetFields returns the fields scanned for snippet extraction, in
// priority order. Unlike SearchFields it excludes the region name.
func (d *Destination) SnippetFields() []string {
	return []string{
		d.Name,
		deref(d.KeyFacts),
		deref(d.Urgency),
		deref(d.Accommodations),
		deref(d.ClientTypesGood),
		deref(d.ClientTypesOkay),
		deref(d.ClientTypesBad),
		deref(d.GeneralNotes1),
		deref(d.GeneralNotes2),
		deref(d.PairWith),
	}
}

// HasTag reports whether the destination carries the given tag slug.
func (d *Destination) HasTag(slug string) bool {
	for _, t := range d.Tags {
		if t == slug {
			return true
		}
	}
	return false
}

// SearchResult is one hit from the free-text search engine. Rank is always 0;
// results are returned in store order, not globally ranked.
type SearchResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	RegionName string `json:"region_name"`
	RegionSlug string `json:"region_slug"`
	Snippet    string `json:"snippet"`
	Rank       int    `json:"rank"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
