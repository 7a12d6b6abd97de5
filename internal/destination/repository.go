package destination

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gtravel/snapshots/internal/catalog"
)

// execer is satisfied by both *sql.DB and *sql.Tx so writes can run inside
// the store's transactions.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// Repository provides row-level access to destination records.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a destination repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `slug, name, region_slug, region_name, status,
	night_min, key_facts, urgency, solo_pricing, pax_limit, accommodations,
	how_to_feature, pair_with, general_notes_1, general_notes_2,
	client_types_good, client_types_okay, client_types_bad, seasonality,
	cs_rsm_source, summary_of_changes, date_updated, updated_by,
	pricing_tiers, tags, search_tokens, created_at, updated_at`

// Get returns a destination by slug.
func (r *Repository) Get(slug string) (*Destination, error) {
	query := fmt.Sprintf("SELECT %s FROM destinations WHERE slug = ?", selectColumns)
	row := r.db.QueryRow(query, slug)

	d, err := scanDestination(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("destination %s: %w", slug, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying destination %s: %w", slug, err)
	}
	return d, nil
}

// Exists reports whether a destination with the given slug is stored.
func (r *Repository) Exists(slug string) (bool, error) {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM destinations WHERE slug = ?", slug).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking destination %s: %w", slug, err)
	}
	return true, nil
}

// ListActive returns all active destinations sorted by (region_name, name)
// using locale-aware collation.
func (r *Repository) ListActive() ([]*Destination, error) {
	dests, err := r.list("WHERE status = 'active'")
	if err != nil {
		return nil, err
	}
	sortByRegionThenName(dests)
	return dests, nil
}

// ListActiveStoreOrder returns active destinations in primary-key order.
// The search engine iterates candidates in this order.
func (r *Repository) ListActiveStoreOrder() ([]*Destination, error) {
	return r.list("WHERE status = 'active' ORDER BY slug")
}

// ListByRegion returns the active destinations of one region, sorted by name.
func (r *Repository) ListByRegion(regionSlug string) ([]*Destination, error) {
	dests, err := r.list("WHERE status = 'active' AND region_slug = ?", regionSlug)
	if err != nil {
		return nil, err
	}
	col := collate.New(language.English)
	sort.SliceStable(dests, func(i, j int) bool {
		return col.CompareString(dests[i].Name, dests[j].Name) < 0
	})
	return dests, nil
}

// ListAll returns every destination regardless of status, sorted by
// (region_name, name). Used by the admin list and maintenance operations.
func (r *Repository) ListAll() ([]*Destination, error) {
	dests, err := r.list("")
	if err != nil {
		return nil, err
	}
	sortByRegionThenName(dests)
	return dests, nil
}

func (r *Repository) list(where string, args ...interface{}) ([]*Destination, error) {
	query := fmt.Sprintf("SELECT %s FROM destinations %s", selectColumns, where)
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing destinations: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var dests []*Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning destination: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating destinations: %w", err)
	}

	return dests, nil
}

func sortByRegionThenName(dests []*Destination) {
	col := collate.New(language.English)
	sort.SliceStable(dests, func(i, j int) bool {
		if c := col.CompareString(dests[i].RegionName, dests[j].RegionName); c != 0 {
			return c < 0
		}
		return col.CompareString(dests[i].Name, dests[j].Name) < 0
	})
}

func (r *Repository) insert(ex execer, d *Destination) error {
	tiers, tags, tokens, err := encodeBlobs(d)
	if err != nil {
		return err
	}

	if _, err := ex.Exec(
		`INSERT INTO destinations (slug, name, region_slug, region_name, status,
			night_min, key_facts, urgency, solo_pricing, pax_limit, accommodations,
			how_to_feature, pair_with, general_notes_1, general_notes_2,
			client_types_good, client_types_okay, client_types_bad, seasonality,
			cs_rsm_source, summary_of_changes, date_updated, updated_by,
			pricing_tiers, tags, search_tokens, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Slug, d.Name, d.RegionSlug, d.RegionName, string(d.Status),
		d.NightMin, d.KeyFacts, d.Urgency, d.SoloPricing, d.PaxLimit, d.Accommodations,
		d.HowToFeature, d.PairWith, d.GeneralNotes1, d.GeneralNotes2,
		d.ClientTypesGood, d.ClientTypesOkay, d.ClientTypesBad, d.Seasonality,
		d.CsRsmSource, d.SummaryOfChanges, d.DateUpdated, d.UpdatedBy,
		tiers, tags, tokens, d.CreatedAt, d.UpdatedAt,
	); err != nil {
		return fmt.Errorf("inserting destination %s: %w", d.Slug, err)
	}

	return nil
}

func (r *Repository) update(ex execer, d *Destination) error {
	tiers, tags, tokens, err := encodeBlobs(d)
	if err != nil {
		return err
	}

	result, err := ex.Exec(
		`UPDATE destinations SET name = ?, region_slug = ?, region_name = ?, status = ?,
			night_min = ?, key_facts = ?, urgency = ?, solo_pricing = ?, pax_limit = ?,
			accommodations = ?, how_to_feature = ?, pair_with = ?, general_notes_1 = ?,
			general_notes_2 = ?, client_types_good = ?, client_types_okay = ?,
			client_types_bad = ?, seasonality = ?, cs_rsm_source = ?, summary_of_changes = ?,
			date_updated = ?, updated_by = ?, pricing_tiers = ?, tags = ?,
			search_tokens = ?, updated_at = ?
		 WHERE slug = ?`,
		d.Name, d.RegionSlug, d.RegionName, string(d.Status),
		d.NightMin, d.KeyFacts, d.Urgency, d.SoloPricing, d.PaxLimit,
		d.Accommodations, d.HowToFeature, d.PairWith, d.GeneralNotes1,
		d.GeneralNotes2, d.ClientTypesGood, d.ClientTypesOkay,
		d.ClientTypesBad, d.Seasonality, d.CsRsmSource, d.SummaryOfChanges,
		d.DateUpdated, d.UpdatedBy, tiers, tags, tokens, d.UpdatedAt,
		d.Slug,
	)
	if err != nil {
		return fmt.Errorf("updating destination %s: %w", d.Slug, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("destination %s: %w", d.Slug, catalog.ErrNotFound)
	}

	return nil
}

func (r *Repository) delete(ex execer, slug string) error {
	if _, err := ex.Exec("DELETE FROM destinations WHERE slug = ?", slug); err != nil {
		return fmt.Errorf("deleting destination %s: %w", slug, err)
	}
	return nil
}

func encodeBlobs(d *Destination) (tiers, tags, tokens string, err error) {
	if d.PricingTiers == nil {
		d.PricingTiers = []PricingTier{}
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.SearchTokens == nil {
		d.SearchTokens = []string{}
	}

	tiersB, err := json.Marshal(d.PricingTiers)
	if err != nil {
		return "", "", "", fmt.Errorf("encoding pricing tiers: %w", err)
	}
	tagsB, err := json.Marshal(d.Tags)
	if err != nil {
		return "", "", "", fmt.Errorf("encoding tags: %w", err)
	}
	tokensB, err := json.Marshal(d.SearchTokens)
	if err != nil {
		return "", "", "", fmt.Errorf("encoding search tokens: %w", err)
	}

	return string(tiersB), string(tagsB), string(tokensB), nil
}

func scanDestination(row interface{ Scan(...interface{}) error }) (*Destination, error) {
	var d Destination
	var status string
	var nightMin, keyFacts, urgency, soloPricing, paxLimit sql.NullString
	var accommodations, howToFeature, pairWith, gn1, gn2 sql.NullString
	var clientGood, clientOkay, clientBad, seasonality sql.NullString
	var csRsmSource, summaryOfChanges, dateUpdated, updatedBy sql.NullString
	var tiers, tags, tokens string

	err := row.Scan(
		&d.Slug, &d.Name, &d.RegionSlug, &d.RegionName, &status,
		&nightMin, &keyFacts, &urgency, &soloPricing, &paxLimit, &accommodations,
		&howToFeature, &pairWith, &gn1, &gn2,
		&clientGood, &clientOkay, &clientBad, &seasonality,
		&csRsmSource, &summaryOfChanges, &dateUpdated, &updatedBy,
		&tiers, &tags, &tokens, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.ID = d.Slug
	d.Status = Status(status)
	if d.Status == "" {
		d.Status = StatusActive
	}

	d.NightMin = nullable(nightMin)
	d.KeyFacts = nullable(keyFacts)
	d.Urgency = nullable(urgency)
	d.SoloPricing = nullable(soloPricing)
	d.PaxLimit = nullable(paxLimit)
	d.Accommodations = nullable(accommodations)
	d.HowToFeature = nullable(howToFeature)
	d.PairWith = nullable(pairWith)
	d.GeneralNotes1 = nullable(gn1)
	d.GeneralNotes2 = nullable(gn2)
	d.ClientTypesGood = nullable(clientGood)
	d.ClientTypesOkay = nullable(clientOkay)
	d.ClientTypesBad = nullable(clientBad)
	d.Seasonality = nullable(seasonality)
	d.CsRsmSource = nullable(csRsmSource)
	d.SummaryOfChanges = nullable(summaryOfChanges)
	d.DateUpdated = nullable(dateUpdated)
	d.UpdatedBy = nullable(updatedBy)

	// Corrupt blobs degrade to empty values rather than failing the read.
	if err := json.Unmarshal([]byte(tiers), &d.PricingTiers); err != nil {
		d.PricingTiers = []PricingTier{}
	}
	if err := json.Unmarshal([]byte(tags), &d.Tags); err != nil {
		d.Tags = []string{}
	}
	if err := json.Unmarshal([]byte(tokens), &d.SearchTokens); err != nil {
		d.SearchTokens = []string{}
	}

	return &d, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
