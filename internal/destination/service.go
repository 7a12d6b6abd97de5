package destination

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gtravel/snapshots/internal/auditlog"
	"github.com/gtravel/snapshots/internal/catalog"
	"github.com/gtravel/snapshots/internal/region"
	"github.com/gtravel/snapshots/internal/search"
)

// humanDateFormat is the display form of date_updated, regenerated on every
// write ("June 1, 2025").
const humanDateFormat = "January 2, 2006"

// Store implements the destination record lifecycle: creation, patching with
// conditional token regeneration, audit diffing, deletion, and the search
// and tag-filter engines. Each write wraps the record write and its audit
// entry in a single transaction.
type Store struct {
	db      *sql.DB
	repo    *Repository
	regions *region.Repository
	logs    *auditlog.Repository

	now func() time.Time
}

// NewStore creates a destination store.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		repo:    NewRepository(db),
		regions: region.NewRepository(db),
		logs:    auditlog.NewRepository(db),
		now:     time.Now,
	}
}

// Repo exposes the underlying repository for read-only callers.
func (s *Store) Repo() *Repository {
	return s.repo
}

// Draft is the input for creating a destination.
type Draft struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	RegionSlug string `json:"region_id"`
	Status     Status `json:"status"`
	UpdatedBy  string `json:"updated_by"`

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
}

// Validate checks the required draft fields before any storage call.
func (d Draft) Validate() error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Slug, validation.Required),
		validation.Field(&d.RegionSlug, validation.Required),
		validation.Field(&d.UpdatedBy, validation.Required),
	)
	if err != nil {
		return &catalog.ValidationError{Field: "destination", Reason: err.Error()}
	}
	if d.Status != "" && !ValidStatus(string(d.Status)) {
		return &catalog.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", d.Status)}
	}
	return nil
}

// Create stores a new destination and appends a "created" audit entry with a
// synthetic two-entry change list. Fails with catalog.ErrConflict when the
// slug is already taken.
func (s *Store) Create(draft Draft) (string, error) {
	if err := draft.Validate(); err != nil {
		return "", err
	}

	exists, err := s.repo.Exists(draft.Slug)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("destination %s: %w", draft.Slug, catalog.ErrConflict)
	}

	// An unknown region id degrades to using the raw id as both name and
	// slug rather than rejecting the write.
	regionName, regionSlug := draft.RegionSlug, draft.RegionSlug
	if reg, err := s.regions.Get(draft.RegionSlug); err == nil {
		regionName, regionSlug = reg.Name, reg.Slug
	} else if !errors.Is(err, catalog.ErrNotFound) {
		return "", err
	}

	status := draft.Status
	if status == "" {
		status = StatusActive
	}

	now := s.now()
	dateUpdated := now.Format(humanDateFormat)

	d := &Destination{
		ID:               draft.Slug,
		Slug:             draft.Slug,
		Name:             draft.Name,
		RegionSlug:       regionSlug,
		RegionName:       regionName,
		Status:           status,
		NightMin:         draft.NightMin,
		KeyFacts:         draft.KeyFacts,
		Urgency:          draft.Urgency,
		SoloPricing:      draft.SoloPricing,
		PaxLimit:         draft.PaxLimit,
		Accommodations:   draft.Accommodations,
		HowToFeature:     draft.HowToFeature,
		PairWith:         draft.PairWith,
		GeneralNotes1:    draft.GeneralNotes1,
		GeneralNotes2:    draft.GeneralNotes2,
		ClientTypesGood:  draft.ClientTypesGood,
		ClientTypesOkay:  draft.ClientTypesOkay,
		ClientTypesBad:   draft.ClientTypesBad,
		Seasonality:      draft.Seasonality,
		CsRsmSource:      draft.CsRsmSource,
		SummaryOfChanges: draft.SummaryOfChanges,
		PricingTiers:     renumberTiers(draft.PricingTiers),
		Tags:             draft.Tags,
		DateUpdated:      &dateUpdated,
		UpdatedBy:        &draft.UpdatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	d.SearchTokens = search.Tokenize(d.SearchFields())

	entry := auditlog.Entry{
		Action:     auditlog.ActionCreated,
		TargetName: d.Name,
		TargetSlug: d.Slug,
		UpdatedBy:  draft.UpdatedBy,
		Changes: []auditlog.Change{
			{Field: "region", To: regionName},
			{Field: "status", To: string(status)},
		},
		Timestamp: now.UTC(),
	}

	if err := s.inTx(func(tx *sql.Tx) error {
		if err := s.repo.insert(tx, d); err != nil {
			return err
		}
		return s.logs.AppendTx(tx, entry)
	}); err != nil {
		return "", err
	}

	return d.Slug, nil
}

// Patch is a partial update. Nil pointers leave fields untouched; a pointer
// to the empty string clears the field. Tags replace the whole set when
// non-nil and are excluded from audit diffing.
type Patch struct {
	Name       *string `json:"name"`
	RegionSlug *string `json:"region_id"`
	Status     *Status `json:"status"`
	UpdatedBy  string  `json:"updated_by"`

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

	Tags []string `json:"tags"`
}

// Update merges a patch into the stored record. Search tokens are only
// regenerated when the patch touches a searchable field. An "updated" audit
// entry is written only when the field-level change list is non-empty;
// tags and pricing tiers never appear in it.
func (s *Store) Update(slug string, p Patch) error {
	if strings.TrimSpace(p.UpdatedBy) == "" {
		return &catalog.ValidationError{Field: "updated_by", Reason: "cannot be blank"}
	}

	existing, err := s.repo.Get(slug)
	if err != nil {
		return err
	}
	work := *existing

	var changes []auditlog.Change
	touchedSearchable := false

	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return &catalog.ValidationError{Field: "name", Reason: "cannot be blank"}
		}
		if work.Name != *p.Name {
			changes = append(changes, auditlog.Change{Field: "name", From: work.Name, To: *p.Name})
		}
		work.Name = *p.Name
		touchedSearchable = true
	}

	if p.RegionSlug != nil {
		regionName, regionSlug := *p.RegionSlug, *p.RegionSlug
		if reg, err := s.regions.Get(*p.RegionSlug); err == nil {
			regionName, regionSlug = reg.Name, reg.Slug
		} else if !errors.Is(err, catalog.ErrNotFound) {
			return err
		}
		if work.RegionSlug != regionSlug {
			changes = append(changes, auditlog.Change{Field: "region_slug", From: work.RegionSlug, To: regionSlug})
		}
		if work.RegionName != regionName {
			changes = append(changes, auditlog.Change{Field: "region_name", From: work.RegionName, To: regionName})
		}
		work.RegionSlug = regionSlug
		work.RegionName = regionName
		touchedSearchable = true
	}

	if p.Status != nil {
		if !ValidStatus(string(*p.Status)) {
			return &catalog.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", *p.Status)}
		}
		if work.Status != *p.Status {
			changes = append(changes, auditlog.Change{Field: "status", From: string(work.Status), To: string(*p.Status)})
		}
		work.Status = *p.Status
	}

	type patchField struct {
		name       string
		searchable bool
		val        *string
		target     **string
	}
	fields := []patchField{
		{"night_min", false, p.NightMin, &work.NightMin},
		{"key_facts", true, p.KeyFacts, &work.KeyFacts},
		{"urgency", true, p.Urgency, &work.Urgency},
		{"solo_pricing", false, p.SoloPricing, &work.SoloPricing},
		{"pax_limit", false, p.PaxLimit, &work.PaxLimit},
		{"accommodations", true, p.Accommodations, &work.Accommodations},
		{"how_to_feature", false, p.HowToFeature, &work.HowToFeature},
		{"pair_with", true, p.PairWith, &work.PairWith},
		{"general_notes_1", true, p.GeneralNotes1, &work.GeneralNotes1},
		{"general_notes_2", true, p.GeneralNotes2, &work.GeneralNotes2},
		{"client_types_good", true, p.ClientTypesGood, &work.ClientTypesGood},
		{"client_types_okay", true, p.ClientTypesOkay, &work.ClientTypesOkay},
		{"client_types_bad", true, p.ClientTypesBad, &work.ClientTypesBad},
		{"seasonality", false, p.Seasonality, &work.Seasonality},
		{"cs_rsm_source", false, p.CsRsmSource, &work.CsRsmSource},
		{"summary_of_changes", false, p.SummaryOfChanges, &work.SummaryOfChanges},
	}
	for _, f := range fields {
		if f.val == nil {
			continue
		}
		oldVal := deref(*f.target)
		newVal := *f.val
		if oldVal != newVal {
			changes = append(changes, auditlog.Change{Field: f.name, From: oldVal, To: newVal})
		}
		if newVal == "" {
			*f.target = nil
		} else {
			v := newVal
			*f.target = &v
		}
		if f.searchable {
			touchedSearchable = true
		}
	}

	if oldBy := deref(existing.UpdatedBy); oldBy != p.UpdatedBy {
		changes = append(changes, auditlog.Change{Field: "updated_by", From: oldBy, To: p.UpdatedBy})
	}
	work.UpdatedBy = &p.UpdatedBy

	if p.Tags != nil {
		work.Tags = p.Tags
	}

	now := s.now()
	work.UpdatedAt = now
	dateUpdated := now.Format(humanDateFormat)
	work.DateUpdated = &dateUpdated

	// Token regeneration is skipped when no searchable field was touched.
	if touchedSearchable {
		work.SearchTokens = search.Tokenize(work.SearchFields())
	}

	return s.inTx(func(tx *sql.Tx) error {
		if err := s.repo.update(tx, &work); err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		return s.logs.AppendTx(tx, auditlog.Entry{
			Action:     auditlog.ActionUpdated,
			TargetName: work.Name,
			TargetSlug: slug,
			UpdatedBy:  p.UpdatedBy,
			Changes:    changes,
			Timestamp:  now.UTC(),
		})
	})
}

// Delete removes a destination and appends a "deleted" audit entry with an
// empty change list. The current record is fetched best-effort for its name;
// deletion proceeds with fallbacks if it is already gone.
func (s *Store) Delete(slug string) error {
	targetName := slug
	updatedBy := "Unknown"
	if existing, err := s.repo.Get(slug); err == nil {
		targetName = existing.Name
		if by := deref(existing.UpdatedBy); by != "" {
			updatedBy = by
		}
	} else if !errors.Is(err, catalog.ErrNotFound) {
		return err
	}

	now := s.now()
	return s.inTx(func(tx *sql.Tx) error {
		if err := s.repo.delete(tx, slug); err != nil {
			return err
		}
		return s.logs.AppendTx(tx, auditlog.Entry{
			Action:     auditlog.ActionDeleted,
			TargetName: targetName,
			TargetSlug: slug,
			UpdatedBy:  updatedBy,
			Changes:    []auditlog.Change{},
			Timestamp:  now.UTC(),
		})
	})
}

// UpsertPricingTiers replaces the whole pricing tier array, renumbering
// sort_order to match array position. Tier changes do not produce an audit
// entry; that gap is intentional and locked in by tests.
func (s *Store) UpsertPricingTiers(slug string, tiers []PricingTier) error {
	existing, err := s.repo.Get(slug)
	if err != nil {
		return err
	}

	existing.PricingTiers = renumberTiers(tiers)
	existing.UpdatedAt = s.now()

	return s.inTx(func(tx *sql.Tx) error {
		return s.repo.update(tx, existing)
	})
}

// Search runs the free-text query over active destinations. Every query word
// must prefix-match at least one search token. Candidates are visited in
// store order and collection stops at limit (default 20). Snippets are built
// from the raw query string.
func (s *Store) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	sanitized := search.SanitizeQuery(query)
	if sanitized == "" {
		return []SearchResult{}, nil
	}
	words := search.QueryWords(sanitized)

	dests, err := s.repo.ListActiveStoreOrder()
	if err != nil {
		return nil, err
	}

	results := []SearchResult{}
	for _, d := range dests {
		if !search.MatchesTokens(d.SearchTokens, words) {
			continue
		}
		results = append(results, SearchResult{
			ID:         d.Slug,
			Name:       d.Name,
			Slug:       d.Slug,
			RegionName: d.RegionName,
			RegionSlug: d.RegionSlug,
			Snippet:    search.Snippet(d.SnippetFields(), query),
			Rank:       0,
		})
		if len(results) >= limit {
			break
		}
	}

	return results, nil
}

// FilterByTags returns the active destinations carrying every selected tag,
// optionally restricted to one region, ordered by (region_name, name).
// An empty selection returns an empty result by contract.
func (s *Store) FilterByTags(tagSlugs []string, regionSlug string) ([]*Destination, error) {
	if len(tagSlugs) == 0 {
		return []*Destination{}, nil
	}

	dests, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}

	results := []*Destination{}
	for _, d := range dests {
		if regionSlug != "" && d.RegionSlug != regionSlug {
			continue
		}
		allMatch := true
		for _, slug := range tagSlugs {
			if !d.HasTag(slug) {
				allMatch = false
				break
			}
		}
		if allMatch {
			results = append(results, d)
		}
	}

	return results, nil
}

// ResyncRegionNames refreshes each destination's denormalized region_name
// from its region record, regenerating search tokens where the name changed.
// Returns the number of destinations updated. This is a maintenance
// operation and writes no audit entries.
func (s *Store) ResyncRegionNames() (int, error) {
	regions, err := s.regions.List()
	if err != nil {
		return 0, err
	}
	names := make(map[string]string, len(regions))
	for _, reg := range regions {
		names[reg.Slug] = reg.Name
	}

	dests, err := s.repo.ListAll()
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, d := range dests {
		name, ok := names[d.RegionSlug]
		if !ok || d.RegionName == name {
			continue
		}
		d.RegionName = name
		d.SearchTokens = search.Tokenize(d.SearchFields())
		d.UpdatedAt = s.now()
		if err := s.repo.update(s.db, d); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}

func (s *Store) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", catalog.ErrStorage, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", catalog.ErrStorage, err)
	}
	return nil
}

func renumberTiers(tiers []PricingTier) []PricingTier {
	out := make([]PricingTier, len(tiers))
	for i, t := range tiers {
		t.SortOrder = i
		out[i] = t
	}
	return out
}
