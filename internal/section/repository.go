package section

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gtravel/snapshots/internal/catalog"
	"github.com/gtravel/snapshots/internal/search"
)

// Repository provides CRUD and search over special sections.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a section repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List returns all sections sorted by title.
func (r *Repository) List() ([]Section, error) {
	rows, err := r.db.Query("SELECT slug, title, content, region_scope FROM special_sections")
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var sections []Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		sections = append(sections, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}

	col := collate.New(language.English)
	sort.SliceStable(sections, func(i, j int) bool {
		return col.CompareString(sections[i].Title, sections[j].Title) < 0
	})
	return sections, nil
}

// Get returns a section by slug.
func (r *Repository) Get(slug string) (*Section, error) {
	row := r.db.QueryRow(
		"SELECT slug, title, content, region_scope FROM special_sections WHERE slug = ?", slug,
	)

	s, err := scanSection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("section %s: %w", slug, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying section %s: %w", slug, err)
	}
	return s, nil
}

// Create adds a new section. Fails with catalog.ErrConflict on a taken slug.
func (r *Repository) Create(s Section) error {
	if err := validateSection(s); err != nil {
		return err
	}

	var exists int
	err := r.db.QueryRow("SELECT 1 FROM special_sections WHERE slug = ?", s.Slug).Scan(&exists)
	if err == nil {
		return fmt.Errorf("section %s: %w", s.Slug, catalog.ErrConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking section %s: %w", s.Slug, err)
	}

	if _, err := r.db.Exec(
		"INSERT INTO special_sections (slug, title, content, region_scope) VALUES (?, ?, ?, ?)",
		s.Slug, s.Title, s.Content, s.RegionScope,
	); err != nil {
		return fmt.Errorf("creating section %s: %w", s.Slug, err)
	}
	return nil
}

// Update replaces a section's title, content, and region scope.
func (r *Repository) Update(slug string, s Section) error {
	s.Slug = slug
	if err := validateSection(s); err != nil {
		return err
	}

	result, err := r.db.Exec(
		"UPDATE special_sections SET title = ?, content = ?, region_scope = ? WHERE slug = ?",
		s.Title, s.Content, s.RegionScope, slug,
	)
	if err != nil {
		return fmt.Errorf("updating section %s: %w", slug, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("section %s: %w", slug, catalog.ErrNotFound)
	}
	return nil
}

// Delete removes a section by slug.
func (r *Repository) Delete(slug string) error {
	result, err := r.db.Exec("DELETE FROM special_sections WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("deleting section %s: %w", slug, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("section %s: %w", slug, catalog.ErrNotFound)
	}
	return nil
}

// Search returns sections whose title or content contains the sanitized
// query, case-insensitively. Simpler than destination search on purpose:
// no token index, no limit.
func (r *Repository) Search(query string) ([]Section, error) {
	sanitized := search.SanitizeQuery(query)
	if sanitized == "" {
		return []Section{}, nil
	}

	all, err := r.List()
	if err != nil {
		return nil, err
	}

	results := []Section{}
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Title), sanitized) ||
			strings.Contains(strings.ToLower(s.Content), sanitized) {
			results = append(results, s)
		}
	}
	return results, nil
}

func scanSection(row interface{ Scan(...interface{}) error }) (*Section, error) {
	var s Section
	var scope sql.NullString

	if err := row.Scan(&s.Slug, &s.Title, &s.Content, &scope); err != nil {
		return nil, err
	}
	s.ID = s.Slug
	if scope.Valid {
		s.RegionScope = &scope.String
	}
	return &s, nil
}

func validateSection(s Section) error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.Slug, validation.Required),
		validation.Field(&s.Title, validation.Required),
	)
	if err != nil {
		return &catalog.ValidationError{Field: "section", Reason: err.Error()}
	}
	return nil
}
