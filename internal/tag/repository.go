package tag

import (
	"database/sql"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gtravel/snapshots/internal/catalog"
)

// Repository provides CRUD operations for tag definitions.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a tag repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List returns all tag definitions ordered by category then label.
func (r *Repository) List() ([]Definition, error) {
	rows, err := r.db.Query(
		"SELECT slug, label, category FROM tag_definitions ORDER BY category, label",
	)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var tags []Definition
	for rows.Next() {
		var t Definition
		if err := rows.Scan(&t.Slug, &t.Label, &t.Category); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}

// ListByCategory returns the tags in a single category, ordered by label.
func (r *Repository) ListByCategory(category Category) ([]Definition, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	var tags []Definition
	for _, t := range all {
		if t.Category == category {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// Get returns a tag definition by slug.
func (r *Repository) Get(slug string) (*Definition, error) {
	var t Definition
	err := r.db.QueryRow(
		"SELECT slug, label, category FROM tag_definitions WHERE slug = ?", slug,
	).Scan(&t.Slug, &t.Label, &t.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %s: %w", slug, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying tag %s: %w", slug, err)
	}
	return &t, nil
}

// Create adds a new tag definition. Fails with catalog.ErrConflict if the
// slug is already taken.
func (r *Repository) Create(t Definition) error {
	if err := validateDefinition(t); err != nil {
		return err
	}

	var exists int
	err := r.db.QueryRow(
		"SELECT 1 FROM tag_definitions WHERE slug = ?", t.Slug,
	).Scan(&exists)
	if err == nil {
		return fmt.Errorf("tag %s: %w", t.Slug, catalog.ErrConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking tag %s: %w", t.Slug, err)
	}

	if _, err := r.db.Exec(
		"INSERT INTO tag_definitions (slug, label, category) VALUES (?, ?, ?)",
		t.Slug, t.Label, string(t.Category),
	); err != nil {
		return fmt.Errorf("creating tag %s: %w", t.Slug, err)
	}

	return nil
}

// Update changes a tag's label and/or category. The slug is immutable.
func (r *Repository) Update(slug string, label *string, category *Category) error {
	existing, err := r.Get(slug)
	if err != nil {
		return err
	}

	if label != nil {
		existing.Label = *label
	}
	if category != nil {
		existing.Category = *category
	}
	if err := validateDefinition(*existing); err != nil {
		return err
	}

	if _, err := r.db.Exec(
		"UPDATE tag_definitions SET label = ?, category = ? WHERE slug = ?",
		existing.Label, string(existing.Category), slug,
	); err != nil {
		return fmt.Errorf("updating tag %s: %w", slug, err)
	}

	return nil
}

// Delete removes a tag definition. Destinations keep any stale reference to
// the deleted slug; rendering falls back to the slug as the label.
func (r *Repository) Delete(slug string) error {
	result, err := r.db.Exec("DELETE FROM tag_definitions WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("deleting tag %s: %w", slug, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tag %s: %w", slug, catalog.ErrNotFound)
	}

	return nil
}

func validateDefinition(t Definition) error {
	err := validation.ValidateStruct(&t,
		validation.Field(&t.Slug, validation.Required),
		validation.Field(&t.Label, validation.Required),
		validation.Field(&t.Category, validation.Required, validation.By(func(v interface{}) error {
			if !ValidCategory(string(v.(Category))) {
				return fmt.Errorf("unknown category %q", v)
			}
			return nil
		})),
	)
	if err != nil {
		return &catalog.ValidationError{Field: "tag", Reason: err.Error()}
	}
	return nil
}
