package region

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/gtravel/snapshots/internal/catalog"
)

// Repository provides read and seed operations for regions.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a region repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List returns all regions ordered by sort_order.
func (r *Repository) List() ([]Region, error) {
	rows, err := r.db.Query(
		"SELECT slug, name, description, sort_order FROM regions ORDER BY sort_order",
	)
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var regions []Region
	for rows.Next() {
		reg, err := scanRegion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning region: %w", err)
		}
		regions = append(regions, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating regions: %w", err)
	}

	return regions, nil
}

// ListWithCounts returns all regions with their live active-destination counts.
func (r *Repository) ListWithCounts() ([]WithCount, error) {
	regions, err := r.List()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		"SELECT region_slug, COUNT(*) FROM destinations WHERE status = 'active' GROUP BY region_slug",
	)
	if err != nil {
		return nil, fmt.Errorf("counting destinations: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var slug string
		var n int
		if err := rows.Scan(&slug, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[slug] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}

	result := make([]WithCount, 0, len(regions))
	for _, reg := range regions {
		result = append(result, WithCount{Region: reg, DestinationCount: counts[reg.Slug]})
	}
	return result, nil
}

// Get returns a region by slug.
func (r *Repository) Get(slug string) (*Region, error) {
	row := r.db.QueryRow(
		"SELECT slug, name, description, sort_order FROM regions WHERE slug = ?", slug,
	)

	reg, err := scanRegion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("region %s: %w", slug, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying region %s: %w", slug, err)
	}
	return reg, nil
}

// Upsert inserts or replaces a region. Used by seeding and imports.
func (r *Repository) Upsert(reg Region) error {
	if reg.Slug == "" || reg.Name == "" {
		return &catalog.ValidationError{Field: "region", Reason: "slug and name are required"}
	}

	if _, err := r.db.Exec(
		`INSERT INTO regions (slug, name, description, sort_order) VALUES (?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET name = excluded.name,
			description = excluded.description, sort_order = excluded.sort_order`,
		reg.Slug, reg.Name, reg.Description, reg.SortOrder,
	); err != nil {
		return fmt.Errorf("upserting region %s: %w", reg.Slug, err)
	}
	return nil
}

func scanRegion(row interface{ Scan(...interface{}) error }) (*Region, error) {
	var reg Region
	var description sql.NullString

	if err := row.Scan(&reg.Slug, &reg.Name, &description, &reg.SortOrder); err != nil {
		return nil, err
	}
	if description.Valid {
		reg.Description = &description.String
	}
	return &reg, nil
}
