package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
// Serialized structures (seasonality, pricing_tiers, tags, search_tokens,
// audit changes) travel as encoded text blobs inside their parent record.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS regions (
		slug        TEXT    PRIMARY KEY,
		name        TEXT    NOT NULL,
		description TEXT,
		sort_order  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS destinations (
		slug               TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		region_slug        TEXT NOT NULL,
		region_name        TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL DEFAULT 'active',
		night_min          TEXT,
		key_facts          TEXT,
		urgency            TEXT,
		solo_pricing       TEXT,
		pax_limit          TEXT,
		accommodations     TEXT,
		how_to_feature     TEXT,
		pair_with          TEXT,
		general_notes_1    TEXT,
		general_notes_2    TEXT,
		client_types_good  TEXT,
		client_types_okay  TEXT,
		client_types_bad   TEXT,
		seasonality        TEXT,
		cs_rsm_source      TEXT,
		summary_of_changes TEXT,
		date_updated       TEXT,
		updated_by         TEXT,
		pricing_tiers      TEXT NOT NULL DEFAULT '[]',
		tags               TEXT NOT NULL DEFAULT '[]',
		search_tokens      TEXT NOT NULL DEFAULT '[]',
		created_at         DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at         DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_destinations_region ON destinations(region_slug)`,
	`CREATE INDEX IF NOT EXISTS idx_destinations_status ON destinations(status)`,
	`CREATE TABLE IF NOT EXISTS special_sections (
		slug         TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		content      TEXT NOT NULL DEFAULT '',
		region_scope TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS tag_definitions (
		slug     TEXT PRIMARY KEY,
		label    TEXT NOT NULL,
		category TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_logs (
		id          TEXT PRIMARY KEY,
		action      TEXT NOT NULL,
		target_name TEXT NOT NULL,
		target_slug TEXT NOT NULL,
		updated_by  TEXT NOT NULL,
		changes     TEXT NOT NULL DEFAULT '[]',
		timestamp   DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_logs_timestamp ON admin_logs(timestamp)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
