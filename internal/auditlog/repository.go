package auditlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// execer is satisfied by both *sql.DB and *sql.Tx so entries can be appended
// inside the same transaction as the write they describe.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// Repository appends and reads admin log entries.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an audit log repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Append writes a new entry. A zero ID gets a generated uuid; a zero
// timestamp gets the current time.
func (r *Repository) Append(e Entry) error {
	return appendEntry(r.db, e)
}

// AppendTx writes a new entry within an existing transaction.
func (r *Repository) AppendTx(tx *sql.Tx, e Entry) error {
	return appendEntry(tx, e)
}

func appendEntry(ex execer, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Changes == nil {
		e.Changes = []Change{}
	}

	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return fmt.Errorf("encoding changes: %w", err)
	}

	if _, err := ex.Exec(
		`INSERT INTO admin_logs (id, action, target_name, target_slug, updated_by, changes, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Action), e.TargetName, e.TargetSlug, e.UpdatedBy, string(changes), e.Timestamp,
	); err != nil {
		return fmt.Errorf("appending log entry: %w", err)
	}

	return nil
}

// Recent returns the most recent entries, newest first.
func (r *Repository) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, action, target_name, target_slug, updated_by, changes, timestamp
		 FROM admin_logs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing log entries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var action, changes string
		if err := rows.Scan(&e.ID, &action, &e.TargetName, &e.TargetSlug, &e.UpdatedBy, &changes, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning log entry: %w", err)
		}
		e.Action = Action(action)
		if err := json.Unmarshal([]byte(changes), &e.Changes); err != nil {
			// A corrupt blob degrades to an empty change list.
			e.Changes = []Change{}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log entries: %w", err)
	}

	return entries, nil
}
