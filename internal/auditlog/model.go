// Package auditlog records an append-only history of admin edits.
package auditlog

import "time"

// Action identifies the kind of admin edit.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Change is a single field-level difference between old and new record state.
// From and To are empty when the side had no value.
type Change struct {
	Field string `json:"field"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

// Entry is one immutable audit record. Entries are never mutated or deleted;
// they are the sole historical record of destination edits.
type Entry struct {
	ID         string    `json:"id"`
	Action     Action    `json:"action"`
	TargetName string    `json:"target_name"`
	TargetSlug string    `json:"target_slug"`
	UpdatedBy  string    `json:"updated_by"`
	Changes    []Change  `json:"changes"`
	Timestamp  time.Time `json:"timestamp"`
}
