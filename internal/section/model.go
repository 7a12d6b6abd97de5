// Package section provides special sections: freestanding editorial content
// blocks not tied to a single destination.
package section

// Section is one editorial content block. The slug is the unique key.
// RegionScope is an optional label, not an enforced foreign key.
type Section struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	RegionScope *string `json:"region_scope,omitempty"`
}
