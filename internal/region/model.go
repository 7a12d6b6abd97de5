// Package region provides the region domain model and data access.
package region

// Region groups destinations for navigation. The slug is the unique key;
// destinations reference it by region_slug rather than containment.
type Region struct {
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	SortOrder   int     `json:"sort_order"`
}

// WithCount is a region annotated with its live active-destination count.
type WithCount struct {
	Region
	DestinationCount int `json:"destination_count"`
}
