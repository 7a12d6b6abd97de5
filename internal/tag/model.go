// Package tag provides the tag taxonomy: a fixed set of categories and the
// tag definitions attachable to destinations for faceted filtering.
package tag

// Category is one of the four taxonomy groups.
type Category string

const (
	CategoryTripStyle       Category = "trip-style"
	CategoryActivities      Category = "activities"
	CategoryTravelerProfile Category = "traveler-profile"
	CategoryLandscape       Category = "landscape"
)

// ValidCategory returns true if c is a known category.
func ValidCategory(c string) bool {
	switch Category(c) {
	case CategoryTripStyle, CategoryActivities, CategoryTravelerProfile, CategoryLandscape:
		return true
	}
	return false
}

// CategoryInfo describes a taxonomy category for display.
type CategoryInfo struct {
	Key   Category `json:"key"`
	Label string   `json:"label"`
	Color string   `json:"color"`
}

// Categories returns the four taxonomy categories in fixed display order.
func Categories() []CategoryInfo {
	return []CategoryInfo{
		{Key: CategoryTripStyle, Label: "Trip Style", Color: "blue"},
		{Key: CategoryActivities, Label: "Activities", Color: "green"},
		{Key: CategoryTravelerProfile, Label: "Traveler Profile", Color: "purple"},
		{Key: CategoryLandscape, Label: "Landscape", Color: "amber"},
	}
}

// CategoryColor returns the display color for a category, "gray" for unknown.
func CategoryColor(c Category) string {
	for _, info := range Categories() {
		if info.Key == c {
			return info.Color
		}
	}
	return "gray"
}

// Definition is a single taxonomy tag. The slug is the primary key referenced
// by destination tag sets and is immutable once created.
type Definition struct {
	Slug     string   `json:"slug"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// Label returns the display label for a slug. Orphaned references (a tag
// deleted while still assigned to destinations) fall back to the slug itself.
func Label(slug string, tags []Definition) string {
	for _, t := range tags {
		if t.Slug == slug {
			return t.Label
		}
	}
	return slug
}
