package sidebar

// Static continent grouping for the navigation tree. Destinations not listed
// in the overrides inherit their region's default continent.

var destinationContinentOverrides = map[string]string{
	// CANAL region splits across continents
	"antarctica":         "Polar Regions",
	"arctic-svalbard":    "Polar Regions",
	"canada-east":        "North America",
	"canada-west":        "North America",
	"usa-alaska":         "North America",
	"usa-california":     "North America",
	"usa-hawaii":         "North America",
	"usa-national-parks": "North America",
	"usa-new-england":    "North America",
	"mexico":             "North America",
	"argentina":          "South America",
	"belize":             "Central America & Caribbean",
	"bolivia":            "South America",
	"brazil":             "South America",
	"chile":              "South America",
	"colombia":           "South America",
	"costa-rica":         "Central America & Caribbean",
	"ecuador":            "South America",
	"galapagos":          "South America",
	"guatemala":          "Central America & Caribbean",
	"panama":             "Central America & Caribbean",
	"peru":               "South America",
	"uruguay":            "South America",
	// WEMEA region splits across continents
	"egypt":         "Middle East & North Africa",
	"england":       "Europe",
	"scotland":      "Europe",
	"ireland":       "Europe",
	"iceland":       "Europe",
	"portugal":      "Europe",
	"spain":         "Europe",
	"azores":        "Europe",
	"river-cruises": "Europe",
}

var regionDefaultContinent = map[string]string{
	"anz-pacific": "Oceania",
	"africa":      "Africa",
	"asia":        "Asia",
	"canal":       "Americas",
	"ese":         "Europe",
	"wemea":       "Europe",
	"middle-east": "Middle East & North Africa",
}

var continentOrder = []string{
	"Africa",
	"Asia",
	"Europe",
	"Middle East & North Africa",
	"North America",
	"Central America & Caribbean",
	"South America",
	"Oceania",
	"Polar Regions",
}

// ContinentFor returns the display continent for a destination, falling back
// to the region default and then to "Other".
func ContinentFor(destSlug, regionSlug string) string {
	if c, ok := destinationContinentOverrides[destSlug]; ok {
		return c
	}
	if c, ok := regionDefaultContinent[regionSlug]; ok {
		return c
	}
	return "Other"
}

// continentRank returns the display position of a continent, or -1 for
// continents outside the fixed order.
func continentRank(name string) int {
	for i, c := range continentOrder {
		if c == name {
			return i
		}
	}
	return -1
}
