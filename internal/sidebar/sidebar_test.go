package sidebar

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/gtravel/snapshots/internal/cache"
	"github.com/gtravel/snapshots/internal/db"
	"github.com/gtravel/snapshots/internal/region"
	"github.com/gtravel/snapshots/internal/section"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return d
}

func seedSidebar(t *testing.T, d *sql.DB) {
	t.Helper()

	regions := region.NewRepository(d)
	for _, reg := range []region.Region{
		{Slug: "africa", Name: "Africa", SortOrder: 1},
		{Slug: "canal", Name: "Canada & Latin America", SortOrder: 2},
	} {
		if err := regions.Upsert(reg); err != nil {
			t.Fatalf("seed region %s: %v", reg.Slug, err)
		}
	}

	insert := `INSERT INTO destinations (slug, name, region_slug, region_name, status)
		VALUES (?, ?, ?, ?, ?)`
	for _, row := range []struct{ slug, name, regionSlug, regionName, status string }{
		{"kenya", "Kenya", "africa", "Africa", "active"},
		{"botswana", "Botswana", "africa", "Africa", "active"},
		{"peru", "Peru", "canal", "Canada & Latin America", "active"},
		{"antarctica", "Antarctica", "canal", "Canada & Latin America", "active"},
		{"chad", "Chad", "africa", "Africa", "stop_sell"},
	} {
		if _, err := d.Exec(insert, row.slug, row.name, row.regionSlug, row.regionName, row.status); err != nil {
			t.Fatalf("insert %s: %v", row.slug, err)
		}
	}

	if err := section.NewRepository(d).Create(section.Section{Slug: "river-cruises", Title: "River Cruises"}); err != nil {
		t.Fatalf("seed section: %v", err)
	}
}

func TestContinentFor(t *testing.T) {
	tests := []struct {
		dest, region, want string
	}{
		{"kenya", "africa", "Africa"},
		{"peru", "canal", "South America"},
		{"antarctica", "canal", "Polar Regions"},
		{"mystery", "canal", "Americas"},
		{"mystery", "unknown-region", "Other"},
	}

	for _, tt := range tests {
		if got := ContinentFor(tt.dest, tt.region); got != tt.want {
			t.Errorf("ContinentFor(%s, %s) = %q, want %q", tt.dest, tt.region, got, tt.want)
		}
	}
}

func TestBuildGroupsAndOrders(t *testing.T) {
	d := testDB(t)
	seedSidebar(t, d)

	svc := NewService(d)
	data, err := svc.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// Africa, South America, Polar Regions in fixed continent order.
	wantContinents := []string{"Africa", "South America", "Polar Regions"}
	if len(data.Continents) != len(wantContinents) {
		t.Fatalf("continents = %d, want %d", len(data.Continents), len(wantContinents))
	}
	for i, w := range wantContinents {
		if data.Continents[i].Name != w {
			t.Errorf("continents[%d] = %s, want %s", i, data.Continents[i].Name, w)
		}
	}

	africa := data.Continents[0]
	if len(africa.Destinations) != 2 {
		t.Fatalf("africa destinations = %d, want 2 (stop_sell excluded)", len(africa.Destinations))
	}
	if africa.Destinations[0].Name != "Botswana" || africa.Destinations[1].Name != "Kenya" {
		t.Errorf("africa order = %s, %s", africa.Destinations[0].Name, africa.Destinations[1].Name)
	}

	if len(data.Regions) != 2 || data.Regions[0].Slug != "africa" {
		t.Errorf("regions = %+v", data.Regions)
	}
	if len(data.SpecialSections) != 1 || data.SpecialSections[0].Slug != "river-cruises" {
		t.Errorf("sections = %+v", data.SpecialSections)
	}
}

func TestGetUsesCacheUntilInvalidated(t *testing.T) {
	d := testDB(t)
	seedSidebar(t, d)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewServiceWithCache(d, cache.NewTTLWithClock[Data](DefaultTTL, func() time.Time { return now }))

	before, err := svc.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if _, err := d.Exec(
		`INSERT INTO destinations (slug, name, region_slug, region_name, status)
		 VALUES ('zanzibar', 'Zanzibar', 'africa', 'Africa', 'active')`,
	); err != nil {
		t.Fatalf("insert: %v", err)
	}

	cached, err := svc.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(cached.Continents[0].Destinations) != len(before.Continents[0].Destinations) {
		t.Error("expected stale cached tree before invalidation")
	}

	svc.Invalidate()
	fresh, err := svc.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(fresh.Continents[0].Destinations) != 3 {
		t.Errorf("destinations = %d, want 3 after invalidation", len(fresh.Continents[0].Destinations))
	}
}
