package section

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gtravel/snapshots/internal/catalog"
	"github.com/gtravel/snapshots/internal/db"
)

func testRepo(t *testing.T) *Repository {
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
	return NewRepository(d)
}

func TestCreateGetAndIDEqualsSlug(t *testing.T) {
	repo := testRepo(t)

	err := repo.Create(Section{Slug: "river-cruises", Title: "River Cruises", Content: "# Cruising Europe"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get("river-cruises")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != got.Slug {
		t.Errorf("id %q != slug %q", got.ID, got.Slug)
	}
	if got.Title != "River Cruises" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestCreateConflict(t *testing.T) {
	repo := testRepo(t)

	s := Section{Slug: "river-cruises", Title: "River Cruises"}
	if err := repo.Create(s); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(s); !errors.Is(err, catalog.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	repo := testRepo(t)

	if err := repo.Create(Section{Slug: "x"}); !catalog.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo := testRepo(t)

	if err := repo.Create(Section{Slug: "river-cruises", Title: "River Cruises"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	scope := "wemea"
	if err := repo.Update("river-cruises", Section{Title: "European River Cruises", Content: "updated", RegionScope: &scope}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get("river-cruises")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "European River Cruises" || got.RegionScope == nil || *got.RegionScope != "wemea" {
		t.Errorf("got %+v", got)
	}

	if err := repo.Delete("river-cruises"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete("river-cruises"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestListSortedByTitle(t *testing.T) {
	repo := testRepo(t)

	for _, s := range []Section{
		{Slug: "zodiac", Title: "Zodiac Expeditions"},
		{Slug: "river-cruises", Title: "River Cruises"},
		{Slug: "alpine-rail", Title: "Alpine Rail"},
	} {
		if err := repo.Create(s); err != nil {
			t.Fatalf("create %s: %v", s.Slug, err)
		}
	}

	got, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Alpine Rail", "River Cruises", "Zodiac Expeditions"}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Title, w)
		}
	}
}

func TestSearchSubstring(t *testing.T) {
	repo := testRepo(t)

	if err := repo.Create(Section{Slug: "river-cruises", Title: "River Cruises", Content: "The Danube and the Rhine"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"river", 1},
		{"RIVER", 1},
		{"danube", 1},
		{"ruise", 1}, // substring, not prefix
		{"volcano", 0},
		{"", 0},
	}

	for _, tt := range tests {
		got, err := repo.Search(tt.query)
		if err != nil {
			t.Fatalf("search %q: %v", tt.query, err)
		}
		if len(got) != tt.want {
			t.Errorf("search %q: %d results, want %d", tt.query, len(got), tt.want)
		}
	}
}
