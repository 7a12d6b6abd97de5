package tag

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

func TestCreateAndGet(t *testing.T) {
	repo := testRepo(t)

	err := repo.Create(Definition{Slug: "birding", Label: "Birding", Category: CategoryActivities})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get("birding")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Label != "Birding" || got.Category != CategoryActivities {
		t.Errorf("got %+v", got)
	}
}

func TestCreateDuplicateSlugConflicts(t *testing.T) {
	repo := testRepo(t)

	def := Definition{Slug: "luxury", Label: "Luxury", Category: CategoryTravelerProfile}
	if err := repo.Create(def); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.Create(def)
	if !errors.Is(err, catalog.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestCreateInvalidCategory(t *testing.T) {
	repo := testRepo(t)

	err := repo.Create(Definition{Slug: "x-tag", Label: "X", Category: "nonsense"})
	if !catalog.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestUpdateTag(t *testing.T) {
	repo := testRepo(t)

	if err := repo.Create(Definition{Slug: "birding", Label: "Birding", Category: CategoryActivities}); err != nil {
		t.Fatalf("create: %v", err)
	}

	label := "Bird Watching"
	cat := CategoryTripStyle
	if err := repo.Update("birding", &label, &cat); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get("birding")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Label != "Bird Watching" || got.Category != CategoryTripStyle {
		t.Errorf("got %+v", got)
	}
}

func TestUpdateMissingTag(t *testing.T) {
	repo := testRepo(t)

	label := "Nope"
	err := repo.Update("missing", &label, nil)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTag(t *testing.T) {
	repo := testRepo(t)

	if err := repo.Create(Definition{Slug: "birding", Label: "Birding", Category: CategoryActivities}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete("birding"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := repo.Delete("birding"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestListByCategory(t *testing.T) {
	repo := testRepo(t)

	for _, d := range []Definition{
		{Slug: "luxury", Label: "Luxury", Category: CategoryTravelerProfile},
		{Slug: "birding", Label: "Birding", Category: CategoryActivities},
		{Slug: "photography", Label: "Photography", Category: CategoryActivities},
	} {
		if err := repo.Create(d); err != nil {
			t.Fatalf("create %s: %v", d.Slug, err)
		}
	}

	got, err := repo.ListByCategory(CategoryActivities)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "birding" || got[1].Slug != "photography" {
		t.Errorf("got %+v", got)
	}
}

func TestLabelFallsBackToSlug(t *testing.T) {
	tags := []Definition{{Slug: "luxury", Label: "Luxury", Category: CategoryTravelerProfile}}

	if got := Label("luxury", tags); got != "Luxury" {
		t.Errorf("Label(luxury) = %q", got)
	}
	if got := Label("deleted-tag", tags); got != "deleted-tag" {
		t.Errorf("Label(deleted-tag) = %q, want slug fallback", got)
	}
}

func TestCategoriesFixedOrder(t *testing.T) {
	cats := Categories()
	if len(cats) != 4 {
		t.Fatalf("len = %d, want 4", len(cats))
	}
	want := []Category{CategoryTripStyle, CategoryActivities, CategoryTravelerProfile, CategoryLandscape}
	for i, w := range want {
		if cats[i].Key != w {
			t.Errorf("cats[%d] = %s, want %s", i, cats[i].Key, w)
		}
	}
}
