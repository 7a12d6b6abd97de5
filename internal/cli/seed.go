package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gtravel/snapshots/internal/catalog"
	"github.com/gtravel/snapshots/internal/region"
	"github.com/gtravel/snapshots/internal/tag"
)

// seedRegions is the fixed region list the catalog is organized around.
var seedRegions = []region.Region{
	{Slug: "anz-pacific", Name: "ANZ & Pacific", SortOrder: 1},
	{Slug: "africa", Name: "Africa", SortOrder: 2},
	{Slug: "asia", Name: "Asia", SortOrder: 3},
	{Slug: "canal", Name: "The Americas", SortOrder: 4},
	{Slug: "ese", Name: "Eastern & Southern Europe", SortOrder: 5},
	{Slug: "wemea", Name: "Western Europe, Middle East & Africa", SortOrder: 6},
	{Slug: "middle-east", Name: "Middle East", SortOrder: 7},
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed regions and the tag taxonomy",
		Long:  "Insert the fixed region list and the initial tag taxonomy. Safe to re-run: regions are upserted and existing tags are left alone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

func runSeed() error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	regions := region.NewRepository(database)
	for _, reg := range seedRegions {
		if err := regions.Upsert(reg); err != nil {
			return fmt.Errorf("seeding region %s: %w", reg.Slug, err)
		}
	}
	fmt.Printf("Seeded %d regions\n", len(seedRegions))

	tags := tag.NewRepository(database)
	created := 0
	for _, def := range tag.SeedTags {
		err := tags.Create(def)
		if errors.Is(err, catalog.ErrConflict) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seeding tag %s: %w", def.Slug, err)
		}
		created++
	}
	fmt.Printf("Seeded %d tags (%d already present)\n", created, len(tag.SeedTags)-created)

	return nil
}
