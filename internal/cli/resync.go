package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gtravel/snapshots/internal/destination"
)

func newResyncRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resync-regions",
		Short: "Re-copy region names onto destinations",
		Long:  "Destination records carry a snapshot copy of their region's name. After renaming a region, run this to re-copy the name and rebuild search tokens on affected destinations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResyncRegions()
		},
	}
}

func runResyncRegions() error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	n, err := destination.NewStore(database).ResyncRegionNames()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]int{"updated": n})
	}
	fmt.Printf("Updated %d destinations\n", n)
	return nil
}
