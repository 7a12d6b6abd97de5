package cli

import (
	"github.com/spf13/cobra"

	"github.com/gtravel/snapshots/internal/destination"
)

func newListCmd() *cobra.Command {
	var (
		regionSlug string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List destinations",
		Long:  "List destinations, optionally filtered by region. Only active destinations are shown unless --all is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(regionSlug, all)
		},
	}

	cmd.Flags().StringVar(&regionSlug, "region", "", "only show destinations in this region")
	cmd.Flags().BoolVar(&all, "all", false, "include not_selling and stop_sell destinations")

	return cmd
}

func runList(regionSlug string, all bool) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	repo := destination.NewRepository(database)

	var dests []*destination.Destination
	switch {
	case regionSlug != "":
		dests, err = repo.ListByRegion(regionSlug)
	case all:
		dests, err = repo.ListAll()
	default:
		dests, err = repo.ListActive()
	}
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(dests)
	}

	printDestinationTable(dests)
	return nil
}
