package cli

import (
	"github.com/spf13/cobra"

	"github.com/gtravel/snapshots/internal/destination"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Show one destination",
		Long:  "Show the full snapshot for a single destination by slug.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args[0])
		},
	}
}

func runShow(slug string) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	d, err := destination.NewRepository(database).Get(slug)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(d)
	}

	printDestinationDetail(d)
	return nil
}
