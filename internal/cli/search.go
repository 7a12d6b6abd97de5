package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gtravel/snapshots/internal/destination"
)

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search destinations",
		Long:  "Free-text search over active destinations. Every query word must prefix-match a token in the destination's search index.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(strings.Join(args, " "), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")

	return cmd
}

func runSearch(query string, limit int) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	results, err := destination.NewStore(database).Search(query, limit)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Printf("No destinations matched %q\n", query)
		return nil
	}
	printSearchResults(results)
	return nil
}
