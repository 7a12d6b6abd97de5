package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gtravel/snapshots/internal/destination"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printDestinationTable prints destinations in a tab-aligned table.
func printDestinationTable(dests []*destination.Destination) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tREGION\tSTATUS\tUPDATED")
	for _, d := range dests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			d.Slug, d.Name, d.RegionName, d.Status, derefOr(d.DateUpdated, "-"))
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: flushing output: %v\n", err)
	}
	fmt.Printf("\n%d destinations\n", len(dests))
}

// printDestinationDetail prints the full snapshot for one destination.
func printDestinationDetail(d *destination.Destination) {
	fmt.Printf("%s (%s)\n", d.Name, d.Slug)
	fmt.Printf("  Region:   %s\n", d.RegionName)
	fmt.Printf("  Status:   %s\n", d.Status)
	printField("Min nights", d.NightMin)
	printField("Key facts", d.KeyFacts)
	printField("Urgency", d.Urgency)
	printField("Solo pricing", d.SoloPricing)
	printField("Pax limits", d.PaxLimit)
	printField("Accommodations", d.Accommodations)
	printField("How to feature", d.HowToFeature)
	printField("Pairs with", d.PairWith)
	printField("Good for", d.ClientTypesGood)
	printField("Okay for", d.ClientTypesOkay)
	printField("Not for", d.ClientTypesBad)
	printField("Notes", d.GeneralNotes1)
	printField("More notes", d.GeneralNotes2)

	if len(d.PricingTiers) > 0 {
		fmt.Println("  Pricing:")
		for _, t := range d.PricingTiers {
			fmt.Printf("    %s: week %s, day %s", t.TierLabel,
				derefOr(t.PricePerWeek, "-"), derefOr(t.PricePerDay, "-"))
			if t.Notes != nil {
				fmt.Printf(" (%s)", *t.Notes)
			}
			fmt.Println()
		}
	}

	if entries := destination.ParseSeasonality(d.Seasonality); len(entries) > 0 {
		fmt.Println("  Seasonality:")
		for _, e := range entries {
			fmt.Printf("    %s %s: %s\n", e.Level, e.DateRange, e.Description)
		}
	} else if d.Seasonality != nil {
		printField("Seasonality", d.Seasonality)
	}

	if len(d.Tags) > 0 {
		fmt.Printf("  Tags:     %s\n", strings.Join(d.Tags, ", "))
	}
	if d.DateUpdated != nil {
		fmt.Printf("  Updated:  %s by %s\n", *d.DateUpdated, derefOr(d.UpdatedBy, "Unknown"))
	}
}

// printSearchResults prints search hits with their plain-text snippets.
func printSearchResults(results []destination.SearchResult) {
	for _, r := range results {
		fmt.Printf("%s (%s) in %s\n", r.Name, r.Slug, r.RegionName)
		if r.Snippet != "" {
			fmt.Printf("  %s\n", stripMarks(r.Snippet))
		}
	}
	fmt.Printf("\n%d results\n", len(results))
}

// stripMarks removes the <mark> emphasis used by the web UI.
func stripMarks(s string) string {
	s = strings.ReplaceAll(s, "<mark>", "")
	return strings.ReplaceAll(s, "</mark>", "")
}

func printField(label string, v *string) {
	if v == nil || *v == "" {
		return
	}
	fmt.Printf("  %-9s %s\n", label+":", *v)
}

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
