package destination

import "testing"

func TestParseSeasonality(t *testing.T) {
	raw := `[{"level":"High","date_range":"Jun-Sep","description":"Dry season"},{"level":"low","date_range":"Nov-Mar","description":"Green season"}]`

	entries := ParseSeasonality(&raw)
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Level != "High" || entries[0].DateRange != "Jun-Sep" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	// Order is display-significant.
	if entries[1].Level != "low" {
		t.Errorf("entries[1].Level = %q, want low", entries[1].Level)
	}
}

func TestParseSeasonalityDegradesGracefully(t *testing.T) {
	malformed := `{not json at all`
	if got := ParseSeasonality(&malformed); got != nil {
		t.Errorf("got %v, want nil for malformed blob", got)
	}

	empty := ""
	if got := ParseSeasonality(&empty); got != nil {
		t.Errorf("got %v, want nil for empty blob", got)
	}
	if got := ParseSeasonality(nil); got != nil {
		t.Errorf("got %v, want nil for missing blob", got)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"active", "not_selling", "stop_sell"} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("paused") {
		t.Error("ValidStatus(paused) = true")
	}
}

func TestHasTag(t *testing.T) {
	d := &Destination{Tags: []string{"luxury", "safari-and-wildlife"}}
	if !d.HasTag("luxury") {
		t.Error("expected luxury tag")
	}
	if d.HasTag("birding") {
		t.Error("did not expect birding tag")
	}
}
