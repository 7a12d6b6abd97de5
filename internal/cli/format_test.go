package cli

import "testing"

func TestStripMarks(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"no marks", "plain text", "plain text"},
		{"one mark", "known for its <mark>wine</mark> country", "known for its wine country"},
		{"several marks", "<mark>a</mark> and <mark>b</mark>", "a and b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripMarks(tt.in); got != tt.expected {
				t.Errorf("stripMarks(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestDerefOr(t *testing.T) {
	v := "value"
	empty := ""

	if got := derefOr(&v, "-"); got != "value" {
		t.Errorf("got %q", got)
	}
	if got := derefOr(nil, "-"); got != "-" {
		t.Errorf("got %q", got)
	}
	if got := derefOr(&empty, "-"); got != "-" {
		t.Errorf("got %q", got)
	}
}
