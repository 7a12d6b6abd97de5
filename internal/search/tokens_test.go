package search

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	tokens := Tokenize([]string{"Kenya", "Known for its wine country, and safaris!"})

	want := []string{"and", "country", "for", "its", "kenya", "known", "safaris", "wine"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("tokens = %v, want %v", tokens, want)
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	fields := []string{"Cape Town & Winelands", "great-value safaris", "B"}

	first := Tokenize(fields)
	for i := 0; i < 5; i++ {
		if got := Tokenize(fields); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: tokens = %v, want %v", i, got, first)
		}
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	tokens := Tokenize([]string{"a I x go"})

	for _, tok := range tokens {
		if len(tok) < 2 {
			t.Errorf("token %q shorter than 2 characters", tok)
		}
	}
	if !reflect.DeepEqual(tokens, []string{"go"}) {
		t.Errorf("tokens = %v, want [go]", tokens)
	}
}

func TestTokenizeLowercasesAndStripsPunctuation(t *testing.T) {
	tokens := Tokenize([]string{"Fly-in Safari (Okavango Delta)!"})

	want := []string{"delta", "fly-in", "okavango", "safari"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("tokens = %v, want %v", tokens, want)
	}
}

func TestTokenizeSkipsEmptyFields(t *testing.T) {
	if got := Tokenize([]string{"", "", ""}); len(got) != 0 {
		t.Errorf("tokens = %v, want empty", got)
	}
	if got := Tokenize(nil); len(got) != 0 {
		t.Errorf("tokens = %v, want empty", got)
	}
}

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Wine Country", "wine country"},
		{"  safari!  ", "safari"},
		{"<script>", "script"},
		{"!!!", ""},
		{"great-value", "great-value"},
	}

	for _, tt := range tests {
		if got := SanitizeQuery(tt.in); got != tt.want {
			t.Errorf("SanitizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchesTokensPrefix(t *testing.T) {
	tokens := []string{"country", "luxury", "safari", "wine"}

	tests := []struct {
		words []string
		want  bool
	}{
		{[]string{"saf"}, true},
		{[]string{"safari"}, true},
		{[]string{"afari"}, false},
		{[]string{"luxury", "safari"}, true},
		{[]string{"luxury", "beach"}, false},
		{nil, true},
	}

	for _, tt := range tests {
		if got := MatchesTokens(tokens, tt.words); got != tt.want {
			t.Errorf("MatchesTokens(%v) = %v, want %v", tt.words, got, tt.want)
		}
	}
}
