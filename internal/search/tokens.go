// Package search provides token generation, query sanitizing, and snippet
// extraction for the destination search index.
package search

import (
	"regexp"
	"sort"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Tokenize generates the set of lowercase search tokens from a destination's
// searchable field values. Tokens shorter than two characters are dropped.
// The result is sorted so identical input always yields identical output.
func Tokenize(fields []string) []string {
	set := make(map[string]struct{})
	for _, field := range fields {
		if field == "" {
			continue
		}
		cleaned := nonWordRe.ReplaceAllString(strings.ToLower(field), " ")
		for _, word := range whitespaceRe.Split(cleaned, -1) {
			word = strings.TrimSpace(word)
			if len(word) >= 2 {
				set[word] = struct{}{}
			}
		}
	}

	tokens := make([]string, 0, len(set))
	for t := range set {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// SanitizeQuery strips everything outside word characters, whitespace, and
// hyphens, then trims and lowercases. An empty result means the query has
// nothing searchable in it.
func SanitizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(nonWordRe.ReplaceAllString(query, "")))
}

// QueryWords splits a sanitized query into its non-empty words.
func QueryWords(sanitized string) []string {
	var words []string
	for _, w := range whitespaceRe.Split(sanitized, -1) {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// MatchesTokens reports whether every query word prefix-matches at least one
// token. Different words may be satisfied by different tokens.
func MatchesTokens(tokens []string, words []string) bool {
	for _, w := range words {
		found := false
		for _, t := range tokens {
			if strings.HasPrefix(t, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
