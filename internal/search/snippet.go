package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	snippetBefore = 40
	snippetAfter  = 100
)

// Snippet extracts a highlighted excerpt for a search result. Fields are
// scanned in priority order; only the first field containing any query word
// produces a snippet. Occurrences of query words inside the excerpt are
// wrapped in <mark> tags. Returns "" when nothing matches.
func Snippet(fields []string, query string) string {
	words := QueryWords(strings.ToLower(query))
	if len(words) == 0 {
		return ""
	}

	for _, field := range fields {
		if field == "" {
			continue
		}
		lower := strings.ToLower(field)

		matchPos := -1
		for _, w := range words {
			pos := strings.Index(lower, w)
			if pos != -1 && (matchPos == -1 || pos < matchPos) {
				matchPos = pos
			}
		}
		if matchPos == -1 {
			continue
		}

		start := runeFloor(field, max(0, matchPos-snippetBefore))
		end := runeFloor(field, min(len(field), matchPos+snippetAfter))

		snippet := strings.TrimSpace(field[start:end])
		if start > 0 {
			snippet = "..." + snippet
		}
		if end < len(field) {
			snippet = snippet + "..."
		}

		for _, w := range words {
			re := regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(w) + `)`)
			snippet = re.ReplaceAllString(snippet, "<mark>$1</mark>")
		}
		return snippet
	}

	return ""
}

// runeFloor moves a byte offset back to the nearest rune boundary so window
// slicing never splits a multi-byte character.
func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
