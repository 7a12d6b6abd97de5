package tag

import (
	"regexp"
	"strings"
)

var (
	slugStripRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// Slugify derives a slug from a human label: lowercase, strip everything
// outside letters, digits, whitespace and hyphens, turn whitespace runs into
// single hyphens, collapse repeated hyphens, and trim hyphens at the ends.
func Slugify(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
