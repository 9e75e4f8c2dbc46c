package slug

import (
	"regexp"
	"strings"
)

var (
	strip    = regexp.MustCompile(`[^\w\s-]`)
	spaces   = regexp.MustCompile(`\s+`)
	collapse = regexp.MustCompile(`-+`)
)

// Make derives a URL slug: lowercase, punctuation stripped, whitespace
// folded to single hyphens.
func Make(title string) string {
	s := strings.ToLower(title)
	s = strip.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "-")
	s = collapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
