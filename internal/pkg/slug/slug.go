// Package slug derives URL slugs from titles.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// From derives a slug from a title: lowercased, runs of non-alphanumeric
// characters collapsed to a single hyphen, no leading or trailing hyphen.
func From(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
