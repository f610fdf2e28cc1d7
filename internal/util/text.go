package util

import (
	"regexp"
	"strings"
)

var (
	reSpaces     = regexp.MustCompile(`\s+`)
	reQuotes     = regexp.MustCompile("[\"“”]")
	reSlugStrip  = regexp.MustCompile("[()\\[\\]{}\"'`]")
	reSlugSep    = regexp.MustCompile(`[/|]`)
	reSlugHyphen = regexp.MustCompile(`-+`)
)

// NormalizeKey produces the matching/dedup key for an item name: whitespace
// runs collapsed, straight and curly double quotes stripped, trimmed,
// lowercased. Never used for display.
func NormalizeKey(input string) string {
	s := reSpaces.ReplaceAllString(input, " ")
	s = reQuotes.ReplaceAllString(s, "")
	return strings.ToLower(strings.TrimSpace(s))
}

// Slugify derives a URL-safe slug, preferring the English name when present.
func Slugify(nameEn, nameKo string) string {
	base := strings.TrimSpace(nameEn)
	if base == "" {
		base = strings.TrimSpace(nameKo)
	}
	s := strings.ToLower(base)
	s = reSlugStrip.ReplaceAllString(s, "")
	s = reSlugSep.ReplaceAllString(s, "-")
	s = reSpaces.ReplaceAllString(s, "-")
	s = reSlugHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func StringPtr(v string) *string { return &v }
