package util

import (
	"strings"

	"banlist/internal"
)

// ParseAllowFlag reads the authority source's allow/deny marks: a circle
// glyph or the letter o means allowed, a cross glyph or the letter x means
// denied. Anything else, blanks included, is Unknown; the build collapses
// Unknown to denied when rendering.
func ParseAllowFlag(raw string) internal.RuleFlag {
	s := strings.TrimSpace(raw)
	switch {
	case s == "○" || strings.EqualFold(s, "o"):
		return internal.FlagAllowed
	case s == "×" || strings.EqualFold(s, "x"):
		return internal.FlagDenied
	default:
		return internal.FlagUnknown
	}
}
