package app

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

// placeholderRunRegex matches three or more consecutive bind placeholders,
// as produced for the wide match and season inserts.
var placeholderRunRegex = regexp.MustCompile(`\$\d+(?:, \$\d+){2,}`)

// formatDBQueryForTrace renders repository SQL as the db.statement span
// attribute. Whitespace is collapsed, placeholder runs fold to
// "$first, ..., $last" and the result is capped on a rune boundary.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if normalized == "" {
		return normalized
	}

	normalized = placeholderRunRegex.ReplaceAllStringFunc(normalized, func(run string) string {
		parts := strings.Split(run, ", ")
		return parts[0] + ", ..., " + parts[len(parts)-1]
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut] + "..."
}
