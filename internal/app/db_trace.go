package app

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxTracedQueryRunes = 512

var (
	sqlWhitespace    = regexp.MustCompile(`\s+`)
	sqlStringLiteral = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// formatDBQueryForTrace flattens a statement onto one line for span names.
// Quoted literals are replaced so seeded emails and customer IDs stay out of
// traces, and long statements are cut on a rune boundary.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	query = sqlStringLiteral.ReplaceAllString(query, "'?'")
	query = sqlWhitespace.ReplaceAllString(query, " ")
	if utf8.RuneCountInString(query) <= maxTracedQueryRunes {
		return query
	}

	runes := []rune(query)
	return string(runes[:maxTracedQueryRunes]) + "..."
}
