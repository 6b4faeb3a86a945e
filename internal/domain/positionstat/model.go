package positionstat

import "regexp"

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Row is one per-position defensive stat observed for a team in a season period.
type Row struct {
	Team     string
	Position string
	Period   string
	StatName string
	Value    float64
}

// ValidPeriod reports whether v looks like a season label such as "2025-26".
func ValidPeriod(v string) bool {
	return periodPattern.MatchString(v)
}
