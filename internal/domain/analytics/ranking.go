package analytics

import (
	"fmt"
	"strings"
)

// MaxRankingResults caps ranking output, applied after group-then-stat ordering.
const MaxRankingResults = 20

// DefaultGroups is the fixed, ordered list of position groups.
var DefaultGroups = []string{"PG", "SG", "SF", "PF", "C"}

// OmissionReason explains why a (group, stat) pair produced no result.
type OmissionReason string

const (
	OmitGroupMissing      OmissionReason = "group_missing"
	OmitMissingValue      OmissionReason = "missing_value"
	OmitZeroValue         OmissionReason = "zero_value"
	OmitDegenerateAverage OmissionReason = "degenerate_average"
)

// Omission records a skipped pair. Stat is empty when the whole group was skipped.
type Omission struct {
	Group  string
	Stat   string
	Reason OmissionReason
}

// RankingResult describes the target entity against one group cohort for one stat.
// Rank 1 is the lowest value in the cohort.
type RankingResult struct {
	Entity     string
	StatName   string
	Group      string
	Value      float64
	PctDiff    float64
	Rank       int
	CohortSize int
}

// Ranking is the output of Rank.
type Ranking struct {
	Results   []RankingResult
	Omissions []Omission
	// Truncated counts results dropped by MaxRankingResults.
	Truncated int
}

// Rank compares target against every cohort in groups (DefaultGroups when empty).
func Rank(pivoted *Pivoted, target string, stats []string, groups []string) (Ranking, error) {
	if pivoted.Len() == 0 {
		return Ranking{}, ErrNoData
	}
	if len(groups) == 0 {
		groups = DefaultGroups
	}

	target = strings.TrimSpace(target)
	out := Ranking{}
	found := false

	for _, group := range groups {
		cohort := pivoted.cohort(group)
		subject := findEntity(cohort, target)
		if subject == nil {
			out.Omissions = append(out.Omissions, Omission{Group: group, Reason: OmitGroupMissing})
			continue
		}
		found = true

		for _, stat := range stats {
			result, reason, ok := rankStat(cohort, subject, stat)
			if !ok {
				out.Omissions = append(out.Omissions, Omission{Group: group, Stat: stat, Reason: reason})
				continue
			}
			out.Results = append(out.Results, result)
		}
	}

	if !found {
		return Ranking{}, fmt.Errorf("%w: %s", ErrTargetNotFound, target)
	}

	if len(out.Results) > MaxRankingResults {
		out.Truncated = len(out.Results) - MaxRankingResults
		out.Results = out.Results[:MaxRankingResults]
	}
	return out, nil
}

func rankStat(cohort []*PivotedRecord, subject *PivotedRecord, stat string) (RankingResult, OmissionReason, bool) {
	key := StatKey(stat)
	value, ok := subject.Stats[key]
	if !ok {
		return RankingResult{}, OmitMissingValue, false
	}
	if value == 0 {
		return RankingResult{}, OmitZeroValue, false
	}

	var sum float64
	below := 0
	for _, member := range cohort {
		v, has := member.Stats[key]
		if !has {
			continue
		}
		sum += v
		if v < value {
			below++
		}
	}

	avg := sum / float64(len(cohort))
	if avg == 0 {
		return RankingResult{}, OmitDegenerateAverage, false
	}

	return RankingResult{
		Entity:     subject.Entity,
		StatName:   strings.TrimSpace(stat),
		Group:      subject.Group,
		Value:      value,
		PctDiff:    round2((value - avg) / avg * 100),
		Rank:       below + 1,
		CohortSize: len(cohort),
	}, "", true
}

func findEntity(cohort []*PivotedRecord, entity string) *PivotedRecord {
	for _, record := range cohort {
		if strings.EqualFold(strings.TrimSpace(record.Entity), entity) {
			return record
		}
	}
	return nil
}
