package analytics

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(entity, group, stat string, value float64) StatRow {
	return StatRow{Entity: entity, Group: group, Period: "2025-26", StatName: stat, Value: value}
}

func TestRank_ScenarioAverageAndRank(t *testing.T) {
	pivoted := Pivot([]StatRow{
		row("A", "PG", "PTS", 20),
		row("B", "PG", "PTS", 10),
		row("C", "PG", "PTS", 30),
	})

	got, err := Rank(pivoted, "A", []string{"PTS"}, nil)
	require.NoError(t, err)
	require.Len(t, got.Results, 1)

	result := got.Results[0]
	assert.Equal(t, "A", result.Entity)
	assert.Equal(t, "PTS", result.StatName)
	assert.Equal(t, "PG", result.Group)
	assert.Equal(t, 20.0, result.Value)
	assert.Equal(t, 0.0, result.PctDiff)
	assert.Equal(t, 2, result.Rank)
	assert.Equal(t, 3, result.CohortSize)
}

func TestRank_TargetMatchIsCaseInsensitive(t *testing.T) {
	pivoted := Pivot([]StatRow{
		row("Boston Celtics", "SF", "REB", 6),
		row("Miami Heat", "SF", "REB", 4),
	})

	got, err := Rank(pivoted, "  boston celtics ", []string{"reb"}, nil)
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "Boston Celtics", got.Results[0].Entity)
	assert.Equal(t, 2, got.Results[0].Rank)
	assert.Equal(t, 20.0, got.Results[0].PctDiff)
}

func TestRank_DistinctValuesProduceFullRankSet(t *testing.T) {
	entities := []string{"A", "B", "C", "D", "E", "F"}
	values := []float64{17, 3, 11, 29, 5, 23}

	rows := make([]StatRow, 0, len(entities))
	for i, entity := range entities {
		rows = append(rows, row(entity, "C", "BLK", values[i]))
	}
	pivoted := Pivot(rows)

	seen := make(map[int]bool)
	for _, entity := range entities {
		got, err := Rank(pivoted, entity, []string{"BLK"}, []string{"C"})
		require.NoError(t, err)
		require.Len(t, got.Results, 1)
		rank := got.Results[0].Rank
		assert.False(t, seen[rank], "rank %d assigned twice", rank)
		seen[rank] = true
	}
	for want := 1; want <= len(entities); want++ {
		assert.True(t, seen[want], "rank %d never assigned", want)
	}
}

func TestRank_CohortMinimumRanksFirst(t *testing.T) {
	pivoted := Pivot([]StatRow{
		row("A", "SG", "AST", 2.5),
		row("B", "SG", "AST", 7),
		row("C", "SG", "AST", 2.5),
	})

	got, err := Rank(pivoted, "A", []string{"AST"}, nil)
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, 1, got.Results[0].Rank)
}

func TestRank_ZeroValueIsOmitted(t *testing.T) {
	pivoted := Pivot([]StatRow{
		row("A", "PG", "PTS", 0),
		row("A", "PG", "REB", 5),
		row("B", "PG", "PTS", 10),
		row("B", "PG", "REB", 5),
	})

	got, err := Rank(pivoted, "A", []string{"PTS", "REB"}, []string{"PG"})
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "REB", got.Results[0].StatName)
	assert.Contains(t, got.Omissions, Omission{Group: "PG", Stat: "PTS", Reason: OmitZeroValue})
}

func TestRank_MissingValueIsOmitted(t *testing.T) {
	pivoted := Pivot([]StatRow{
		row("A", "PG", "REB", 5),
		row("B", "PG", "AST", 10),
	})

	got, err := Rank(pivoted, "A", []string{"AST"}, []string{"PG"})
	require.NoError(t, err)
	assert.Empty(t, got.Results)
	assert.Equal(t, []Omission{{Group: "PG", Stat: "AST", Reason: OmitMissingValue}}, got.Omissions)
}

func TestRank_DegenerateAverageIsOmittedNotInfinite(t *testing.T) {
	pivoted := Pivot([]StatRow{
		row("A", "PF", "PTS", 10),
		row("B", "PF", "PTS", -10),
	})

	got, err := Rank(pivoted, "A", []string{"PTS"}, []string{"PF"})
	require.NoError(t, err)
	assert.Empty(t, got.Results)
	assert.Equal(t, []Omission{{Group: "PF", Stat: "PTS", Reason: OmitDegenerateAverage}}, got.Omissions)
	for _, r := range got.Results {
		assert.False(t, math.IsNaN(r.PctDiff) || math.IsInf(r.PctDiff, 0))
	}
}

func TestRank_MissingMembersAverageAsZeroButDoNotRank(t *testing.T) {
	pivoted := Pivot([]StatRow{
		row("A", "PG", "PTS", 20),
		row("B", "PG", "REB", 3),
		row("C", "PG", "PTS", 10),
	})

	got, err := Rank(pivoted, "A", []string{"PTS"}, []string{"PG"})
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	// avg = (20 + 0 + 10) / 3 = 10
	assert.Equal(t, 100.0, got.Results[0].PctDiff)
	assert.Equal(t, 2, got.Results[0].Rank)
	assert.Equal(t, 3, got.Results[0].CohortSize)
}

func TestRank_GroupsWithoutTargetAreSkipped(t *testing.T) {
	pivoted := Pivot([]StatRow{
		row("A", "PG", "PTS", 20),
		row("B", "PG", "PTS", 10),
		row("B", "SG", "PTS", 12),
	})

	got, err := Rank(pivoted, "A", []string{"PTS"}, nil)
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "PG", got.Results[0].Group)
	assert.Contains(t, got.Omissions, Omission{Group: "SG", Reason: OmitGroupMissing})
	assert.Contains(t, got.Omissions, Omission{Group: "C", Reason: OmitGroupMissing})
}

func TestRank_CapKeepsGroupThenStatOrder(t *testing.T) {
	stats := []string{"PTS", "REB", "AST", "STL", "BLK"}
	rows := make([]StatRow, 0, 50)
	for _, group := range DefaultGroups {
		for i, stat := range stats {
			rows = append(rows, row("A", group, stat, float64(100-i)))
			rows = append(rows, row("B", group, stat, float64(1+i)))
		}
	}

	got, err := Rank(Pivot(rows), "A", stats, nil)
	require.NoError(t, err)
	require.Len(t, got.Results, MaxRankingResults)
	assert.Equal(t, 5, got.Truncated)

	for i, result := range got.Results {
		wantGroup := DefaultGroups[i/len(stats)]
		wantStat := stats[i%len(stats)]
		assert.Equal(t, wantGroup, result.Group, fmt.Sprintf("result %d group", i))
		assert.Equal(t, wantStat, result.StatName, fmt.Sprintf("result %d stat", i))
	}
}

func TestRank_Errors(t *testing.T) {
	t.Run("empty input is no data", func(t *testing.T) {
		_, err := Rank(Pivot(nil), "A", []string{"PTS"}, nil)
		if !errors.Is(err, ErrNoData) {
			t.Fatalf("expected ErrNoData, got %v", err)
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := Rank(Pivot([]StatRow{row("B", "PG", "PTS", 10)}), "A", []string{"PTS"}, nil)
		if !errors.Is(err, ErrTargetNotFound) {
			t.Fatalf("expected ErrTargetNotFound, got %v", err)
		}
	})

	t.Run("target only outside requested groups", func(t *testing.T) {
		_, err := Rank(Pivot([]StatRow{row("A", "G", "PTS", 10)}), "A", []string{"PTS"}, nil)
		if !errors.Is(err, ErrTargetNotFound) {
			t.Fatalf("expected ErrTargetNotFound, got %v", err)
		}
	})
}
