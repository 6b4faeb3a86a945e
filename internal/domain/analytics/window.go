package analytics

import "sort"

// LastNGames keeps only rows from the n most recent distinct games, by game date
// and then game id. n <= 0 returns logs unchanged.
func LastNGames(logs []GameLogRow, n int) []GameLogRow {
	if n <= 0 || len(logs) == 0 {
		return logs
	}

	type game struct {
		id   string
		date int64
	}
	seen := make(map[string]int)
	games := make([]game, 0, 64)
	for _, row := range logs {
		date := row.GameDate.Unix()
		if idx, ok := seen[row.GameID]; ok {
			if date > games[idx].date {
				games[idx].date = date
			}
			continue
		}
		seen[row.GameID] = len(games)
		games = append(games, game{id: row.GameID, date: date})
	}
	if len(games) <= n {
		return logs
	}

	sort.SliceStable(games, func(i, j int) bool {
		if games[i].date != games[j].date {
			return games[i].date > games[j].date
		}
		return games[i].id > games[j].id
	})

	keep := make(map[string]struct{}, n)
	for _, g := range games[:n] {
		keep[g.id] = struct{}{}
	}

	out := make([]GameLogRow, 0, len(logs))
	for _, row := range logs {
		if _, ok := keep[row.GameID]; ok {
			out = append(out, row)
		}
	}
	return out
}
