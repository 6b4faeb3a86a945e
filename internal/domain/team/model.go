package team

import (
	"sort"
	"strings"
)

// Team is an NBA franchise with its stats provider id.
type Team struct {
	ID           int64
	Name         string
	Abbreviation string
}

var catalog = []Team{
	{ID: 1610612737, Name: "Atlanta Hawks", Abbreviation: "ATL"},
	{ID: 1610612738, Name: "Boston Celtics", Abbreviation: "BOS"},
	{ID: 1610612751, Name: "Brooklyn Nets", Abbreviation: "BKN"},
	{ID: 1610612766, Name: "Charlotte Hornets", Abbreviation: "CHA"},
	{ID: 1610612741, Name: "Chicago Bulls", Abbreviation: "CHI"},
	{ID: 1610612739, Name: "Cleveland Cavaliers", Abbreviation: "CLE"},
	{ID: 1610612742, Name: "Dallas Mavericks", Abbreviation: "DAL"},
	{ID: 1610612743, Name: "Denver Nuggets", Abbreviation: "DEN"},
	{ID: 1610612765, Name: "Detroit Pistons", Abbreviation: "DET"},
	{ID: 1610612744, Name: "Golden State Warriors", Abbreviation: "GSW"},
	{ID: 1610612745, Name: "Houston Rockets", Abbreviation: "HOU"},
	{ID: 1610612754, Name: "Indiana Pacers", Abbreviation: "IND"},
	{ID: 1610612746, Name: "Los Angeles Clippers", Abbreviation: "LAC"},
	{ID: 1610612747, Name: "Los Angeles Lakers", Abbreviation: "LAL"},
	{ID: 1610612763, Name: "Memphis Grizzlies", Abbreviation: "MEM"},
	{ID: 1610612748, Name: "Miami Heat", Abbreviation: "MIA"},
	{ID: 1610612749, Name: "Milwaukee Bucks", Abbreviation: "MIL"},
	{ID: 1610612750, Name: "Minnesota Timberwolves", Abbreviation: "MIN"},
	{ID: 1610612740, Name: "New Orleans Pelicans", Abbreviation: "NOP"},
	{ID: 1610612752, Name: "New York Knicks", Abbreviation: "NYK"},
	{ID: 1610612760, Name: "Oklahoma City Thunder", Abbreviation: "OKC"},
	{ID: 1610612753, Name: "Orlando Magic", Abbreviation: "ORL"},
	{ID: 1610612755, Name: "Philadelphia 76ers", Abbreviation: "PHI"},
	{ID: 1610612756, Name: "Phoenix Suns", Abbreviation: "PHX"},
	{ID: 1610612757, Name: "Portland Trail Blazers", Abbreviation: "POR"},
	{ID: 1610612758, Name: "Sacramento Kings", Abbreviation: "SAC"},
	{ID: 1610612759, Name: "San Antonio Spurs", Abbreviation: "SAS"},
	{ID: 1610612761, Name: "Toronto Raptors", Abbreviation: "TOR"},
	{ID: 1610612762, Name: "Utah Jazz", Abbreviation: "UTA"},
	{ID: 1610612764, Name: "Washington Wizards", Abbreviation: "WAS"},
}

// aliases are the short display names the stats tables store for some teams.
var aliases = map[string]string{
	"LA Clippers": "Los Angeles Clippers",
	"LA Lakers":   "Los Angeles Lakers",
}

// All returns the 30 franchises sorted by name.
func All() []Team {
	out := append([]Team(nil), catalog...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup resolves a full name, alias, or abbreviation case-insensitively.
func Lookup(v string) (Team, bool) {
	candidate := strings.ToLower(strings.TrimSpace(v))
	if candidate == "" {
		return Team{}, false
	}
	for alias, canonical := range aliases {
		if strings.ToLower(alias) == candidate {
			candidate = strings.ToLower(canonical)
			break
		}
	}
	for _, t := range catalog {
		if strings.ToLower(t.Name) == candidate || strings.ToLower(t.Abbreviation) == candidate {
			return t, true
		}
	}
	return Team{}, false
}

// Names lists the spellings a team may be stored under: the full name, any
// short alias, then the abbreviation.
func Names(t Team) []string {
	out := []string{t.Name}
	for alias, canonical := range aliases {
		if canonical == t.Name {
			out = append(out, alias)
		}
	}
	return append(out, t.Abbreviation)
}
