package engine

import "github.com/AryanShah2000/sleeper-hub/internal/models"

// byeWeeks2025 is the 2025 regular-season bye schedule by team abbreviation.
var byeWeeks2025 = map[string]int{
	"ATL": 5, "CHI": 5, "GB": 5, "PIT": 5,
	"HOU": 6, "MIN": 6,
	"BAL": 7, "BUF": 7,
	"ARI": 8, "DET": 8, "JAX": 8, "LV": 8, "LAR": 8, "SEA": 8,
	"CLE": 9, "NYJ": 9, "PHI": 9, "TB": 9,
	"CIN": 10, "DAL": 10, "KC": 10, "TEN": 10,
	"IND": 11, "NO": 11,
	"DEN": 12, "LAC": 12, "MIA": 12, "WAS": 12,
	"CAR": 14, "NE": 14, "NYG": 14, "SF": 14,
}

const (
	firstWeek = 1
	lastWeek  = 18
)

// SeasonWeeks is the default aggregation range, weeks 1 through 18.
func SeasonWeeks() []int {
	weeks := make([]int, lastWeek-firstWeek+1)
	for i := range weeks {
		weeks[i] = firstWeek + i
	}
	return weeks
}

// TeamBye looks up a team's bye week in the static season table. Returns 0
// when the season or team is not covered.
func TeamBye(team string, season int) int {
	if season != 2025 {
		return 0
	}
	return byeWeeks2025[team]
}

// ResolveBye resolves a player's bye week: the season table first, then the
// player metadata's own bye_week field, each bounds-checked to [1,18].
// Returns 0 when neither source resolves; such a player counts toward no
// week.
func ResolveBye(team string, byeWeek int, season int) int {
	if b := TeamBye(team, season); b >= firstWeek && b <= lastWeek {
		return b
	}
	if byeWeek >= firstWeek && byeWeek <= lastWeek {
		return byeWeek
	}
	return 0
}

// AggregateByes counts players on bye per week for one set of roster rows.
func AggregateByes(rows []models.RosterRow, season int, weeks []int) models.ByeMatrix {
	if weeks == nil {
		weeks = SeasonWeeks()
	}
	index := make(map[int]int, len(weeks))
	for i, w := range weeks {
		index[w] = i
	}
	counts := make([]int, len(weeks))
	for _, r := range rows {
		if b := ResolveBye(r.Team, r.ByeWeek, season); b != 0 {
			if i, ok := index[b]; ok {
				counts[i]++
			}
		}
	}
	return models.ByeMatrix{Weeks: weeks, Counts: counts}
}

// AggregateByesByPosition is AggregateByes keyed by position then week.
// Positions with no players on bye are absent.
func AggregateByesByPosition(rows []models.RosterRow, season int, weeks []int) models.ByeMatrixByPosition {
	if weeks == nil {
		weeks = SeasonWeeks()
	}
	index := make(map[int]int, len(weeks))
	for i, w := range weeks {
		index[w] = i
	}
	out := models.ByeMatrixByPosition{
		Weeks:  weeks,
		Counts: make(map[models.Position][]int),
	}
	for _, r := range rows {
		b := ResolveBye(r.Team, r.ByeWeek, season)
		if b == 0 {
			continue
		}
		i, ok := index[b]
		if !ok {
			continue
		}
		if _, seen := out.Counts[r.Position]; !seen {
			out.Counts[r.Position] = make([]int, len(weeks))
			out.Positions = append(out.Positions, r.Position)
		}
		out.Counts[r.Position][i]++
	}
	return out
}
