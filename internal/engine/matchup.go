package engine

import (
	"fmt"
	"sort"

	"github.com/AryanShah2000/sleeper-hub/internal/models"
)

// Preview reconciles one week's head-to-head matchup from my roster's point
// of view. Every upstream gap degrades to a default: a missing matchup
// record falls back to the roster's declared starters, and a missing
// opponent yields a placeholder side with an empty name and zero totals.
func Preview(
	week int,
	matchups []models.MatchupRecord,
	rosters []models.Roster,
	users []models.SleeperUser,
	players map[string]models.PlayerMeta,
	statsByID map[string]*models.ProjectionRow,
	scoreFn ScoreFunc,
	myRosterID int,
) models.MatchupPreview {
	byRoster := make(map[int]*models.MatchupRecord, len(matchups))
	for i := range matchups {
		byRoster[matchups[i].RosterID] = &matchups[i]
	}
	rosterByID := make(map[int]models.Roster, len(rosters))
	for _, r := range rosters {
		rosterByID[r.RosterID] = r
	}
	userByID := make(map[string]models.SleeperUser, len(users))
	for _, u := range users {
		userByID[u.UserID] = u
	}

	oppRosterID := 0
	if my := byRoster[myRosterID]; my != nil && my.MatchupID != nil {
		for _, m := range matchups {
			if m.RosterID != myRosterID && m.MatchupID != nil && *m.MatchupID == *my.MatchupID {
				oppRosterID = m.RosterID
				break
			}
		}
	}

	mySide, myStarters, myBench := buildSide(myRosterID, byRoster, rosterByID, userByID, players, statsByID, scoreFn)
	preview := models.MatchupPreview{
		Week:       week,
		Me:         mySide,
		MyStarters: myStarters,
		MyBench:    myBench,
	}
	if oppRosterID != 0 {
		preview.Opponent, preview.OppStarters, preview.OppBench = buildSide(oppRosterID, byRoster, rosterByID, userByID, players, statsByID, scoreFn)
	}
	return preview
}

func buildSide(
	rosterID int,
	byRoster map[int]*models.MatchupRecord,
	rosterByID map[int]models.Roster,
	userByID map[string]models.SleeperUser,
	players map[string]models.PlayerMeta,
	statsByID map[string]*models.ProjectionRow,
	scoreFn ScoreFunc,
) (models.MatchupSide, []models.MatchupStarter, []models.RosterRow) {
	roster := rosterByID[rosterID]
	record := byRoster[rosterID]

	starterIDs := roster.Starters
	if record != nil && len(record.Starters) > 0 {
		starterIDs = record.Starters
	}

	allRows := IndexRoster(roster, players, scoreFn)
	rowByID := make(map[string]models.RosterRow, len(allRows))
	for _, r := range allRows {
		rowByID[r.PlayerID] = r
	}

	startingSet := make(map[string]struct{}, len(starterIDs))
	var starters []models.MatchupStarter
	for _, id := range starterIDs {
		if id == emptySlotID || id == "" {
			continue
		}
		startingSet[id] = struct{}{}
		row, ok := rowByID[id]
		if !ok {
			// Starter not in the roster's id universe (mid-week trade or
			// stale record); derive a row directly.
			meta := players[id]
			row = models.RosterRow{
				PlayerID: id,
				Name:     PlayerName(meta),
				Position: NormalizePosition(meta.Position),
				Team:     meta.Team,
				ByeWeek:  meta.ByeWeek,
			}
			if row.Team == "" {
				row.Team = "FA"
			}
			if scoreFn != nil {
				row.Projected = scoreFn(id)
			}
		}
		starters = append(starters, models.MatchupStarter{
			RosterRow: row,
			Current:   currentPoints(id, record, statsByID),
		})
	}

	var bench []models.RosterRow
	for _, r := range allRows {
		if _, ok := startingSet[r.PlayerID]; !ok {
			bench = append(bench, r)
		}
	}
	flagStarters(starters, bench)

	side := models.MatchupSide{RosterID: rosterID, TeamName: teamName(roster, userByID)}
	projTotal := 0.0
	for _, s := range starters {
		projTotal += s.Projected
	}
	side.ProjectedTotal = Round2(projTotal)

	allPlayed := len(starters) > 0
	liveSum := 0.0
	for _, s := range starters {
		if s.Current == nil {
			allPlayed = false
			break
		}
		liveSum += *s.Current
	}
	switch {
	case record != nil && record.Points != 0:
		side.CurrentTotal = Round2(record.Points)
		side.Live = true
	case allPlayed:
		side.CurrentTotal = Round2(liveSum)
		side.Live = true
	default:
		side.CurrentTotal = side.ProjectedTotal
	}
	return side, starters, bench
}

// currentPoints applies the played-vs-zero policy to one starter's live
// point entry. Providers default missing players to 0 instead of omitting
// them, so a bare zero with no corroborating per-player stats is "not yet
// played" (nil), not "played and scored zero". This heuristic is an
// assumption about provider behavior, not a documented contract.
func currentPoints(playerID string, record *models.MatchupRecord, statsByID map[string]*models.ProjectionRow) *float64 {
	if record == nil || record.PlayersPoints == nil {
		return nil
	}
	pts, ok := record.PlayersPoints[playerID]
	if !ok {
		return nil
	}
	if pts != 0 {
		return &pts
	}
	if row := statsByID[playerID]; row != nil {
		for _, v := range row.Stats {
			if v != 0 {
				return &pts
			}
		}
	}
	return nil
}

// flagStarters marks the two independent risk signals on each starter: red
// for an exactly-zero projection, yellow when any same-position bench player
// projects strictly higher.
func flagStarters(starters []models.MatchupStarter, bench []models.RosterRow) {
	bestBench := make(map[models.Position]float64)
	for _, b := range bench {
		if v, ok := bestBench[b.Position]; !ok || b.Projected > v {
			bestBench[b.Position] = b.Projected
		}
	}
	for i := range starters {
		starters[i].RedFlag = starters[i].Projected == 0
		if v, ok := bestBench[starters[i].Position]; ok && v > starters[i].Projected {
			starters[i].YellowFlag = true
		}
	}
}

// ReplacementCandidates lists, for each red-flagged starter, the
// same-position bench players not already starting, best projection first.
func ReplacementCandidates(starters []models.MatchupStarter, bench []models.RosterRow) map[string][]models.RosterRow {
	out := make(map[string][]models.RosterRow)
	for _, s := range starters {
		if !s.RedFlag {
			continue
		}
		var cands []models.RosterRow
		for _, b := range bench {
			if b.Position == s.Position {
				cands = append(cands, b)
			}
		}
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].Projected > cands[j].Projected
		})
		out[s.PlayerID] = cands
	}
	return out
}

func teamName(roster models.Roster, userByID map[string]models.SleeperUser) string {
	u, ok := userByID[roster.OwnerID]
	if !ok {
		if roster.RosterID == 0 {
			return ""
		}
		return fmt.Sprintf("Team %d", roster.RosterID)
	}
	if u.Metadata.TeamName != "" {
		return u.Metadata.TeamName
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return fmt.Sprintf("Team %d", roster.RosterID)
}
