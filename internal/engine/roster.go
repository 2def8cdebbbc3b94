package engine

import (
	"strings"

	"github.com/AryanShah2000/sleeper-hub/internal/models"
)

// emptySlotID is the sentinel Sleeper uses for an unfilled starting slot.
const emptySlotID = "0"

// ScoreFunc resolves a player id to projected points. A nil ScoreFunc means
// the roster is being indexed for display only and rows carry no projections.
type ScoreFunc func(playerID string) float64

// NormalizePosition maps a raw provider position string onto the closed
// position set, folding the D/ST and DST aliases into DEF.
func NormalizePosition(raw string) models.Position {
	switch pos := strings.ToUpper(strings.TrimSpace(raw)); pos {
	case "QB", "RB", "WR", "TE", "K":
		return models.Position(pos)
	case "DEF", "D/ST", "DST":
		return models.PosDEF
	default:
		return models.PosUNK
	}
}

// PlayerName resolves a display name from metadata: full name, then
// first+last, then last alone, then "Unknown".
func PlayerName(meta models.PlayerMeta) string {
	if meta.FullName != "" {
		return meta.FullName
	}
	if meta.FirstName != "" && meta.LastName != "" {
		return meta.FirstName + " " + meta.LastName
	}
	if meta.LastName != "" {
		return meta.LastName
	}
	return "Unknown"
}

// RosterPlayerIDs returns the deduplicated union of a roster's active,
// starting, and taxi-squad player ids, empty-slot sentinel removed,
// preserving first-seen order.
func RosterPlayerIDs(roster models.Roster) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, list := range [][]string{roster.Players, roster.Starters, roster.Taxi} {
		for _, id := range list {
			if id == emptySlotID || id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// IndexRoster derives one display-ready row per rostered player. Players
// missing from the metadata table still yield a row with UNK position and an
// "Unknown" name rather than being dropped.
func IndexRoster(roster models.Roster, players map[string]models.PlayerMeta, scoreFn ScoreFunc) []models.RosterRow {
	ids := RosterPlayerIDs(roster)
	rows := make([]models.RosterRow, 0, len(ids))
	for _, id := range ids {
		meta := players[id]
		team := meta.Team
		if team == "" {
			team = "FA"
		}
		row := models.RosterRow{
			PlayerID: id,
			Name:     PlayerName(meta),
			Position: NormalizePosition(meta.Position),
			Team:     team,
			ByeWeek:  meta.ByeWeek,
		}
		if scoreFn != nil {
			row.Projected = scoreFn(id)
		}
		rows = append(rows, row)
	}
	return rows
}
