package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AryanShah2000/sleeper-hub/internal/models"
)

// Default eligible-position sets for the flexible slot pools. Super-flex
// membership of K/DEF varies by league variant; this default follows the
// widest configuration.
var (
	FlexEligible      = []models.Position{models.PosRB, models.PosWR, models.PosTE}
	SuperFlexEligible = []models.Position{models.PosQB, models.PosRB, models.PosWR, models.PosTE, models.PosK, models.PosDEF}
)

// benchMarkers are roster-position entries that are not lineup slots.
var benchMarkers = map[string]struct{}{
	"BN": {}, "TAXI": {}, "IR": {},
}

// ParseSlots derives ordered slot requirements from a league's raw
// roster-position list: fixed positions in league-declared first-seen order,
// then FLEX, then SUPER_FLEX. Bench/taxi/IR markers are omitted, and slot
// groups the league does not use are simply absent. Slot names outside the
// tracked set (WRRB_FLEX, REC_FLEX, IDP slots like DL/LB/DB) are skipped so
// the tracked groups still get analyzed in leagues that use them.
func ParseSlots(rosterPositions []string) []models.Slot {
	counts := make(map[string]int)
	var order []string
	for _, raw := range rosterPositions {
		name := normalizeSlotName(raw)
		if name == "" {
			continue
		}
		if _, ok := benchMarkers[name]; ok {
			continue
		}
		if name != "FLEX" && name != "SUPER_FLEX" {
			if _, ok := validPositions[models.Position(name)]; !ok {
				continue
			}
		}
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	var slots []models.Slot
	for _, name := range order {
		if name == "FLEX" || name == "SUPER_FLEX" {
			continue
		}
		slots = append(slots, models.Slot{
			Kind:     models.SlotFixed,
			Position: models.Position(name),
			Count:    counts[name],
		})
	}
	if n := counts["FLEX"]; n > 0 {
		slots = append(slots, models.Slot{Kind: models.SlotFlex, Count: n, Eligible: FlexEligible})
	}
	if n := counts["SUPER_FLEX"]; n > 0 {
		slots = append(slots, models.Slot{Kind: models.SlotSuperFlex, Count: n, Eligible: SuperFlexEligible})
	}
	return slots
}

func normalizeSlotName(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// selectBest picks the k highest-projected rows whose position is in the
// eligible set, stable on input order for ties, and returns the picks along
// with the rows left in the pool.
func selectBest(rows []models.RosterRow, eligible []models.Position, k int) (picks, remaining []models.RosterRow) {
	allowed := make(map[models.Position]struct{}, len(eligible))
	for _, p := range eligible {
		allowed[p] = struct{}{}
	}

	pool := make([]models.RosterRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := allowed[r.Position]; ok {
			pool = append(pool, r)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Projected > pool[j].Projected
	})
	if k > len(pool) {
		k = len(pool)
	}
	picks = pool[:k]

	picked := make(map[string]struct{}, len(picks))
	for _, p := range picks {
		picked[p.PlayerID] = struct{}{}
	}
	for _, r := range rows {
		if _, ok := picked[r.PlayerID]; !ok {
			remaining = append(remaining, r)
		}
	}
	return picks, remaining
}

// validPositions is the closed set a fixed slot may name.
var validPositions = map[models.Position]struct{}{
	models.PosQB: {}, models.PosRB: {}, models.PosWR: {},
	models.PosTE: {}, models.PosK: {}, models.PosDEF: {},
}

// Allocate computes the greedy optimal partition of roster rows into lineup
// slot groups: fixed positions first in slot order, then the flexible pools
// over whatever remains. A fixed slot naming a position outside the closed
// set is a league configuration bug and the only error this function
// returns; a shortfall of players is not an error, the group is simply
// under-filled.
func Allocate(rows []models.RosterRow, slots []models.Slot) (models.LineupAllocation, error) {
	alloc := models.LineupAllocation{
		Values:   make(map[string]float64),
		Starters: make(map[string][]models.RosterRow),
	}

	remaining := rows
	for _, slot := range slots {
		if slot.Count <= 0 {
			continue
		}
		eligible := slot.Eligible
		if slot.Kind == models.SlotFixed {
			if _, ok := validPositions[slot.Position]; !ok {
				return models.LineupAllocation{}, fmt.Errorf("unsupported lineup position %q", slot.Position)
			}
			eligible = []models.Position{slot.Position}
		}

		var picks []models.RosterRow
		picks, remaining = selectBest(remaining, eligible, slot.Count)

		group := slot.GroupName()
		sum := 0.0
		for _, p := range picks {
			sum += p.Projected
		}
		alloc.Values[group] = Round2(sum)
		alloc.Starters[group] = picks
	}

	alloc.Bench = remaining
	return alloc, nil
}
