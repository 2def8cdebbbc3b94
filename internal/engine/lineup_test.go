package engine

import (
	"testing"

	"github.com/AryanShah2000/sleeper-hub/internal/models"
)

func row(id string, pos models.Position, proj float64) models.RosterRow {
	return models.RosterRow{PlayerID: id, Name: id, Position: pos, Projected: proj}
}

func TestParseSlots_OrderAndCounts(t *testing.T) {
	slots := ParseSlots([]string{"QB", "RB", "RB", "WR", "WR", "TE", "FLEX", "SUPER_FLEX", "BN", "BN", "TAXI", "IR"})

	wantGroups := []string{"QB", "RB", "WR", "TE", "FLEX", "SUPER_FLEX"}
	if len(slots) != len(wantGroups) {
		t.Fatalf("slots len = %d, want %d", len(slots), len(wantGroups))
	}
	for i, s := range slots {
		if s.GroupName() != wantGroups[i] {
			t.Errorf("slot %d = %s, want %s", i, s.GroupName(), wantGroups[i])
		}
	}
	if slots[1].Count != 2 || slots[2].Count != 2 {
		t.Errorf("RB/WR counts = %d/%d, want 2/2", slots[1].Count, slots[2].Count)
	}
}

func TestParseSlots_FlexAlwaysAfterFixed(t *testing.T) {
	// League declares FLEX before WR; allocation order still fills fixed first.
	slots := ParseSlots([]string{"FLEX", "WR", "QB"})

	got := []string{slots[0].GroupName(), slots[1].GroupName(), slots[2].GroupName()}
	want := []string{"WR", "QB", "FLEX"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot order = %v, want %v", got, want)
			break
		}
	}
}

func TestParseSlots_UnusedGroupAbsent(t *testing.T) {
	slots := ParseSlots([]string{"QB", "RB", "BN"})
	for _, s := range slots {
		if s.Kind != models.SlotFixed {
			t.Errorf("unexpected flex slot %v in a league without FLEX", s)
		}
	}
	if len(slots) != 2 {
		t.Errorf("slots len = %d, want 2", len(slots))
	}
}

func TestParseSlots_SkipsUntrackedSlotNames(t *testing.T) {
	// Leagues declare slot types this system does not analyze (WRRB_FLEX,
	// REC_FLEX, IDP slots); those are dropped so the tracked groups still
	// allocate cleanly.
	slots := ParseSlots([]string{"QB", "RB", "WR", "WRRB_FLEX", "REC_FLEX", "DL", "LB", "DB", "FLEX", "BN"})

	wantGroups := []string{"QB", "RB", "WR", "FLEX"}
	if len(slots) != len(wantGroups) {
		t.Fatalf("slots = %v, want groups %v", slots, wantGroups)
	}
	for i, s := range slots {
		if s.GroupName() != wantGroups[i] {
			t.Errorf("slot %d = %s, want %s", i, s.GroupName(), wantGroups[i])
		}
	}

	rows := []models.RosterRow{
		row("qb1", models.PosQB, 20),
		row("rb1", models.PosRB, 12),
		row("wr1", models.PosWR, 11),
		row("wr2", models.PosWR, 9),
	}
	alloc, err := Allocate(rows, slots)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	if alloc.Values["FLEX"] != 9 {
		t.Errorf("FLEX value = %v, want 9", alloc.Values["FLEX"])
	}
}

func TestAllocate_GreedyFixedThenFlex(t *testing.T) {
	// End-to-end: QB:1 RB:2 WR:2 TE:1 FLEX:1 over 8 rows. The FLEX value must
	// equal the best remaining RB/WR/TE projection after fixed slots.
	rows := []models.RosterRow{
		row("qb1", models.PosQB, 20),
		row("rb1", models.PosRB, 15),
		row("rb2", models.PosRB, 12),
		row("rb3", models.PosRB, 9),
		row("wr1", models.PosWR, 14),
		row("wr2", models.PosWR, 11),
		row("wr3", models.PosWR, 10),
		row("te1", models.PosTE, 8),
	}
	slots := ParseSlots([]string{"QB", "RB", "RB", "WR", "WR", "TE", "FLEX"})

	alloc, err := Allocate(rows, slots)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}

	if alloc.Values["QB"] != 20 {
		t.Errorf("QB value = %v, want 20", alloc.Values["QB"])
	}
	if alloc.Values["RB"] != 27 {
		t.Errorf("RB value = %v, want 27 (15+12)", alloc.Values["RB"])
	}
	if alloc.Values["WR"] != 25 {
		t.Errorf("WR value = %v, want 25 (14+11)", alloc.Values["WR"])
	}
	if alloc.Values["TE"] != 8 {
		t.Errorf("TE value = %v, want 8", alloc.Values["TE"])
	}
	// Remaining flex-eligible pool is rb3 (9) and wr3 (10): best is wr3.
	if alloc.Values["FLEX"] != 10 {
		t.Errorf("FLEX value = %v, want 10", alloc.Values["FLEX"])
	}
	if len(alloc.Bench) != 1 || alloc.Bench[0].PlayerID != "rb3" {
		t.Errorf("bench = %v, want [rb3]", alloc.Bench)
	}
}

func TestAllocate_NoDoubleAssignmentAndConservation(t *testing.T) {
	rows := []models.RosterRow{
		row("a", models.PosRB, 5), row("b", models.PosRB, 4),
		row("c", models.PosWR, 3), row("d", models.PosTE, 2),
		row("e", models.PosQB, 9),
	}
	slots := ParseSlots([]string{"QB", "RB", "WR", "FLEX"})

	alloc, err := Allocate(rows, slots)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}

	assigned := 0
	seen := make(map[string]int)
	for _, picks := range alloc.Starters {
		for _, p := range picks {
			assigned++
			seen[p.PlayerID]++
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("player %s assigned to %d slot groups", id, n)
		}
	}
	if assigned+len(alloc.Bench) != len(rows) {
		t.Errorf("assigned (%d) + bench (%d) != rows (%d)", assigned, len(alloc.Bench), len(rows))
	}
}

func TestAllocate_ShortfallUnderfillsWithoutError(t *testing.T) {
	rows := []models.RosterRow{row("rb1", models.PosRB, 7)}
	slots := ParseSlots([]string{"RB", "RB", "WR"})

	alloc, err := Allocate(rows, slots)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	if alloc.Values["RB"] != 7 {
		t.Errorf("RB value = %v, want 7 (one of two slots filled)", alloc.Values["RB"])
	}
	if alloc.Values["WR"] != 0 {
		t.Errorf("WR value = %v, want 0 (no WR available)", alloc.Values["WR"])
	}
	if len(alloc.Bench) != 0 {
		t.Errorf("bench = %v, want empty", alloc.Bench)
	}
}

func TestAllocate_UnsupportedPositionErrors(t *testing.T) {
	// A fixed slot outside the closed position set is a configuration bug
	// upstream and the only condition the allocator rejects.
	rows := []models.RosterRow{row("a", models.PosRB, 5)}
	slots := []models.Slot{{Kind: models.SlotFixed, Position: "DL", Count: 1}}

	if _, err := Allocate(rows, slots); err == nil {
		t.Error("Allocate error = nil, want error for unsupported position DL")
	}
}

func TestAllocate_SuperFlexTakesQBAfterFlex(t *testing.T) {
	rows := []models.RosterRow{
		row("qb1", models.PosQB, 22),
		row("qb2", models.PosQB, 18),
		row("rb1", models.PosRB, 12),
		row("rb2", models.PosRB, 10),
	}
	slots := ParseSlots([]string{"QB", "RB", "FLEX", "SUPER_FLEX"})

	alloc, err := Allocate(rows, slots)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	// QB slot takes qb1, RB takes rb1, FLEX (RB/WR/TE only) takes rb2,
	// SUPER_FLEX takes the leftover qb2.
	if alloc.Values["FLEX"] != 10 {
		t.Errorf("FLEX value = %v, want 10 (QBs are not FLEX-eligible)", alloc.Values["FLEX"])
	}
	if alloc.Values["SUPER_FLEX"] != 18 {
		t.Errorf("SUPER_FLEX value = %v, want 18", alloc.Values["SUPER_FLEX"])
	}
}

func TestAllocate_TieBreaksOnInputOrder(t *testing.T) {
	rows := []models.RosterRow{
		row("first", models.PosWR, 10),
		row("second", models.PosWR, 10),
	}
	slots := ParseSlots([]string{"WR"})

	alloc, err := Allocate(rows, slots)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	if alloc.Starters["WR"][0].PlayerID != "first" {
		t.Errorf("WR pick = %s, want the earlier input row on a tie", alloc.Starters["WR"][0].PlayerID)
	}
}

func TestAllocate_UnsupportedPositionsNeverEnterFlex(t *testing.T) {
	rows := []models.RosterRow{
		row("lb", models.PosUNK, 99),
		row("wr", models.PosWR, 1),
	}
	slots := ParseSlots([]string{"FLEX"})

	alloc, err := Allocate(rows, slots)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	if alloc.Values["FLEX"] != 1 {
		t.Errorf("FLEX value = %v, want 1 (UNK ineligible despite higher projection)", alloc.Values["FLEX"])
	}
}
