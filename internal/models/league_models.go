package models

// Position is a roster position after alias normalization.
type Position string

const (
	PosQB  Position = "QB"
	PosRB  Position = "RB"
	PosWR  Position = "WR"
	PosTE  Position = "TE"
	PosK   Position = "K"
	PosDEF Position = "DEF"
	PosUNK Position = "UNK"
)

// RosterRow is the display-ready record derived for one rostered player.
// Projected is zero when the roster was indexed without a scorer.
type RosterRow struct {
	PlayerID  string
	Name      string
	Position  Position
	Team      string
	Projected float64
	ByeWeek   int
}

// SlotKind tags a lineup slot requirement.
type SlotKind int

const (
	SlotFixed SlotKind = iota
	SlotFlex
	SlotSuperFlex
)

// Slot is one lineup requirement: a fixed position, or a flexible pool with
// an explicit eligible-position set.
type Slot struct {
	Kind     SlotKind
	Position Position // fixed slots only
	Count    int
	Eligible []Position // flex variants only
}

// GroupName is the key a slot contributes under in a LineupAllocation.
func (s Slot) GroupName() string {
	switch s.Kind {
	case SlotFlex:
		return "FLEX"
	case SlotSuperFlex:
		return "SUPER_FLEX"
	default:
		return string(s.Position)
	}
}

// LineupAllocation is the optimal greedy partition of a roster. Values holds
// summed projected points per slot group; a group the league does not use is
// absent from the map, which is distinct from a present zero.
type LineupAllocation struct {
	Values   map[string]float64
	Starters map[string][]RosterRow
	Bench    []RosterRow
}

// PercentileResult places one team's slot-group value among the league.
// Percentile is the share of the league strictly beaten, one decimal place.
type PercentileResult struct {
	Rank       int
	OutOf      int
	Percentile float64
}

// PositionStat is a team's value/rank/percentile line for one slot group.
type PositionStat struct {
	Group      string
	Value      float64
	Rank       int
	OutOf      int
	Percentile float64
}

// MatchupStarter is one starter in a matchup preview. Current is nil until
// the player has verifiably played; a played-and-scored-zero outcome is a
// non-nil zero.
type MatchupStarter struct {
	RosterRow
	Current    *float64
	RedFlag    bool // zero projection: bye, inactive, or no provider row
	YellowFlag bool // a same-position bench player projects higher
}

// MatchupSide is one team's header line in a matchup preview.
type MatchupSide struct {
	RosterID       int
	TeamName       string
	ProjectedTotal float64
	CurrentTotal   float64
	Live           bool // CurrentTotal is backed by live scoring
}

// MatchupPreview is the reconciled head-to-head view for one week. When no
// opponent exists the Opponent side carries zero values and an empty name.
type MatchupPreview struct {
	Week        int
	Me          MatchupSide
	Opponent    MatchupSide
	MyStarters  []MatchupStarter
	OppStarters []MatchupStarter
	MyBench     []RosterRow
	OppBench    []RosterRow
}

// ByeMatrix counts players on bye per week for one roster.
type ByeMatrix struct {
	Weeks  []int
	Counts []int
}

// Total is derived on demand, never stored.
func (m ByeMatrix) Total() int {
	t := 0
	for _, c := range m.Counts {
		t += c
	}
	return t
}

// ByeMatrixByPosition counts players on bye per week, grouped by position.
type ByeMatrixByPosition struct {
	Weeks     []int
	Positions []Position
	Counts    map[Position][]int
}

func (m ByeMatrixByPosition) Total(pos Position) int {
	t := 0
	for _, c := range m.Counts[pos] {
		t += c
	}
	return t
}

// LeagueBundle is one league's fetched context: config, members, rosters.
type LeagueBundle struct {
	League  League
	Users   []SleeperUser
	Rosters []Roster
}

// WhoHasResult reports which of the user's leagues roster a player.
type WhoHasResult struct {
	PlayerID   string
	PlayerName string
	Position   Position
	Team       string
	Found      bool
	Leagues    []WhoHasLeague
}

// WhoHasLeague is one league's ownership line for a who-has lookup.
type WhoHasLeague struct {
	LeagueName string
	Mine       bool
	OwnerName  string
	Starting   bool
}
