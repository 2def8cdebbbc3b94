package models

// Raw shapes returned by the Sleeper API. Field sets are trimmed to what the
// app consumes; unknown fields are ignored on decode.

type SleeperUser struct {
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	Metadata    UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

type League struct {
	LeagueID        string             `json:"league_id"`
	Name            string             `json:"name"`
	Season          string             `json:"season"`
	TotalRosters    int                `json:"total_rosters"`
	RosterPositions []string           `json:"roster_positions"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
}

type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Players  []string       `json:"players"`
	Starters []string       `json:"starters"`
	Taxi     []string       `json:"taxi"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

type PlayerMeta struct {
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	ByeWeek   int    `json:"bye_week"`
	BirthDate string `json:"birth_date"`
	Age       int    `json:"age"`
}

// ProjectionRow is one provider row from the weekly projections (or actual
// stats) feed. The aggregate fantasy totals appear either at the top level or
// inside Stats depending on the endpoint; both are kept.
type ProjectionRow struct {
	PlayerID  string             `json:"player_id"`
	Company   string             `json:"company"`
	PPR       *float64           `json:"ppr"`
	PtsPPR    *float64           `json:"pts_ppr"`
	FantasyPR *float64           `json:"fantasy_points_ppr"`
	Stats     map[string]float64 `json:"stats"`
}

// MatchupRecord is one side of a weekly head-to-head pairing. MatchupID is a
// pointer because bye/median weeks omit it entirely.
type MatchupRecord struct {
	RosterID      int                `json:"roster_id"`
	MatchupID     *int               `json:"matchup_id"`
	Starters      []string           `json:"starters"`
	Points        float64            `json:"points"`
	PlayersPoints map[string]float64 `json:"players_points"`
}

// TrendingPlayer is one entry from the waiver-wire trending feed.
type TrendingPlayer struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}
