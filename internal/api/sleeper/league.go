package sleeper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/AryanShah2000/sleeper-hub/internal/engine"
	"github.com/AryanShah2000/sleeper-hub/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

var numericID = regexp.MustCompile(`^\d+$`)

// ResolveUserID turns a username or numeric user id into the numeric id.
func (a *API) ResolveUserID(usernameOrID string) (string, error) {
	if numericID.MatchString(usernameOrID) {
		return usernameOrID, nil
	}

	var user models.SleeperUser
	endpoint := fmt.Sprintf("/v1/user/%s", url.PathEscape(usernameOrID))
	if err := a.client.Get(endpoint, nil, &user); err != nil {
		return "", fmt.Errorf("resolving user %q: %w", usernameOrID, err)
	}
	if user.UserID == "" {
		return "", fmt.Errorf("no account found for %q", usernameOrID)
	}
	return user.UserID, nil
}

func (a *API) GetUserLeagues(userID, season string) ([]models.League, error) {
	var leagues []models.League
	endpoint := fmt.Sprintf("/v1/user/%s/leagues/nfl/%s", userID, season)
	if err := a.client.Get(endpoint, nil, &leagues); err != nil {
		return nil, fmt.Errorf("fetching leagues: %w", err)
	}
	return leagues, nil
}

// GetLeagueBundle fetches a league's config, members, and rosters together.
func (a *API) GetLeagueBundle(leagueID string) (*models.LeagueBundle, error) {
	var bundle models.LeagueBundle

	if err := a.client.Get(fmt.Sprintf("/v1/league/%s", leagueID), nil, &bundle.League); err != nil {
		return nil, fmt.Errorf("fetching league %s: %w", leagueID, err)
	}
	if err := a.client.Get(fmt.Sprintf("/v1/league/%s/users", leagueID), nil, &bundle.Users); err != nil {
		return nil, fmt.Errorf("fetching league %s users: %w", leagueID, err)
	}
	if err := a.client.Get(fmt.Sprintf("/v1/league/%s/rosters", leagueID), nil, &bundle.Rosters); err != nil {
		return nil, fmt.Errorf("fetching league %s rosters: %w", leagueID, err)
	}
	return &bundle, nil
}

func (a *API) GetMatchups(leagueID string, week int) ([]models.MatchupRecord, error) {
	var matchups []models.MatchupRecord
	endpoint := fmt.Sprintf("/v1/league/%s/matchups/%d", leagueID, week)
	if err := a.client.Get(endpoint, nil, &matchups); err != nil {
		return nil, fmt.Errorf("fetching week %d matchups: %w", week, err)
	}
	return matchups, nil
}

// GetPlayersMap fetches the full NFL player metadata table (~5MB; callers
// should cache it).
func (a *API) GetPlayersMap() (map[string]models.PlayerMeta, error) {
	var players map[string]models.PlayerMeta
	if err := a.client.Get("/v1/players/nfl", nil, &players); err != nil {
		return nil, fmt.Errorf("fetching players map: %w", err)
	}
	return players, nil
}

// GetProjectionRows fetches one week's projections and keeps, per player,
// the named provider's best row (highest aggregate total) only.
func (a *API) GetProjectionRows(season string, week int, provider string) (map[string]*models.ProjectionRow, error) {
	params := url.Values{
		"season_type": {"regular"},
		"position[]":  {"QB", "RB", "WR", "TE", "K", "DEF"},
		"order_by":    {"ppr"},
	}

	var raw []models.ProjectionRow
	endpoint := fmt.Sprintf("/projections/nfl/%s/%d", season, week)
	if err := a.client.Get(endpoint, params, &raw); err != nil {
		return nil, fmt.Errorf("fetching projections for %s week %d: %w", season, week, err)
	}

	rows := make(map[string]*models.ProjectionRow)
	for i := range raw {
		row := &raw[i]
		if !strings.EqualFold(row.Company, provider) {
			continue
		}
		if row.PlayerID == "" {
			continue
		}
		best, ok := rows[row.PlayerID]
		if !ok {
			rows[row.PlayerID] = row
			continue
		}
		bv, _ := engine.FeedTotal(best)
		rv, _ := engine.FeedTotal(row)
		if rv > bv {
			rows[row.PlayerID] = row
		}
	}
	return rows, nil
}

// GetWeekStats fetches one week's actual per-player stat lines, used to
// corroborate live scoring entries.
func (a *API) GetWeekStats(season string, week int) (map[string]*models.ProjectionRow, error) {
	var raw map[string]map[string]float64
	endpoint := fmt.Sprintf("/v1/stats/nfl/regular/%s/%d", season, week)
	if err := a.client.Get(endpoint, nil, &raw); err != nil {
		return nil, fmt.Errorf("fetching stats for %s week %d: %w", season, week, err)
	}

	rows := make(map[string]*models.ProjectionRow, len(raw))
	for id, stats := range raw {
		rows[id] = &models.ProjectionRow{PlayerID: id, Stats: stats}
	}
	return rows, nil
}

// GetTrendingAdds fetches the most-added players over the last 24 hours.
func (a *API) GetTrendingAdds(limit int) ([]models.TrendingPlayer, error) {
	params := url.Values{
		"lookback_hours": {"24"},
		"limit":          {fmt.Sprintf("%d", limit)},
	}

	var trending []models.TrendingPlayer
	if err := a.client.Get("/v1/players/nfl/trending/add", params, &trending); err != nil {
		return nil, fmt.Errorf("fetching trending adds: %w", err)
	}
	return trending, nil
}
