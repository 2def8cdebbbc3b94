package fantasy

import (
	"github.com/AryanShah2000/sleeper-hub/internal/api/sleeper"
	"github.com/AryanShah2000/sleeper-hub/internal/models"
)

type API struct {
	sleeperAPI *sleeper.API
}

func NewAPI(sleeperAPI *sleeper.API) *API {
	return &API{sleeperAPI: sleeperAPI}
}

func (a *API) ResolveUserID(usernameOrID string) (string, error) {
	return a.sleeperAPI.ResolveUserID(usernameOrID)
}

func (a *API) GetUserLeagues(userID, season string) ([]models.League, error) {
	return a.sleeperAPI.GetUserLeagues(userID, season)
}

func (a *API) GetLeagueBundle(leagueID string) (*models.LeagueBundle, error) {
	return a.sleeperAPI.GetLeagueBundle(leagueID)
}

func (a *API) GetMatchups(leagueID string, week int) ([]models.MatchupRecord, error) {
	return a.sleeperAPI.GetMatchups(leagueID, week)
}

func (a *API) GetPlayersMap() (map[string]models.PlayerMeta, error) {
	return a.sleeperAPI.GetPlayersMap()
}

func (a *API) GetProjectionRows(season string, week int, provider string) (map[string]*models.ProjectionRow, error) {
	return a.sleeperAPI.GetProjectionRows(season, week, provider)
}

func (a *API) GetWeekStats(season string, week int) (map[string]*models.ProjectionRow, error) {
	return a.sleeperAPI.GetWeekStats(season, week)
}

func (a *API) GetTrendingAdds(limit int) ([]models.TrendingPlayer, error) {
	return a.sleeperAPI.GetTrendingAdds(limit)
}
