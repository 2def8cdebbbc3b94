package service

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/AryanShah2000/sleeper-hub/internal/api/fantasy"
	"github.com/AryanShah2000/sleeper-hub/internal/config"
	"github.com/AryanShah2000/sleeper-hub/internal/engine"
	"github.com/AryanShah2000/sleeper-hub/internal/models"
	"github.com/AryanShah2000/sleeper-hub/internal/repository/memory"
)

const leaguesTTL = 3 * time.Hour

type FantasyService struct {
	api  *fantasy.API
	repo *memory.Repository
	cfg  config.Sleeper

	mu             sync.Mutex
	userID         string
	leagueIDs      []string
	leaguesFetched time.Time
}

func NewFantasyService(api *fantasy.API, repo *memory.Repository, cfg config.Sleeper) *FantasyService {
	return &FantasyService{api: api, repo: repo, cfg: cfg}
}

// week2StartUTC is 01:00 Eastern on the Tuesday after week 1 of the 2025
// season; week boundaries advance every 7 days from there.
var week2StartUTC = time.Date(2025, time.September, 9, 5, 0, 0, 0, time.UTC)

// CurrentWeek derives the NFL week from the wall clock, clamped to [1,18].
func CurrentWeek(now time.Time) int {
	if now.Before(week2StartUTC) {
		return 1
	}
	week := 2 + int(now.Sub(week2StartUTC)/(7*24*time.Hour))
	if week > 18 {
		week = 18
	}
	return week
}

func (s *FantasyService) GetCurrentWeek() int {
	return CurrentWeek(time.Now().UTC())
}

// Refresh drops every cached upstream fetch so the next report pulls fresh
// data.
func (s *FantasyService) Refresh() {
	s.repo.Invalidate()
	s.mu.Lock()
	s.leagueIDs = nil
	s.leaguesFetched = time.Time{}
	s.mu.Unlock()
}

// leagueContext is everything needed to analyze one league for one week.
type leagueContext struct {
	bundle   *models.LeagueBundle
	players  map[string]models.PlayerMeta
	myRoster *models.Roster
	scoreFn  engine.ScoreFunc
}

func (s *FantasyService) resolveUserID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != "" {
		return s.userID, nil
	}
	userID, err := s.api.ResolveUserID(s.cfg.Username)
	if err != nil {
		return "", fmt.Errorf("resolving user: %w", err)
	}
	s.userID = userID
	return userID, nil
}

func (s *FantasyService) leagues() ([]string, error) {
	userID, err := s.resolveUserID()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.leagueIDs != nil && time.Since(s.leaguesFetched) < leaguesTTL {
		return s.leagueIDs, nil
	}

	leagues, err := s.api.GetUserLeagues(userID, s.cfg.Season)
	if err != nil {
		return nil, fmt.Errorf("fetching leagues: %w", err)
	}
	ids := make([]string, 0, len(leagues))
	for _, l := range leagues {
		ids = append(ids, l.LeagueID)
	}
	s.leagueIDs = ids
	s.leaguesFetched = time.Now()
	return ids, nil
}

func (s *FantasyService) bundle(leagueID string) (*models.LeagueBundle, error) {
	if b := s.repo.GetBundle(leagueID); b != nil {
		return b, nil
	}
	b, err := s.api.GetLeagueBundle(leagueID)
	if err != nil {
		return nil, err
	}
	s.repo.SaveBundle(leagueID, b)
	return b, nil
}

// bundles loads every league bundle concurrently; one failing league is
// logged and skipped rather than aborting the batch.
func (s *FantasyService) bundles() ([]*models.LeagueBundle, error) {
	ids, err := s.leagues()
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	loaded := make(map[string]*models.LeagueBundle, len(ids))

	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			b, err := s.bundle(id)
			if err != nil {
				slog.Error("Failed to load league", "league_id", id, "error", err)
				return nil
			}
			mu.Lock()
			loaded[id] = b
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*models.LeagueBundle, 0, len(loaded))
	for _, id := range ids {
		if b, ok := loaded[id]; ok {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no leagues could be loaded for %s", s.cfg.Username)
	}
	return out, nil
}

func (s *FantasyService) players() (map[string]models.PlayerMeta, error) {
	if p := s.repo.GetPlayers(); p != nil {
		return p, nil
	}
	p, err := s.api.GetPlayersMap()
	if err != nil {
		return nil, fmt.Errorf("fetching players map: %w", err)
	}
	s.repo.SavePlayers(p)
	return p, nil
}

func (s *FantasyService) projections(week int) (map[string]*models.ProjectionRow, error) {
	if rows := s.repo.GetProjections(s.cfg.Season, week); rows != nil {
		return rows, nil
	}
	rows, err := s.api.GetProjectionRows(s.cfg.Season, week, s.cfg.Provider)
	if err != nil {
		return nil, err
	}
	s.repo.SaveProjections(s.cfg.Season, week, rows)
	return rows, nil
}

func (s *FantasyService) weekStats(week int) map[string]*models.ProjectionRow {
	if rows := s.repo.GetStats(s.cfg.Season, week); rows != nil {
		return rows
	}
	rows, err := s.api.GetWeekStats(s.cfg.Season, week)
	if err != nil {
		// Stats are best-effort; a miss means live zeros read as not yet played.
		slog.Error("Failed to fetch week stats", "week", week, "error", err)
		return nil
	}
	s.repo.SaveStats(s.cfg.Season, week, rows)
	return rows
}

// scoreFunc builds the per-league scorer: provider row rescored under the
// league's own scoring settings.
func scoreFunc(players map[string]models.PlayerMeta, rows map[string]*models.ProjectionRow, rules map[string]float64) engine.ScoreFunc {
	return func(playerID string) float64 {
		return engine.Score(players[playerID], rows[playerID], rules)
	}
}

func (s *FantasyService) leagueContext(leagueArg string, week int) (*leagueContext, error) {
	bundles, err := s.bundles()
	if err != nil {
		return nil, err
	}
	bundle, err := matchLeague(bundles, leagueArg)
	if err != nil {
		return nil, err
	}
	return s.contextFor(bundle, week)
}

func (s *FantasyService) contextFor(bundle *models.LeagueBundle, week int) (*leagueContext, error) {
	userID, err := s.resolveUserID()
	if err != nil {
		return nil, err
	}
	players, err := s.players()
	if err != nil {
		return nil, err
	}
	rows, err := s.projections(week)
	if err != nil {
		return nil, fmt.Errorf("fetching projections: %w", err)
	}

	ctx := &leagueContext{
		bundle:  bundle,
		players: players,
		scoreFn: scoreFunc(players, rows, bundle.League.ScoringSettings),
	}
	for i := range bundle.Rosters {
		if bundle.Rosters[i].OwnerID == userID {
			ctx.myRoster = &bundle.Rosters[i]
			break
		}
	}
	if ctx.myRoster == nil {
		return nil, fmt.Errorf("no roster owned by %s in %s", s.cfg.Username, bundle.League.Name)
	}
	return ctx, nil
}

// matchLeague picks a league by name argument: single league needs no
// argument, otherwise fuzzy-match on league names.
func matchLeague(bundles []*models.LeagueBundle, arg string) (*models.LeagueBundle, error) {
	if arg == "" {
		if len(bundles) == 1 {
			return bundles[0], nil
		}
		names := make([]string, 0, len(bundles))
		for _, b := range bundles {
			names = append(names, b.League.Name)
		}
		return nil, fmt.Errorf("multiple leagues loaded, name one of: %s", strings.Join(names, ", "))
	}

	names := make([]string, 0, len(bundles))
	for _, b := range bundles {
		names = append(names, b.League.Name)
	}
	ranks := fuzzy.RankFindNormalizedFold(arg, names)
	if len(ranks) == 0 {
		return nil, fmt.Errorf("no league matching %q", arg)
	}
	sort.Sort(ranks)
	for _, b := range bundles {
		if b.League.Name == ranks[0].Target {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no league matching %q", arg)
}

func (c *leagueContext) teamNameFor(rosterID int) string {
	for _, r := range c.bundle.Rosters {
		if r.RosterID == rosterID {
			return teamNameOf(c.bundle, r)
		}
	}
	return fmt.Sprintf("Team %d", rosterID)
}

func record(r models.Roster) string {
	s := r.Settings
	if s.Ties > 0 {
		return fmt.Sprintf("(%d-%d-%d)", s.Wins, s.Losses, s.Ties)
	}
	return fmt.Sprintf("(%d-%d)", s.Wins, s.Losses)
}

func playerAge(meta models.PlayerMeta) int {
	if meta.Age > 0 {
		return meta.Age
	}
	if meta.BirthDate == "" {
		return 0
	}
	bd, err := time.Parse("2006-01-02", meta.BirthDate)
	if err != nil {
		return 0
	}
	now := time.Now()
	age := now.Year() - bd.Year()
	if now.YearDay() < bd.YearDay() {
		age--
	}
	return age
}

func seasonYear(season string) int {
	year := 0
	fmt.Sscanf(season, "%d", &year)
	return year
}

// GetLeaguesReport lists the user's leagues with team name and record.
func (s *FantasyService) GetLeaguesReport() (string, error) {
	bundles, err := s.bundles()
	if err != nil {
		return "", err
	}
	userID, err := s.resolveUserID()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *Leagues — %s*\n\n", s.cfg.Season))
	for _, b := range bundles {
		sb.WriteString(fmt.Sprintf("*%s* (%d teams)\n", b.League.Name, b.League.TotalRosters))
		for _, r := range b.Rosters {
			if r.OwnerID == userID {
				sb.WriteString(fmt.Sprintf("   My team: %s %s\n", teamNameOf(b, r), record(r)))
				break
			}
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func teamNameOf(b *models.LeagueBundle, r models.Roster) string {
	for _, u := range b.Users {
		if u.UserID == r.OwnerID {
			if u.Metadata.TeamName != "" {
				return u.Metadata.TeamName
			}
			if u.DisplayName != "" {
				return u.DisplayName
			}
		}
	}
	return fmt.Sprintf("Team %d", r.RosterID)
}

// GetRosterReport renders my roster for one league, projections included.
func (s *FantasyService) GetRosterReport(leagueArg string) (string, error) {
	week := s.GetCurrentWeek()
	ctx, err := s.leagueContext(leagueArg, week)
	if err != nil {
		return "", fmt.Errorf("loading league: %w", err)
	}

	rows := engine.IndexRoster(*ctx.myRoster, ctx.players, ctx.scoreFn)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Projected > rows[j].Projected })

	season := seasonYear(ctx.bundle.League.Season)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s — %s %s*\n\n", ctx.teamNameFor(ctx.myRoster.RosterID), ctx.bundle.League.Name, record(*ctx.myRoster)))
	for _, r := range rows {
		bye := "—"
		if b := engine.ResolveBye(r.Team, r.ByeWeek, season); b != 0 {
			bye = fmt.Sprintf("W%d", b)
		}
		ageStr := "—"
		if a := playerAge(ctx.players[r.PlayerID]); a > 0 {
			ageStr = fmt.Sprintf("%d", a)
		}
		sb.WriteString(fmt.Sprintf("▫️ %s %s (%s) • %.2f pts • age %s • bye %s\n",
			r.Position, r.Name, r.Team, r.Projected, ageStr, bye))
	}
	return sb.String(), nil
}

// GetPositionRanksReport renders my optimal-lineup value per slot group and
// its rank/percentile across the league.
func (s *FantasyService) GetPositionRanksReport(leagueArg string) (string, error) {
	week := s.GetCurrentWeek()
	ctx, err := s.leagueContext(leagueArg, week)
	if err != nil {
		return "", fmt.Errorf("loading league: %w", err)
	}

	stats, err := positionStats(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Position Values — %s (Week %d)*\n\n", ctx.bundle.League.Name, week))
	for _, st := range stats {
		sb.WriteString(fmt.Sprintf("*%s*: %.2f pts — rank %d/%d (beats %.1f%%)\n",
			strings.ReplaceAll(st.Group, "_", " "), st.Value, st.Rank, st.OutOf, st.Percentile))
	}
	return sb.String(), nil
}

// positionStats allocates every roster in the league and ranks mine per
// slot group.
func positionStats(ctx *leagueContext) ([]models.PositionStat, error) {
	slots := engine.ParseSlots(ctx.bundle.League.RosterPositions)

	values := make(map[int]map[string]float64, len(ctx.bundle.Rosters))
	for _, r := range ctx.bundle.Rosters {
		rows := engine.IndexRoster(r, ctx.players, ctx.scoreFn)
		alloc, err := engine.Allocate(rows, slots)
		if err != nil {
			return nil, fmt.Errorf("allocating lineup for roster %d: %w", r.RosterID, err)
		}
		values[r.RosterID] = alloc.Values
	}

	var stats []models.PositionStat
	for _, slot := range slots {
		group := slot.GroupName()
		list := make([]float64, 0, len(ctx.bundle.Rosters))
		for _, r := range ctx.bundle.Rosters {
			list = append(list, values[r.RosterID][group])
		}
		mine := values[ctx.myRoster.RosterID][group]
		res := engine.Rank(list, mine)
		stats = append(stats, models.PositionStat{
			Group:      group,
			Value:      engine.Round2(mine),
			Rank:       res.Rank,
			OutOf:      res.OutOf,
			Percentile: res.Percentile,
		})
	}
	return stats, nil
}

func (s *FantasyService) preview(ctx *leagueContext, week int) models.MatchupPreview {
	matchups, err := s.api.GetMatchups(ctx.bundle.League.LeagueID, week)
	if err != nil {
		// A league with no matchup data still gets a projection-only view.
		slog.Error("Failed to fetch matchups", "league", ctx.bundle.League.Name, "week", week, "error", err)
		matchups = nil
	}
	stats := s.weekStats(week)
	return engine.Preview(week, matchups, ctx.bundle.Rosters, ctx.bundle.Users, ctx.players, stats, ctx.scoreFn, ctx.myRoster.RosterID)
}

// GetMatchupReport renders this week's head-to-head with starter risk flags.
func (s *FantasyService) GetMatchupReport(leagueArg string) (string, error) {
	week := s.GetCurrentWeek()
	ctx, err := s.leagueContext(leagueArg, week)
	if err != nil {
		return "", fmt.Errorf("loading league: %w", err)
	}

	p := s.preview(ctx, week)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *Week %d Matchup — %s*\n\n", week, ctx.bundle.League.Name))

	oppName := p.Opponent.TeamName
	if oppName == "" {
		oppName = "No opponent"
	}
	sb.WriteString(fmt.Sprintf("*%s* vs *%s*\n", p.Me.TeamName, oppName))
	sb.WriteString(fmt.Sprintf("Projected: %.2f - %.2f\n", p.Me.ProjectedTotal, p.Opponent.ProjectedTotal))
	if p.Me.Live || p.Opponent.Live {
		sb.WriteString(fmt.Sprintf("Current: %.2f - %.2f\n", p.Me.CurrentTotal, p.Opponent.CurrentTotal))
	}
	sb.WriteString("\n*My Starters:*\n")
	writeStarters(&sb, p.MyStarters)
	if len(p.OppStarters) > 0 {
		sb.WriteString(fmt.Sprintf("\n*%s's Starters:*\n", oppName))
		writeStarters(&sb, p.OppStarters)
	}
	return sb.String(), nil
}

func writeStarters(sb *strings.Builder, starters []models.MatchupStarter) {
	for _, st := range starters {
		points := fmt.Sprintf("%.2f proj", st.Projected)
		if st.Current != nil {
			points = fmt.Sprintf("%.2f pts", *st.Current)
		}
		flags := ""
		if st.RedFlag {
			flags += " 🔴"
		}
		if st.YellowFlag {
			flags += " 🟡"
		}
		sb.WriteString(fmt.Sprintf("▫️ %s %s (%s) - %s%s\n", st.Position, st.Name, st.Team, points, flags))
	}
}

// GetAllMatchupsReport renders a compact head-to-head line for every
// league, for the weekly broadcast.
func (s *FantasyService) GetAllMatchupsReport() (string, error) {
	week := s.GetCurrentWeek()
	bundles, err := s.bundles()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏈 *Week %d Matchups*\n\n", week))
	for _, b := range bundles {
		ctx, err := s.contextFor(b, week)
		if err != nil {
			slog.Error("Skipping league for matchups", "league", b.League.Name, "error", err)
			continue
		}
		p := s.preview(ctx, week)

		oppName := p.Opponent.TeamName
		if oppName == "" {
			oppName = "—"
		}
		flags := 0
		for _, st := range p.MyStarters {
			if st.RedFlag || st.YellowFlag {
				flags++
			}
		}
		sb.WriteString(fmt.Sprintf("*%s*\n   %s %.2f vs %.2f %s", b.League.Name, p.Me.TeamName, p.Me.ProjectedTotal, p.Opponent.ProjectedTotal, oppName))
		if flags > 0 {
			sb.WriteString(fmt.Sprintf(" • %d flagged starter(s)", flags))
		}
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

// GetAlertsReport surfaces zero-projection starters across every league,
// with same-position bench replacements.
func (s *FantasyService) GetAlertsReport() (string, error) {
	week := s.GetCurrentWeek()
	bundles, err := s.bundles()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🚨 *Week %d Lineup Alerts*\n\n", week))

	flaggedAny := false
	for _, b := range bundles {
		ctx, err := s.contextFor(b, week)
		if err != nil {
			slog.Error("Skipping league for alerts", "league", b.League.Name, "error", err)
			continue
		}
		p := s.preview(ctx, week)

		var flagged []models.MatchupStarter
		for _, st := range p.MyStarters {
			if st.RedFlag {
				flagged = append(flagged, st)
			}
		}
		if len(flagged) == 0 {
			continue
		}
		flaggedAny = true

		candidates := engine.ReplacementCandidates(p.MyStarters, p.MyBench)
		sb.WriteString(fmt.Sprintf("*%s:*\n", b.League.Name))
		for _, st := range flagged {
			sb.WriteString(fmt.Sprintf("  🔴 %s %s (%s) — 0.00 pts\n", st.Position, st.Name, st.Team))
			cands := candidates[st.PlayerID]
			if len(cands) == 0 {
				sb.WriteString("     no same-position bench options\n")
				continue
			}
			for _, c := range cands {
				sb.WriteString(fmt.Sprintf("     ↳ %s (%s) %.2f\n", c.Name, c.Team, c.Projected))
			}
		}
		sb.WriteString("\n")
	}

	if !flaggedAny {
		sb.WriteString("All starters have projections. ✅")
	}
	return sb.String(), nil
}

// GetByeReport renders the full-season bye exposure matrix across leagues,
// or the position breakdown for one league when named.
func (s *FantasyService) GetByeReport(leagueArg string) (string, error) {
	bundles, err := s.bundles()
	if err != nil {
		return "", err
	}
	players, err := s.players()
	if err != nil {
		return "", err
	}
	userID, err := s.resolveUserID()
	if err != nil {
		return "", err
	}
	season := seasonYear(s.cfg.Season)

	if leagueArg != "" {
		bundle, err := matchLeague(bundles, leagueArg)
		if err != nil {
			return "", err
		}
		return byePositionReport(bundle, players, userID, season)
	}

	type leagueByes struct {
		name   string
		matrix models.ByeMatrix
	}
	var rows []leagueByes
	for _, b := range bundles {
		for _, r := range b.Rosters {
			if r.OwnerID != userID {
				continue
			}
			indexed := engine.IndexRoster(r, players, nil)
			rows = append(rows, leagueByes{b.League.Name, engine.AggregateByes(indexed, season, nil)})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].matrix.Total() != rows[j].matrix.Total() {
			return rows[i].matrix.Total() > rows[j].matrix.Total()
		}
		return rows[i].name < rows[j].name
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗓 *Bye-Week Exposure — %d*\n\n", season))
	for _, lb := range rows {
		sb.WriteString(fmt.Sprintf("*%s* (%d total)\n   ", lb.name, lb.matrix.Total()))
		any := false
		for i, w := range lb.matrix.Weeks {
			if lb.matrix.Counts[i] == 0 {
				continue
			}
			if any {
				sb.WriteString(" • ")
			}
			sb.WriteString(fmt.Sprintf("W%d×%d", w, lb.matrix.Counts[i]))
			any = true
		}
		if !any {
			sb.WriteString("no byes resolved")
		}
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

func byePositionReport(bundle *models.LeagueBundle, players map[string]models.PlayerMeta, userID string, season int) (string, error) {
	for _, r := range bundle.Rosters {
		if r.OwnerID != userID {
			continue
		}
		rows := engine.IndexRoster(r, players, nil)
		m := engine.AggregateByesByPosition(rows, season, nil)

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("🗓 *Bye Weeks by Position — %s*\n\n", bundle.League.Name))
		for _, pos := range m.Positions {
			sb.WriteString(fmt.Sprintf("*%s* (%d)\n   ", pos, m.Total(pos)))
			any := false
			for i, w := range m.Weeks {
				if m.Counts[pos][i] == 0 {
					continue
				}
				if any {
					sb.WriteString(" • ")
				}
				sb.WriteString(fmt.Sprintf("W%d×%d", w, m.Counts[pos][i]))
				any = true
			}
			sb.WriteString("\n")
		}
		if len(m.Positions) == 0 {
			sb.WriteString("No byes resolved for this roster.")
		}
		return sb.String(), nil
	}
	return "", fmt.Errorf("no roster in %s", bundle.League.Name)
}

// GetSummaryReport renders the cross-league weekly outlook: projection edge
// per league plus repeated player exposures for and against.
func (s *FantasyService) GetSummaryReport() (string, error) {
	week := s.GetCurrentWeek()
	bundles, err := s.bundles()
	if err != nil {
		return "", err
	}
	players, err := s.players()
	if err != nil {
		return "", err
	}

	type leagueLine struct {
		name, opp    string
		mine, theirs float64
	}
	var lines []leagueLine
	haveCounts := make(map[string]int)
	vsCounts := make(map[string]int)

	for _, b := range bundles {
		ctx, err := s.contextFor(b, week)
		if err != nil {
			slog.Error("Skipping league for summary", "league", b.League.Name, "error", err)
			continue
		}
		p := s.preview(ctx, week)
		lines = append(lines, leagueLine{
			name:   b.League.Name,
			opp:    p.Opponent.TeamName,
			mine:   p.Me.ProjectedTotal,
			theirs: p.Opponent.ProjectedTotal,
		})
		for _, id := range engine.RosterPlayerIDs(*ctx.myRoster) {
			haveCounts[id]++
		}
		for _, st := range p.OppStarters {
			vsCounts[st.PlayerID]++
		}
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].mine > lines[j].mine })

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📈 *Week %d Summary*\n\n", week))
	for _, l := range lines {
		marker := "➜ "
		opp := l.opp
		if opp == "" {
			opp = "—"
		}
		if l.theirs > l.mine {
			marker = ""
		}
		sb.WriteString(fmt.Sprintf("*%s*: %s%.2f vs %.2f (%s)\n", l.name, marker, l.mine, l.theirs, opp))
	}

	writeExposures(&sb, "Players I have in 2+ leagues", haveCounts, vsCounts, players)
	writeExposures(&sb, "Players I face in 2+ leagues", vsCounts, haveCounts, players)
	return sb.String(), nil
}

func writeExposures(sb *strings.Builder, title string, primary, secondary map[string]int, players map[string]models.PlayerMeta) {
	type exposure struct {
		name      string
		pos       models.Position
		have, cnt int
	}
	var list []exposure
	for id, n := range primary {
		if n < 2 {
			continue
		}
		meta := players[id]
		list = append(list, exposure{
			name: engine.PlayerName(meta),
			pos:  engine.NormalizePosition(meta.Position),
			have: secondary[id],
			cnt:  n,
		})
	}
	if len(list) == 0 {
		return
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].cnt != list[j].cnt {
			return list[i].cnt > list[j].cnt
		}
		return list[i].name < list[j].name
	})

	sb.WriteString(fmt.Sprintf("\n*%s:*\n", title))
	for _, e := range list {
		sb.WriteString(fmt.Sprintf("▫️ %s %s ×%d (other side ×%d)\n", e.pos, e.name, e.cnt, e.have))
	}
}

// WhoHas fuzzy-matches a player name and reports ownership across the
// user's leagues.
func (s *FantasyService) WhoHas(playerName string) (string, error) {
	bundles, err := s.bundles()
	if err != nil {
		return "", err
	}
	players, err := s.players()
	if err != nil {
		return "", err
	}
	userID, err := s.resolveUserID()
	if err != nil {
		return "", err
	}

	result := searchPlayer(bundles, players, userID, playerName)
	if !result.Found {
		return fmt.Sprintf("🔍 No player found matching '%s'.", playerName), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s - %s)\n", result.PlayerName, result.Position, result.Team))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	if len(result.Leagues) == 0 {
		sb.WriteString("Free agent in all of your leagues.")
		return sb.String(), nil
	}
	for _, l := range result.Leagues {
		owner := l.OwnerName
		if l.Mine {
			owner = "me"
		}
		status := "Bench"
		if l.Starting {
			status = "Starting"
		}
		sb.WriteString(fmt.Sprintf("*%s*: %s (%s)\n", l.LeagueName, owner, status))
	}
	return sb.String(), nil
}

// searchPlayer finds the best fuzzy name match among players rostered or
// relevant in the user's leagues, then reports per-league ownership.
func searchPlayer(bundles []*models.LeagueBundle, players map[string]models.PlayerMeta, userID, query string) models.WhoHasResult {
	bestScore := -1.0
	bestID := ""
	const threshold = 0.7

	seen := make(map[string]struct{})
	for _, b := range bundles {
		for _, r := range b.Rosters {
			for _, id := range engine.RosterPlayerIDs(r) {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}

				name := strings.ToLower(engine.PlayerName(players[id]))
				q := strings.ToLower(query)
				distance := fuzzy.LevenshteinDistance(q, name)
				maxLen := len(q)
				if len(name) > maxLen {
					maxLen = len(name)
				}
				if maxLen == 0 {
					continue
				}
				similarity := 1 - float64(distance)/float64(maxLen)
				if similarity > threshold && similarity > bestScore {
					bestScore = similarity
					bestID = id
				}
			}
		}
	}

	if bestID == "" {
		return models.WhoHasResult{PlayerName: query}
	}

	meta := players[bestID]
	result := models.WhoHasResult{
		PlayerID:   bestID,
		PlayerName: engine.PlayerName(meta),
		Position:   engine.NormalizePosition(meta.Position),
		Team:       meta.Team,
		Found:      true,
	}
	if result.Team == "" {
		result.Team = "FA"
	}

	for _, b := range bundles {
		for _, r := range b.Rosters {
			owned := false
			for _, id := range engine.RosterPlayerIDs(r) {
				if id == bestID {
					owned = true
					break
				}
			}
			if !owned {
				continue
			}
			starting := false
			for _, id := range r.Starters {
				if id == bestID {
					starting = true
					break
				}
			}
			result.Leagues = append(result.Leagues, models.WhoHasLeague{
				LeagueName: b.League.Name,
				Mine:       r.OwnerID == userID,
				OwnerName:  teamNameOf(b, r),
				Starting:   starting,
			})
		}
	}
	return result
}

// GetWaiversReport renders trending waiver adds annotated with availability
// in the user's leagues.
func (s *FantasyService) GetWaiversReport() (string, error) {
	trending, err := s.api.GetTrendingAdds(15)
	if err != nil {
		return "", fmt.Errorf("fetching trending adds: %w", err)
	}
	bundles, err := s.bundles()
	if err != nil {
		return "", err
	}
	players, err := s.players()
	if err != nil {
		return "", err
	}

	rostered := make(map[string]int)
	for _, b := range bundles {
		for _, r := range b.Rosters {
			for _, id := range engine.RosterPlayerIDs(r) {
				rostered[id]++
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("📡 *Trending Waiver Adds (24h)*\n\n")
	for _, t := range trending {
		meta := players[t.PlayerID]
		team := meta.Team
		if team == "" {
			team = "FA"
		}
		taken := rostered[t.PlayerID]
		avail := fmt.Sprintf("free in %d/%d leagues", len(bundles)-taken, len(bundles))
		if taken == len(bundles) {
			avail = "rostered everywhere"
		}
		sb.WriteString(fmt.Sprintf("▫️ %s %s (%s) +%d adds — %s\n",
			engine.NormalizePosition(meta.Position), engine.PlayerName(meta), team, t.Count, avail))
	}
	if len(trending) == 0 {
		sb.WriteString("No trending data available.")
	}
	return sb.String(), nil
}
