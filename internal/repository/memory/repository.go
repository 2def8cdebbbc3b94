package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/AryanShah2000/sleeper-hub/internal/models"
)

// Cache lifetimes: provider data moves slowly enough that a few hours of
// staleness is acceptable (the UI this replaces used the same 3h window).
const (
	playersTTL     = 24 * time.Hour
	bundleTTL      = 3 * time.Hour
	projectionsTTL = 3 * time.Hour
	statsTTL       = 15 * time.Minute
)

type playersEntry struct {
	players map[string]models.PlayerMeta
	fetched time.Time
}

type bundleEntry struct {
	bundle  *models.LeagueBundle
	fetched time.Time
}

type rowsEntry struct {
	rows    map[string]*models.ProjectionRow
	fetched time.Time
}

// Repository is an in-memory TTL cache for upstream Sleeper data. It holds
// no derived analytics: every report is recomputed from source data.
type Repository struct {
	mu          sync.RWMutex
	players     playersEntry
	bundles     map[string]bundleEntry
	projections map[string]rowsEntry
	stats       map[string]rowsEntry
}

func NewRepository() *Repository {
	return &Repository{
		bundles:     make(map[string]bundleEntry),
		projections: make(map[string]rowsEntry),
		stats:       make(map[string]rowsEntry),
	}
}

func (r *Repository) GetPlayers() map[string]models.PlayerMeta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.players.players == nil || time.Since(r.players.fetched) > playersTTL {
		return nil
	}
	return r.players.players
}

func (r *Repository) SavePlayers(players map[string]models.PlayerMeta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = playersEntry{players: players, fetched: time.Now()}
}

func (r *Repository) GetBundle(leagueID string) *models.LeagueBundle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.bundles[leagueID]
	if !ok || time.Since(e.fetched) > bundleTTL {
		return nil
	}
	return e.bundle
}

func (r *Repository) SaveBundle(leagueID string, bundle *models.LeagueBundle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bundles[leagueID] = bundleEntry{bundle: bundle, fetched: time.Now()}
}

func weekKey(season string, week int) string {
	return fmt.Sprintf("%s:%d", season, week)
}

func (r *Repository) GetProjections(season string, week int) map[string]*models.ProjectionRow {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.projections[weekKey(season, week)]
	if !ok || time.Since(e.fetched) > projectionsTTL {
		return nil
	}
	return e.rows
}

func (r *Repository) SaveProjections(season string, week int, rows map[string]*models.ProjectionRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projections[weekKey(season, week)] = rowsEntry{rows: rows, fetched: time.Now()}
}

func (r *Repository) GetStats(season string, week int) map[string]*models.ProjectionRow {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.stats[weekKey(season, week)]
	if !ok || time.Since(e.fetched) > statsTTL {
		return nil
	}
	return e.rows
}

func (r *Repository) SaveStats(season string, week int, rows map[string]*models.ProjectionRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats[weekKey(season, week)] = rowsEntry{rows: rows, fetched: time.Now()}
}

// Invalidate drops every cached entry, forcing fresh fetches.
func (r *Repository) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = playersEntry{}
	r.bundles = make(map[string]bundleEntry)
	r.projections = make(map[string]rowsEntry)
	r.stats = make(map[string]rowsEntry)
}
