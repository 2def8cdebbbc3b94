// Package engine holds the scoring and lineup analytics core: pure,
// stateless transformations from raw provider stat lines and league
// configuration to fantasy point values, optimal-lineup valuations,
// percentile ranks, matchup previews, and bye-week matrices. Nothing in this
// package performs I/O or keeps state between calls, so the service layer can
// run it for many leagues concurrently.
package engine

import (
	"math"

	"github.com/AryanShah2000/sleeper-hub/internal/models"
)

// scoringCategories are the stat keys rescored under league rules for
// skill positions. K and DEF are never rescored from categories; their
// provider aggregate is used as-is.
var scoringCategories = []string{
	"pass_yd", "pass_td", "pass_int", "pass_2pt",
	"rush_yd", "rush_td", "rush_2pt",
	"rec", "rec_yd", "rec_td", "rec_2pt",
	"fum_lost",
}

// feedTotalKeys is the preference order for a provider row's own aggregate
// fantasy total.
var feedTotalKeys = []string{"ppr", "pts_ppr", "fantasy_points_ppr"}

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FeedTotal returns the provider's own aggregate fantasy total for a row,
// first non-nil of the top-level totals, then the same keys inside stats.
// Returns (0, false) when the row carries no aggregate at all.
func FeedTotal(row *models.ProjectionRow) (float64, bool) {
	if row == nil {
		return 0, false
	}
	for _, p := range []*float64{row.PPR, row.PtsPPR, row.FantasyPR} {
		if p != nil {
			return *p, true
		}
	}
	for _, k := range feedTotalKeys {
		if v, ok := row.Stats[k]; ok {
			return v, true
		}
	}
	return 0, false
}

// kickerFallback reconstructs a kicker total from distance-bucketed field
// goal stats when the provider row has no aggregate. Returns 0 when no
// bucketed stats exist either.
func kickerFallback(stats map[string]float64) float64 {
	if stats == nil {
		return 0
	}
	short := stats["fgm_0_19"] + stats["fgm_20_29"] + stats["fgm_30_39"]
	mid := stats["fgm_40_49"]
	long := stats["fgm_50p"]
	xp := stats["xpm"]
	if short == 0 && mid == 0 && long == 0 && xp == 0 {
		return 0
	}
	return short*3 + mid*4 + long*5 + xp
}

// Score converts one player's provider stat row into league points under the
// given scoring rules. Missing rows, stats, and rule coefficients all count
// as zero; the result is rounded exactly once, after summation.
func Score(meta models.PlayerMeta, row *models.ProjectionRow, rules map[string]float64) float64 {
	pos := NormalizePosition(meta.Position)

	// K/DEF scoring settings rarely match the provider's stat keys, so the
	// feed's own total is authoritative for both.
	if pos == models.PosK || pos == models.PosDEF {
		if total, ok := FeedTotal(row); ok {
			return Round2(total)
		}
		if pos == models.PosK && row != nil {
			return Round2(kickerFallback(row.Stats))
		}
		return 0
	}

	var stats map[string]float64
	if row != nil {
		stats = row.Stats
	}

	pts := 0.0
	for _, k := range scoringCategories {
		pts += stats[k] * rules[k]
	}
	if pos == models.PosTE {
		pts += stats["rec"] * rules["bonus_rec_te"]
	}
	return Round2(pts)
}
