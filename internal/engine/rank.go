package engine

import (
	"math"
	"sort"

	"github.com/AryanShah2000/sleeper-hub/internal/models"
)

// Rank places one team's slot-group value among the whole league's values
// for that group. Rank is the first-match index in the descending sort, so
// ties collapse onto the earliest equal value; this is a compatibility
// choice, not competition ranking. Percentile is the share of the league
// strictly beaten, to one decimal place.
func Rank(values []float64, mine float64) models.PercentileResult {
	if len(values) == 0 {
		return models.PercentileResult{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	rank := 0
	below := 0
	for i, v := range sorted {
		if rank == 0 && v == mine {
			rank = i + 1
		}
		if v < mine {
			below++
		}
	}
	if rank == 0 {
		// Value not present in the list; degrade to strict-greater counting.
		rank = len(sorted) - below + 1
	}

	n := len(sorted)
	pct := 0.0
	if n > 0 {
		pct = math.Round(1000*float64(below)/float64(n)) / 10
	}
	return models.PercentileResult{Rank: rank, OutOf: n, Percentile: pct}
}
