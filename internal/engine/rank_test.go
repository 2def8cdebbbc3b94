package engine

import "testing"

func TestRank_Basic(t *testing.T) {
	got := Rank([]float64{30, 20, 10}, 20)

	if got.Rank != 2 {
		t.Errorf("Rank = %d, want 2", got.Rank)
	}
	if got.OutOf != 3 {
		t.Errorf("OutOf = %d, want 3", got.OutOf)
	}
	if got.Percentile != 33.3 {
		t.Errorf("Percentile = %v, want 33.3", got.Percentile)
	}
}

func TestRank_Top(t *testing.T) {
	got := Rank([]float64{30, 20, 10}, 30)

	if got.Rank != 1 {
		t.Errorf("Rank = %d, want 1", got.Rank)
	}
	if got.Percentile != 66.7 {
		t.Errorf("Percentile = %v, want 66.7", got.Percentile)
	}
}

func TestRank_Bottom(t *testing.T) {
	got := Rank([]float64{30, 20, 10}, 10)

	if got.Rank != 3 {
		t.Errorf("Rank = %d, want 3", got.Rank)
	}
	if got.Percentile != 0 {
		t.Errorf("Percentile = %v, want 0 (beat nobody)", got.Percentile)
	}
}

func TestRank_TiesShareFirstMatchIndex(t *testing.T) {
	// Ties collapse onto the earliest equal value's index; both 20s rank 2,
	// and neither counts as "beaten" for the percentile.
	got := Rank([]float64{30, 20, 20, 10}, 20)

	if got.Rank != 2 {
		t.Errorf("Rank = %d, want 2 for a tied value", got.Rank)
	}
	if got.Percentile != 25 {
		t.Errorf("Percentile = %v, want 25 (only the 10 is strictly below)", got.Percentile)
	}
}

func TestRank_InputNotMutated(t *testing.T) {
	vals := []float64{10, 30, 20}
	Rank(vals, 20)

	if vals[0] != 10 || vals[1] != 30 || vals[2] != 20 {
		t.Errorf("input slice mutated: %v", vals)
	}
}

func TestRank_ValueAbsentFromList(t *testing.T) {
	got := Rank([]float64{30, 10}, 20)

	if got.Rank != 2 {
		t.Errorf("Rank = %d, want 2 (one value strictly greater)", got.Rank)
	}
	if got.OutOf != 2 {
		t.Errorf("OutOf = %d, want 2", got.OutOf)
	}
}

func TestRank_EmptyList(t *testing.T) {
	// No values means no placement at all, not a rank of 1 over nobody.
	got := Rank(nil, 20)

	if got.Rank != 0 || got.OutOf != 0 || got.Percentile != 0 {
		t.Errorf("Rank over empty list = %+v, want zero result", got)
	}
}

func TestRank_RankWithinBounds(t *testing.T) {
	vals := []float64{5, 5, 5}
	got := Rank(vals, 5)

	if got.Rank < 1 || got.Rank > got.OutOf {
		t.Errorf("Rank = %d, want within [1, %d]", got.Rank, got.OutOf)
	}
}
