// Package scoring turns raw match records into standings, MVP figures and the
// CSV export. Everything here is pure: no storage access, no hidden state.
package scoring

// maxTrackedPlacement is the deepest finish rank a lobby can produce.
const maxTrackedPlacement = 32

// placementPointTable is the single shared rank→points mapping. Every scoring
// path must go through PlacementPoints; inline copies of this table are a
// defect. Ranks 9..32 score zero and are omitted.
var placementPointTable = map[int]int{
	1: 10,
	2: 6,
	3: 5,
	4: 4,
	5: 3,
	6: 2,
	7: 1,
	8: 1,
}

// PlacementPoints returns the points awarded for a finish rank. Rank 0
// ("not applicable", e.g. daily-total records) and ranks outside 1..32
// resolve to 0. Total over all ints, monotonically non-increasing over the
// valid range.
func PlacementPoints(placement int) int {
	if placement < 1 || placement > maxTrackedPlacement {
		return 0
	}
	return placementPointTable[placement]
}
