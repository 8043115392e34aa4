package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"pubg-tournament-tracker/models"
)

func TestPlacementPoints(t *testing.T) {
	tests := []struct {
		name      string
		placement int
		want      int
	}{
		{"winner", 1, 10},
		{"second", 2, 6},
		{"third", 3, 5},
		{"fourth", 4, 4},
		{"fifth", 5, 3},
		{"sixth", 6, 2},
		{"seventh", 7, 1},
		{"eighth", 8, 1},
		{"ninth scores zero", 9, 0},
		{"last tracked rank", 32, 0},
		{"not applicable", 0, 0},
		{"negative", -3, 0},
		{"beyond lobby size", 33, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlacementPoints(tt.placement))
		})
	}
}

func TestPlacementPointsMonotonic(t *testing.T) {
	for p := 1; p < maxTrackedPlacement; p++ {
		assert.GreaterOrEqual(t, PlacementPoints(p), PlacementPoints(p+1),
			"points must not increase from placement %d to %d", p, p+1)
	}
}

func TestCalculatePoints(t *testing.T) {
	tests := []struct {
		name      string
		placement int
		kills     int
		want      int
	}{
		{"win with kills", 1, 7, 17},
		{"second no kills", 2, 0, 6},
		{"unplaced rank only kills", 15, 4, 4},
		{"zero everything", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculatePoints(tt.placement, tt.kills))
		})
	}
}

func TestComputeStanding(t *testing.T) {
	records := []models.MatchRecord{
		{MatchNumber: 1, Placement: 1, Kills: 5, Points: 15, Kind: models.KindAutomatic},
		{MatchNumber: 2, Placement: 3, Kills: 2, Points: 7, Kind: models.KindManual},
		{MatchNumber: 3, Placement: 12, Kills: 1, Points: 1, Kind: models.KindAutomatic},
	}

	fig := ComputeStanding(records)

	assert.Equal(t, 23, fig.TotalPoints)
	assert.Equal(t, 15, fig.PlacementPoints)
	assert.Equal(t, 8, fig.TotalKills)
	assert.Equal(t, 8, fig.KillPoints)
	assert.Equal(t, 3, fig.MatchesPlayed)
	assert.Equal(t, 1, fig.FirstPlaceWins)
}

func TestComputeStandingDailyTotal(t *testing.T) {
	// A daily-total row carries flattened points: 8 kills + 6 placement
	// points keyed in by the organizer. Placement stays 0, so it adds
	// nothing to the placement-point column and never counts as a win.
	records := []models.MatchRecord{
		{MatchNumber: 0, Placement: 0, Kills: 8, Points: 14, Kind: models.KindDailyTotal},
	}

	fig := ComputeStanding(records)

	assert.Equal(t, 14, fig.TotalPoints)
	assert.Equal(t, 0, fig.PlacementPoints)
	assert.Equal(t, 8, fig.TotalKills)
	assert.Equal(t, 1, fig.MatchesPlayed)
	assert.Equal(t, 0, fig.FirstPlaceWins)
}

func TestComputeStandingEmpty(t *testing.T) {
	assert.Equal(t, models.StandingFigure{}, ComputeStanding(nil))
}

func TestComputeStandingOrderIndependent(t *testing.T) {
	records := []models.MatchRecord{
		{MatchNumber: 1, Placement: 1, Kills: 3, Points: 13},
		{MatchNumber: 2, Placement: 8, Kills: 0, Points: 1},
		{MatchNumber: 0, Placement: 0, Kills: 5, Points: 9, Kind: models.KindDailyTotal},
		{MatchNumber: 3, Placement: 2, Kills: 6, Points: 12},
	}
	want := ComputeStanding(records)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.MatchRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, ComputeStanding(shuffled))
	}
}
