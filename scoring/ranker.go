package scoring

import (
	"sort"

	"pubg-tournament-tracker/models"
)

// Rank orders standings descending by total points, ties broken descending by
// placement points, and assigns 1-based ranks. Beyond that the sort is
// stable: teams with identical points and placement points retain their input
// order, so the tie-break is purely positional, not identity-based.
func Rank(standings []models.TeamStanding) []models.TeamStanding {
	ranked := make([]models.TeamStanding, len(standings))
	copy(ranked, standings)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalPoints != ranked[j].TotalPoints {
			return ranked[i].TotalPoints > ranked[j].TotalPoints
		}
		return ranked[i].PlacementPoints > ranked[j].PlacementPoints
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
