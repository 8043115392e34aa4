package scoring

import "pubg-tournament-tracker/models"

// CalculatePoints computes the points for one per-match result:
// placement points plus one point per kill. Invalid placements simply
// contribute zero placement points.
func CalculatePoints(placement, kills int) int {
	return PlacementPoints(placement) + kills
}

// ComputeStanding folds a team's raw match records into its standing figure.
//
// TotalPoints trusts the persisted points of each record rather than
// re-deriving placement+kills: daily-total and manually overridden records do
// not satisfy the general formula. PlacementPoints is derived independently
// from each record's placement via the shared table, so a daily-total record
// (placement 0) adds nothing to it.
//
// The fold is order-independent and idempotent: permuting records or running
// it twice yields the same figure.
func ComputeStanding(records []models.MatchRecord) models.StandingFigure {
	var fig models.StandingFigure
	for _, rec := range records {
		fig.TotalPoints += rec.Points
		fig.PlacementPoints += PlacementPoints(rec.Placement)
		fig.TotalKills += rec.Kills
		if rec.Placement == 1 {
			fig.FirstPlaceWins++
		}
	}
	fig.KillPoints = fig.TotalKills
	fig.MatchesPlayed = len(records)
	return fig
}
