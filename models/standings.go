package models

// StandingFigure is the derived aggregate for one team. It is never
// persisted while a tournament is live; it is recomputed from match records
// on every read and frozen into tournament_history on archival.
//
// TotalPoints sums the persisted points of every record. PlacementPoints is
// derived independently from each record's placement via the shared table,
// which keeps manually flattened daily totals auditable: their placement is 0
// so they contribute nothing here even though their points carry placement
// credit.
type StandingFigure struct {
	TotalPoints     int `json:"total_points"`
	PlacementPoints int `json:"placement_points"`
	KillPoints      int `json:"kill_points"`
	TotalKills      int `json:"total_kills"`
	MatchesPlayed   int `json:"matches_played"`
	FirstPlaceWins  int `json:"first_place_wins"`
}

// TeamStanding couples a team identity snapshot with its figure. Rank is
// assigned by the ranker (1-based).
type TeamStanding struct {
	TeamID   int     `json:"team_id"`
	TeamName string  `json:"team_name"`
	LogoURL  *string `json:"logo_url,omitempty"`
	Rank     int     `json:"rank"`
	StandingFigure
}
