package models

import "time"

// PlayerStat is one per-player line extracted from a single analyzed
// screenshot. There is no player entity: player_name is the de facto
// identity and aggregation matches names exactly. RecordID is nil for rows
// that did not originate from an analyzed screenshot.
type PlayerStat struct {
	ID         int       `json:"id" db:"id"`
	RecordID   *int      `json:"record_id,omitempty" db:"record_id"`
	TeamID     int       `json:"team_id" db:"team_id"`
	PlayerName string    `json:"player_name" db:"player_name"`
	Kills      int       `json:"kills" db:"kills"`
	Damage     int       `json:"damage" db:"damage"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PlayerAggregate is the summed figure for one player name across every
// recorded match in a scope.
type PlayerAggregate struct {
	PlayerName   string `json:"player_name"`
	TotalKills   int    `json:"total_kills"`
	TotalDamage  int    `json:"total_damage"`
	MatchesCount int    `json:"matches_count"`
}
