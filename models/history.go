package models

import "time"

// TournamentHistory is the immutable archive entry written exactly once when
// a tournament is closed. It owns a frozen copy of the final standings and
// MVP figures and has no live foreign keys: it must survive deletion of the
// originating tournament.
type TournamentHistory struct {
	ID                    int            `json:"id" db:"id"`
	TournamentName        string         `json:"tournament_name" db:"tournament_name"`
	TournamentDescription *string        `json:"tournament_description,omitempty" db:"tournament_description"`
	TotalMatches          int            `json:"total_matches" db:"total_matches"`
	Standings             []TeamStanding `json:"standings" db:"-"` // stored as JSONB
	MVPPlayerName         *string        `json:"mvp_player_name,omitempty" db:"mvp_player_name"`
	MVPTotalKills         int            `json:"mvp_total_kills" db:"mvp_total_kills"`
	MVPMatchesCount       int            `json:"mvp_matches_count" db:"mvp_matches_count"`
	OriginalTournamentID  int            `json:"original_tournament_id" db:"original_tournament_id"`
	ArchivedAt            time.Time      `json:"archived_at" db:"archived_at"`
}
