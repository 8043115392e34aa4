package models

import "time"

// Tournament is one running event. TotalMatches is the hard cap of scored
// matches per team across the whole tournament, not per day.
type Tournament struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	TotalMatches int       `json:"total_matches" db:"total_matches"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Optional linked entities, populated by services.
	Teams []Team `json:"teams,omitempty" db:"-"`
}
