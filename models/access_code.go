package models

import "time"

// AccessRole is the caller role carried by a redeemed access code.
type AccessRole string

const (
	RoleAdmin  AccessRole = "admin"
	RolePlayer AccessRole = "player"
)

// AccessCode binds a bcrypt-hashed entry code to a role. Player codes are
// scoped to one team; admin codes are not.
type AccessCode struct {
	ID        int        `json:"id" db:"id"`
	CodeHash  string     `json:"-" db:"code_hash"`
	Role      AccessRole `json:"role" db:"role"`
	TeamID    *int       `json:"team_id,omitempty" db:"team_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
