package services

import (
	"errors"
	"fmt"
)

// Shared business errors surfaced to the HTTP layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation errors: rejected before any write, no side effects.
	ErrValidationFailed       = errors.New("validation failed")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrTournamentInvalidCap   = errors.New("tournament total matches must be positive")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrInvalidPlacement       = errors.New("placement must be between 1 and 32")
	ErrNegativeKills          = errors.New("kills must not be negative")
	ErrNegativePoints         = errors.New("placement points must not be negative")
	ErrInvalidDay             = errors.New("day must be at least 1")
	ErrInvalidMatchNumber     = errors.New("match number must be at least 1")
	ErrNoResults              = errors.New("at least one team result is required")
	ErrDuplicateTeamInBatch   = errors.New("team already added to this match batch")
	ErrEmptyBatch             = errors.New("no screenshots provided")
	ErrBatchTooLarge          = errors.New("no more than 4 screenshots may be uploaded at once")
	ErrNotAnImage             = errors.New("only image files may be uploaded")

	// Conflicts.
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrTeamNameConflict       = errors.New("team name already exists in this tournament")

	// Entity lookups.
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrHistoryNotFound    = errors.New("tournament history entry not found")

	// Authentication.
	ErrInvalidAccessCode = errors.New("invalid access code")

	// Archival: a fatal purge step failed after earlier cleanup already ran.
	// The tournament is left partially archived and needs manual follow-up.
	ErrArchiveIncomplete = errors.New("tournament archival incomplete")
)

// QuotaExceededError rejects an upload batch before any write, reporting how
// many per-match slots the team has left under the tournament cap.
type QuotaExceededError struct {
	Limit     int
	Remaining int
}

func (e *QuotaExceededError) Error() string {
	if e.Remaining <= 0 {
		return fmt.Sprintf("the maximum number of matches (%d) for this tournament has been reached", e.Limit)
	}
	plural := ""
	if e.Remaining != 1 {
		plural = "s"
	}
	return fmt.Sprintf("you can only upload %d more screenshot%s for this tournament", e.Remaining, plural)
}
