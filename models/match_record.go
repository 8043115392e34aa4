package models

import "time"

// RecordKind tags how a match record entered the system. Earlier versions of
// the schema encoded this by writing a sentinel literal into screenshot_url;
// the sentinels are still written for backward compatibility with archived
// rows, but kind is the authoritative discriminant.
type RecordKind string

const (
	// KindAutomatic records come from screenshot analysis; screenshot_url
	// holds the real public object URL.
	KindAutomatic RecordKind = "automatic"
	// KindManual records are keyed in by an admin per match.
	KindManual RecordKind = "manual"
	// KindDailyTotal records aggregate a whole day into one row.
	// MatchNumber is 0 and Placement is meaningless for them.
	KindDailyTotal RecordKind = "daily_total"
)

// Sentinel literals persisted in screenshot_url in lieu of a kind column by
// the legacy schema. Preserve these verbatim.
const (
	ManualEntrySentinel     = "manual-entry"
	DailyTotalEntrySentinel = "daily-total-entry"
)

// KindFromScreenshotURL recovers the record kind from a legacy row that
// predates the kind column.
func KindFromScreenshotURL(url string) RecordKind {
	switch url {
	case ManualEntrySentinel:
		return KindManual
	case DailyTotalEntrySentinel:
		return KindDailyTotal
	default:
		return KindAutomatic
	}
}

// MatchRecord is one raw result row for a team. MatchNumber 0 marks a
// daily-total record; MatchNumber >= 1 marks a per-match record. Points is
// precomputed at write time and is authoritative: for daily totals it holds
// kills + manually entered placement points flattened together, so it must
// never be re-derived from Placement at read time.
//
// A team may hold several records for the same (day, match number); the
// scoring engine never deduplicates.
type MatchRecord struct {
	ID            int        `json:"id" db:"id"`
	TeamID        int        `json:"team_id" db:"team_id"`
	MatchNumber   int        `json:"match_number" db:"match_number"`
	Day           int        `json:"day" db:"day"`
	Placement     int        `json:"placement" db:"placement"` // 0 = not applicable
	Kills         int        `json:"kills" db:"kills"`
	Points        int        `json:"points" db:"points"`
	Kind          RecordKind `json:"kind" db:"kind"`
	ScreenshotURL string     `json:"screenshot_url" db:"screenshot_url"`
	AnalyzedAt    *time.Time `json:"analyzed_at,omitempty" db:"analyzed_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// IsDailyTotal reports whether the record is a daily aggregate row.
func (r MatchRecord) IsDailyTotal() bool {
	return r.MatchNumber == 0
}
