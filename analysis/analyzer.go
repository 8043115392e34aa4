// Package analysis wraps the external image-analysis service that extracts
// match results from uploaded screenshots.
package analysis

import "context"

// PlayerResult is one per-player line read off a screenshot.
type PlayerResult struct {
	Name   string `json:"name"`
	Kills  int    `json:"kills"`
	Damage int    `json:"damage"`
}

// MatchAnalysis is the extraction result for a single image. Placement and
// Kills are nil when the service could not read them; callers must treat
// that as a failed item, not as zero.
type MatchAnalysis struct {
	Placement *int           `json:"placement"`
	Kills     *int           `json:"kills"`
	Players   []PlayerResult `json:"players"`
}

// ScreenshotAnalyzer is consumed as a single opaque call per image; latency
// and failure modes are the provider's business.
type ScreenshotAnalyzer interface {
	AnalyzeScreenshot(ctx context.Context, imageURL string) (*MatchAnalysis, error)
}
