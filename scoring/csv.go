package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"pubg-tournament-tracker/models"
)

// csvHeader is the fixed column layout of the standings export.
const csvHeader = "Rank,Team Name,Total Points,Placement Points,Kill Points,Total Kills,Matches Played,First Place Wins"

// StandingsCSV serializes a ranked list into the export layout. Team names
// are always quote-wrapped to tolerate embedded commas; numeric fields are
// raw. Built by hand rather than encoding/csv because the historical export
// wraps every name unconditionally and the output bytes must stay identical.
func StandingsCSV(ranked []models.TeamStanding) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, team := range ranked {
		fmt.Fprintf(&b, "%d,\"%s\",%d,%d,%d,%d,%d,%d\n",
			team.Rank,
			team.TeamName,
			team.TotalPoints,
			team.PlacementPoints,
			team.KillPoints,
			team.TotalKills,
			team.MatchesPlayed,
			team.FirstPlaceWins,
		)
	}
	return []byte(b.String())
}

// CSVFileName builds the download name for a standings export:
// "<tournament-name-slug>-standings-<YYYY-MM-DD>.csv".
func CSVFileName(tournamentName string, now time.Time) string {
	return fmt.Sprintf("%s-standings-%s.csv", slug.Make(tournamentName), now.Format("2006-01-02"))
}
