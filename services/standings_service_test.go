package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubg-tournament-tracker/models"
)

func newStandingsFixture(t *testing.T) (StandingsService, *fakeRecordRepo, *fakeStatRepo) {
	t.Helper()
	tournamentRepo := newFakeTournamentRepo(&models.Tournament{ID: 1, Name: "Summer Clash", TotalMatches: 12})
	teamRepo := newFakeTeamRepo(
		&models.Team{ID: 1, TournamentID: 1, Name: "Alpha"},
		&models.Team{ID: 2, TournamentID: 1, Name: "Bravo"},
		&models.Team{ID: 3, TournamentID: 1, Name: "Charlie"},
	)
	recordRepo := &fakeRecordRepo{}
	statRepo := &fakeStatRepo{}
	teamService := NewTeamService(teamRepo, tournamentRepo, &fakeUploader{}, discardLogger())
	return NewStandingsService(tournamentRepo, teamService, recordRepo, statRepo), recordRepo, statRepo
}

func TestGetStandings(t *testing.T) {
	service, recordRepo, _ := newStandingsFixture(t)
	ctx := context.Background()

	seed := []*models.MatchRecord{
		{TeamID: 1, MatchNumber: 1, Day: 1, Placement: 2, Kills: 4, Points: 10},
		{TeamID: 1, MatchNumber: 2, Day: 1, Placement: 1, Kills: 3, Points: 13},
		{TeamID: 2, MatchNumber: 1, Day: 1, Placement: 5, Kills: 9, Points: 12},
		// Charlie never played.
	}
	for _, rec := range seed {
		require.NoError(t, recordRepo.Create(ctx, rec))
	}

	standings, err := service.GetStandings(ctx, 1)

	require.NoError(t, err)
	require.Len(t, standings, 3)

	assert.Equal(t, "Alpha", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 23, standings[0].TotalPoints)
	assert.Equal(t, 16, standings[0].PlacementPoints)
	assert.Equal(t, 1, standings[0].FirstPlaceWins)

	assert.Equal(t, "Bravo", standings[1].TeamName)
	assert.Equal(t, 2, standings[1].Rank)

	// Recordless teams still appear, zeroed, at the bottom.
	assert.Equal(t, "Charlie", standings[2].TeamName)
	assert.Equal(t, 0, standings[2].TotalPoints)
	assert.Equal(t, 0, standings[2].MatchesPlayed)
}

func TestGetStandingsUnknownTournament(t *testing.T) {
	service, _, _ := newStandingsFixture(t)

	_, err := service.GetStandings(context.Background(), 404)

	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestGetMVPFromStats(t *testing.T) {
	service, _, statRepo := newStandingsFixture(t)
	ctx := context.Background()

	require.NoError(t, statRepo.CreateBatch(ctx, []*models.PlayerStat{
		{TeamID: 1, PlayerName: "alice", Kills: 4, Damage: 300},
		{TeamID: 2, PlayerName: "bob", Kills: 2, Damage: 900},
		{TeamID: 1, PlayerName: "alice", Kills: 1, Damage: 150},
	}))

	mvp, err := service.GetMVP(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, mvp)
	assert.Equal(t, "alice", mvp.PlayerName)
	assert.Equal(t, 5, mvp.TotalKills)

	top, err := service.GetTopDamage(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "bob", top.PlayerName)
}

func TestGetMVPNoStats(t *testing.T) {
	service, _, _ := newStandingsFixture(t)

	mvp, err := service.GetMVP(context.Background(), 1)

	require.NoError(t, err)
	assert.Nil(t, mvp)
}

func TestExportCSV(t *testing.T) {
	service, recordRepo, _ := newStandingsFixture(t)
	ctx := context.Background()

	require.NoError(t, recordRepo.Create(ctx, &models.MatchRecord{
		TeamID: 1, MatchNumber: 1, Day: 1, Placement: 1, Kills: 2, Points: 12,
	}))

	fileName, data, err := service.ExportCSV(ctx, 1)

	require.NoError(t, err)
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "summer-clash-standings-"+today+".csv", fileName)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4, "header plus one line per team")
	assert.Equal(t, "Rank,Team Name,Total Points,Placement Points,Kill Points,Total Kills,Matches Played,First Place Wins", lines[0])
	assert.Equal(t, `1,"Alpha",12,10,2,2,1,1`, lines[1])
}
