package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubg-tournament-tracker/models"
)

func newTeamFixture() (TeamService, *fakeTeamRepo, *fakeUploader) {
	tournamentRepo := newFakeTournamentRepo(&models.Tournament{ID: 1, Name: "Cup", TotalMatches: 8})
	teamRepo := newFakeTeamRepo()
	uploader := &fakeUploader{}
	return NewTeamService(teamRepo, tournamentRepo, uploader, discardLogger()), teamRepo, uploader
}

func TestCreateTeam(t *testing.T) {
	service, _, _ := newTeamFixture()

	team, err := service.CreateTeam(context.Background(), 1, "  Raiders  ")

	require.NoError(t, err)
	assert.Equal(t, "Raiders", team.Name)
	assert.Equal(t, 1, team.TournamentID)
	assert.NotZero(t, team.ID)
}

func TestCreateTeamValidation(t *testing.T) {
	service, _, _ := newTeamFixture()

	_, err := service.CreateTeam(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, ErrTeamNameRequired)

	_, err = service.CreateTeam(context.Background(), 99, "Raiders")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestUploadLogo(t *testing.T) {
	service, teamRepo, uploader := newTeamFixture()
	ctx := context.Background()

	team, err := service.CreateTeam(ctx, 1, "Raiders")
	require.NoError(t, err)

	updated, err := service.UploadLogo(ctx, team.ID, "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	require.NotNil(t, updated.LogoKey)
	assert.True(t, strings.HasPrefix(*updated.LogoKey, "logos/"))
	require.NotNil(t, updated.LogoURL)
	assert.True(t, strings.HasPrefix(*updated.LogoURL, fakePublicBase+"/logos/"))

	// Replacing the logo deletes the previous object.
	firstKey := *updated.LogoKey
	replaced, err := service.UploadLogo(ctx, team.ID, "image/jpeg", strings.NewReader("jpg"))
	require.NoError(t, err)
	assert.NotEqual(t, firstKey, *replaced.LogoKey)
	assert.Contains(t, uploader.deleted, firstKey)

	stored, err := teamRepo.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, *replaced.LogoKey, *stored.LogoKey)
}

func TestUploadLogoRejectsNonImage(t *testing.T) {
	service, _, uploader := newTeamFixture()

	_, err := service.UploadLogo(context.Background(), 1, "text/plain", strings.NewReader("x"))

	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.Empty(t, uploader.uploaded)
}

func TestDeleteTeamCleansUpLogo(t *testing.T) {
	service, _, uploader := newTeamFixture()
	ctx := context.Background()

	team, err := service.CreateTeam(ctx, 1, "Raiders")
	require.NoError(t, err)
	updated, err := service.UploadLogo(ctx, team.ID, "image/png", strings.NewReader("png"))
	require.NoError(t, err)

	require.NoError(t, service.DeleteTeam(ctx, team.ID))

	assert.Contains(t, uploader.deleted, *updated.LogoKey)
	_, err = service.GetTeamByID(ctx, team.ID)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
