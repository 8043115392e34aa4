package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubg-tournament-tracker/models"
)

func TestCreateTournament(t *testing.T) {
	service := NewTournamentService(newFakeTournamentRepo())
	desc := "winter league"

	tournament, err := service.CreateTournament(context.Background(), CreateTournamentInput{
		Name:         "  Winter League  ",
		Description:  &desc,
		TotalMatches: 16,
	})

	require.NoError(t, err)
	assert.Equal(t, "Winter League", tournament.Name, "name is trimmed")
	assert.Equal(t, 16, tournament.TotalMatches)
	assert.NotZero(t, tournament.ID)
}

func TestCreateTournamentValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateTournamentInput
		wantErr error
	}{
		{"empty name", CreateTournamentInput{Name: "   ", TotalMatches: 10}, ErrTournamentNameRequired},
		{"zero matches", CreateTournamentInput{Name: "Cup", TotalMatches: 0}, ErrTournamentInvalidCap},
		{"negative matches", CreateTournamentInput{Name: "Cup", TotalMatches: -4}, ErrTournamentInvalidCap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewTournamentService(newFakeTournamentRepo())

			_, err := service.CreateTournament(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateTournament(t *testing.T) {
	repo := newFakeTournamentRepo(&models.Tournament{ID: 1, Name: "Old Name", TotalMatches: 10})
	service := NewTournamentService(repo)

	updated, err := service.UpdateTournament(context.Background(), 1, CreateTournamentInput{
		Name:         "New Name",
		TotalMatches: 12,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 12, updated.TotalMatches)
}

func TestUpdateTournamentNotFound(t *testing.T) {
	service := NewTournamentService(newFakeTournamentRepo())

	_, err := service.UpdateTournament(context.Background(), 7, CreateTournamentInput{
		Name:         "Anything",
		TotalMatches: 5,
	})

	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
