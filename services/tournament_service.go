package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/repositories"
)

type CreateTournamentInput struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	TotalMatches int     `json:"total_matches"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input CreateTournamentInput) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo}
}

func validateTournamentInput(input CreateTournamentInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrTournamentNameRequired
	}
	if input.TotalMatches <= 0 {
		return ErrTournamentInvalidCap
	}
	return nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(input); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		TotalMatches: input.TotalMatches,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input CreateTournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(input); err != nil {
		return nil, err
	}

	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tournament.Name = strings.TrimSpace(input.Name)
	tournament.Description = input.Description
	tournament.TotalMatches = input.TotalMatches

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return tournament, nil
}
