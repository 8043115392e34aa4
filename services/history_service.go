package services

import (
	"context"
	"errors"
	"fmt"

	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/repositories"
)

// HistoryService exposes the archived tournaments read-only.
type HistoryService interface {
	GetHistoryByID(ctx context.Context, id int) (*models.TournamentHistory, error)
	ListHistory(ctx context.Context) ([]models.TournamentHistory, error)
}

type historyService struct {
	historyRepo repositories.TournamentHistoryRepository
}

func NewHistoryService(historyRepo repositories.TournamentHistoryRepository) HistoryService {
	return &historyService{historyRepo: historyRepo}
}

func (s *historyService) GetHistoryByID(ctx context.Context, id int) (*models.TournamentHistory, error) {
	entry, err := s.historyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrHistoryNotFound) {
			return nil, ErrHistoryNotFound
		}
		return nil, fmt.Errorf("failed to get history entry %d: %w", id, err)
	}
	return entry, nil
}

func (s *historyService) ListHistory(ctx context.Context) ([]models.TournamentHistory, error) {
	entries, err := s.historyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	return entries, nil
}
