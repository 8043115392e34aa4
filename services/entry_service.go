package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/repositories"
	"pubg-tournament-tracker/scoring"
)

// TeamResultInput is one team's result within a manually keyed match.
type TeamResultInput struct {
	TeamID    int `json:"team_id"`
	Placement int `json:"placement"`
	Kills     int `json:"kills"`
}

type ManualMatchInput struct {
	MatchNumber int               `json:"match_number"`
	Day         int               `json:"day"`
	Results     []TeamResultInput `json:"results"`
}

type DailyTotalInput struct {
	TeamID          int `json:"team_id"`
	Day             int `json:"day"`
	Kills           int `json:"kills"`
	PlacementPoints int `json:"placement_points"`
}

// EntryService covers the admin-side manual channels: per-match results keyed
// in by hand and whole-day aggregate corrections.
type EntryService interface {
	SubmitMatchResults(ctx context.Context, tournamentID int, input ManualMatchInput) ([]models.MatchRecord, error)
	SubmitDailyTotal(ctx context.Context, input DailyTotalInput) (*models.MatchRecord, error)
}

type entryService struct {
	teamRepo   repositories.TeamRepository
	recordRepo repositories.MatchRecordRepository
}

func NewEntryService(teamRepo repositories.TeamRepository, recordRepo repositories.MatchRecordRepository) EntryService {
	return &entryService{teamRepo: teamRepo, recordRepo: recordRepo}
}

func (s *entryService) SubmitMatchResults(ctx context.Context, tournamentID int, input ManualMatchInput) ([]models.MatchRecord, error) {
	if input.MatchNumber < 1 {
		return nil, ErrInvalidMatchNumber
	}
	if input.Day < 1 {
		return nil, ErrInvalidDay
	}
	if len(input.Results) == 0 {
		return nil, ErrNoResults
	}

	seen := make(map[int]bool, len(input.Results))
	for _, res := range input.Results {
		if res.Placement < 1 || res.Placement > 32 {
			return nil, ErrInvalidPlacement
		}
		if res.Kills < 0 {
			return nil, ErrNegativeKills
		}
		if seen[res.TeamID] {
			return nil, ErrDuplicateTeamInBatch
		}
		seen[res.TeamID] = true
	}

	// Validate membership before any write.
	for _, res := range input.Results {
		team, err := s.teamRepo.GetByID(ctx, res.TeamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to check team %d: %w", res.TeamID, err)
		}
		if team.TournamentID != tournamentID {
			return nil, ErrTeamNotFound
		}
	}

	now := time.Now().UTC()
	records := make([]*models.MatchRecord, 0, len(input.Results))
	for _, res := range input.Results {
		records = append(records, &models.MatchRecord{
			TeamID:        res.TeamID,
			MatchNumber:   input.MatchNumber,
			Day:           input.Day,
			Placement:     res.Placement,
			Kills:         res.Kills,
			Points:        scoring.CalculatePoints(res.Placement, res.Kills),
			Kind:          models.KindManual,
			ScreenshotURL: models.ManualEntrySentinel,
			AnalyzedAt:    &now,
		})
	}

	if err := s.recordRepo.CreateBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save manual match results: %w", err)
	}

	out := make([]models.MatchRecord, len(records))
	for i, rec := range records {
		out[i] = *rec
	}
	return out, nil
}

func (s *entryService) SubmitDailyTotal(ctx context.Context, input DailyTotalInput) (*models.MatchRecord, error) {
	if input.Day < 1 {
		return nil, ErrInvalidDay
	}
	if input.Kills < 0 {
		return nil, ErrNegativeKills
	}
	if input.PlacementPoints < 0 {
		return nil, ErrNegativePoints
	}

	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team %d: %w", input.TeamID, err)
	}

	// The manually entered placement points are flattened into the persisted
	// points; placement stays 0 so the scoring engine never re-derives them.
	now := time.Now().UTC()
	record := &models.MatchRecord{
		TeamID:        input.TeamID,
		MatchNumber:   0,
		Day:           input.Day,
		Placement:     0,
		Kills:         input.Kills,
		Points:        input.Kills + input.PlacementPoints,
		Kind:          models.KindDailyTotal,
		ScreenshotURL: models.DailyTotalEntrySentinel,
		AnalyzedAt:    &now,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save daily total: %w", err)
	}
	return record, nil
}
