package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/repositories"
	"pubg-tournament-tracker/storage"
)

type TeamService interface {
	CreateTeam(ctx context.Context, tournamentID int, name string) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeamsByTournament(ctx context.Context, tournamentID int) ([]models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, tournamentID int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament %d: %w", tournamentID, err)
	}

	team := &models.Team{TournamentID: tournamentID, Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamInvalidTournament):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeamsByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	for i := range teams {
		s.populateLogoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %d: %w", id, err)
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}

	// Logo cleanup is best-effort; the row is already gone.
	if team.LogoKey != nil {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			s.logger.Warn("failed to delete team logo object",
				slog.Int("team_id", id), slog.String("key", *team.LogoKey), slog.Any("error", err))
		}
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	key := fmt.Sprintf("logos/%d/%s", teamID, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", teamID, err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to persist logo key for team %d: %w", teamID, err)
	}
	team.LogoKey = &result.Key

	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete replaced team logo object",
				slog.Int("team_id", teamID), slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team.LogoKey != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
}
