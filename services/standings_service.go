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

type StandingsService interface {
	// GetStandings recomputes the ranked table from the record store. Nothing
	// is cached between reads.
	GetStandings(ctx context.Context, tournamentID int) ([]models.TeamStanding, error)
	GetMVP(ctx context.Context, tournamentID int) (*models.PlayerAggregate, error)
	GetTopDamage(ctx context.Context, tournamentID int) (*models.PlayerAggregate, error)
	// ExportCSV renders the current standings; the returned name embeds the
	// tournament slug and today's date.
	ExportCSV(ctx context.Context, tournamentID int) (fileName string, data []byte, err error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	teamService    TeamService
	recordRepo     repositories.MatchRecordRepository
	statRepo       repositories.PlayerStatRepository
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	teamService TeamService,
	recordRepo repositories.MatchRecordRepository,
	statRepo repositories.PlayerStatRepository,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		teamService:    teamService,
		recordRepo:     recordRepo,
		statRepo:       statRepo,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, tournamentID int) ([]models.TeamStanding, error) {
	teams, err := s.teamService.ListTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return nil, ErrTournamentNotFound
			}
			return nil, err
		}
		return []models.TeamStanding{}, nil
	}

	teamIDs := make([]int, len(teams))
	for i, team := range teams {
		teamIDs[i] = team.ID
	}

	records, err := s.recordRepo.ListByTeams(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load match records: %w", err)
	}

	byTeam := make(map[int][]models.MatchRecord, len(teams))
	for _, rec := range records {
		byTeam[rec.TeamID] = append(byTeam[rec.TeamID], rec)
	}

	standings := make([]models.TeamStanding, 0, len(teams))
	for _, team := range teams {
		standings = append(standings, models.TeamStanding{
			TeamID:         team.ID,
			TeamName:       team.Name,
			LogoURL:        team.LogoURL,
			StandingFigure: scoring.ComputeStanding(byTeam[team.ID]),
		})
	}
	return scoring.Rank(standings), nil
}

func (s *standingsService) GetMVP(ctx context.Context, tournamentID int) (*models.PlayerAggregate, error) {
	stats, err := s.loadStats(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return scoring.ComputeMVP(stats), nil
}

func (s *standingsService) GetTopDamage(ctx context.Context, tournamentID int) (*models.PlayerAggregate, error) {
	stats, err := s.loadStats(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return scoring.ComputeTopDamage(stats), nil
}

func (s *standingsService) ExportCSV(ctx context.Context, tournamentID int) (string, []byte, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return "", nil, ErrTournamentNotFound
		}
		return "", nil, err
	}

	ranked, err := s.GetStandings(ctx, tournamentID)
	if err != nil {
		return "", nil, err
	}

	fileName := scoring.CSVFileName(tournament.Name, time.Now())
	return fileName, scoring.StandingsCSV(ranked), nil
}

func (s *standingsService) loadStats(ctx context.Context, tournamentID int) ([]models.PlayerStat, error) {
	teams, err := s.teamService.ListTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	teamIDs := make([]int, len(teams))
	for i, team := range teams {
		teamIDs[i] = team.ID
	}
	stats, err := s.statRepo.ListByTeams(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load player stats: %w", err)
	}
	return stats, nil
}
