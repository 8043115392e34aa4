package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/repositories"
	"pubg-tournament-tracker/scoring"
	"pubg-tournament-tracker/storage"
)

// ArchiveResult reports a finished archival run. Warnings carry the advisory
// step failures (history insert, storage/object deletions) that did not stop
// the workflow.
type ArchiveResult struct {
	History  *models.TournamentHistory `json:"history,omitempty"`
	Warnings []string                  `json:"warnings,omitempty"`
}

// ArchiveService runs the one-way closure workflow: snapshot the final
// standings into tournament_history, then purge every live row and storage
// object of the tournament.
//
// The step sequence is linear with no retries. History insert and storage
// deletion are advisory: their failures are logged, surfaced as warnings and
// the purge continues, because orphaned objects beat a tournament that can
// never be closed. Team and tournament deletion are fatal and run inside one
// transaction; if that fails after earlier purge steps already ran, the
// tournament is left partially archived and needs manual follow-up.
//
// Not re-entrant-safe: concurrent closure of the same tournament interleaves
// steps. Callers serialize per tournament.
type ArchiveService interface {
	ArchiveTournament(ctx context.Context, tournamentID int) (*ArchiveResult, error)
}

type archiveService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	recordRepo     repositories.MatchRecordRepository
	statRepo       repositories.PlayerStatRepository
	historyRepo    repositories.TournamentHistoryRepository
	accessCodeRepo repositories.AccessCodeRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewArchiveService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	recordRepo repositories.MatchRecordRepository,
	statRepo repositories.PlayerStatRepository,
	historyRepo repositories.TournamentHistoryRepository,
	accessCodeRepo repositories.AccessCodeRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) ArchiveService {
	return &archiveService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		recordRepo:     recordRepo,
		statRepo:       statRepo,
		historyRepo:    historyRepo,
		accessCodeRepo: accessCodeRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *archiveService) ArchiveTournament(ctx context.Context, tournamentID int) (*ArchiveResult, error) {
	// LOAD
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("archival load failed: %w", err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("archival load failed: %w", err)
	}

	teamIDs := make([]int, len(teams))
	for i, team := range teams {
		teamIDs[i] = team.ID
	}

	var (
		records []models.MatchRecord
		stats   []models.PlayerStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		records, loadErr = s.recordRepo.ListByTeams(gctx, teamIDs)
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		stats, loadErr = s.statRepo.ListByTeams(gctx, teamIDs)
		return loadErr
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("archival load failed: %w", err)
	}

	// SNAPSHOT
	entry := s.snapshot(tournament, teams, records, stats)

	result := &ArchiveResult{}
	warn := func(step string, err error) {
		msg := fmt.Sprintf("%s: %v", step, err)
		result.Warnings = append(result.Warnings, msg)
		s.logger.Warn("archival advisory step failed",
			slog.Int("tournament_id", tournamentID), slog.String("step", step), slog.Any("error", err))
	}

	// PERSIST_HISTORY: advisory. Losing the snapshot is bad, but blocking
	// closure forever is worse.
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		warn("persist history", err)
	} else {
		result.History = entry
	}

	// PURGE_STORAGE: advisory, per object. Sentinel URLs and foreign URLs
	// resolve to no key and are skipped.
	for _, rec := range records {
		key := s.uploader.KeyFromPublicURL(rec.ScreenshotURL)
		if key == "" {
			continue
		}
		if err := s.uploader.Delete(ctx, key); err != nil {
			warn(fmt.Sprintf("delete screenshot %s", key), err)
		}
	}
	for _, team := range teams {
		if team.LogoKey == nil {
			continue
		}
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			warn(fmt.Sprintf("delete logo %s", *team.LogoKey), err)
		}
	}

	// PURGE_PLAYER_STATS / PURGE_MATCH_RECORDS / PURGE_AUX: advisory row
	// purges; the fatal team deletion below cascades over leftovers anyway.
	if _, err := s.statRepo.DeleteByTeams(ctx, nil, teamIDs); err != nil {
		warn("purge player stats", err)
	}
	if _, err := s.recordRepo.DeleteByTeams(ctx, nil, teamIDs); err != nil {
		warn("purge match records", err)
	}
	if _, err := s.accessCodeRepo.DeleteByTeams(ctx, nil, teamIDs); err != nil {
		warn("purge access codes", err)
	}

	// PURGE_TEAMS + PURGE_TOURNAMENT: fatal, atomic pair.
	if err := s.purgeTeamsAndTournament(ctx, tournamentID); err != nil {
		s.logger.Error("archival failed at fatal purge step",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return result, fmt.Errorf("%w: %v", ErrArchiveIncomplete, err)
	}

	s.logger.Info("tournament archived",
		slog.Int("tournament_id", tournamentID),
		slog.String("name", tournament.Name),
		slog.Int("teams", len(teams)),
		slog.Int("records", len(records)),
		slog.Int("warnings", len(result.Warnings)))
	return result, nil
}

func (s *archiveService) purgeTeamsAndTournament(ctx context.Context, tournamentID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin purge transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := s.teamRepo.DeleteByTournament(ctx, tx, tournamentID); err != nil {
		return fmt.Errorf("failed to purge teams: %w", err)
	}
	if err := s.tournamentRepo.Delete(ctx, tx, tournamentID); err != nil {
		return fmt.Errorf("failed to purge tournament: %w", err)
	}
	return tx.Commit()
}

// snapshot runs the scoring engine over the loaded data and freezes the
// result. Re-ranking the stored standings must reproduce this exact order.
func (s *archiveService) snapshot(
	tournament *models.Tournament,
	teams []models.Team,
	records []models.MatchRecord,
	stats []models.PlayerStat,
) *models.TournamentHistory {
	byTeam := make(map[int][]models.MatchRecord, len(teams))
	for _, rec := range records {
		byTeam[rec.TeamID] = append(byTeam[rec.TeamID], rec)
	}

	standings := make([]models.TeamStanding, 0, len(teams))
	for _, team := range teams {
		st := models.TeamStanding{
			TeamID:         team.ID,
			TeamName:       team.Name,
			StandingFigure: scoring.ComputeStanding(byTeam[team.ID]),
		}
		if team.LogoKey != nil {
			url := s.uploader.GetPublicURL(*team.LogoKey)
			st.LogoURL = &url
		}
		standings = append(standings, st)
	}

	entry := &models.TournamentHistory{
		TournamentName:        tournament.Name,
		TournamentDescription: tournament.Description,
		TotalMatches:          tournament.TotalMatches,
		Standings:             scoring.Rank(standings),
		OriginalTournamentID:  tournament.ID,
	}
	if mvp := scoring.ComputeMVP(stats); mvp != nil {
		entry.MVPPlayerName = &mvp.PlayerName
		entry.MVPTotalKills = mvp.TotalKills
		entry.MVPMatchesCount = mvp.MatchesCount
	}
	return entry
}
