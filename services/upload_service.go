package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pubg-tournament-tracker/analysis"
	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/repositories"
	"pubg-tournament-tracker/scoring"
	"pubg-tournament-tracker/storage"
)

// maxBatchSize caps one submission; larger batches are rejected outright.
const maxBatchSize = 4

// ScreenshotUpload is one file of a submission batch.
type ScreenshotUpload struct {
	FileName    string
	ContentType string
	Data        io.Reader
}

// UploadItemResult reports the fate of a single screenshot within a batch.
type UploadItemResult struct {
	FileName string              `json:"file_name"`
	Record   *models.MatchRecord `json:"record,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// BatchResult is the per-item breakdown returned for every admitted batch.
type BatchResult struct {
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Items     []UploadItemResult `json:"items"`
}

type UploadService interface {
	// SubmitScreenshots admits and processes a batch of match screenshots for
	// a team. Admission rejects the whole batch before any side effect;
	// after admission each item is processed independently and sequentially.
	SubmitScreenshots(ctx context.Context, teamID, day, startMatchNumber int, uploads []ScreenshotUpload) (*BatchResult, error)
}

type uploadService struct {
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	recordRepo     repositories.MatchRecordRepository
	statRepo       repositories.PlayerStatRepository
	uploader       storage.FileUploader
	analyzer       analysis.ScreenshotAnalyzer
	logger         *slog.Logger
}

func NewUploadService(
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	recordRepo repositories.MatchRecordRepository,
	statRepo repositories.PlayerStatRepository,
	uploader storage.FileUploader,
	analyzer analysis.ScreenshotAnalyzer,
	logger *slog.Logger,
) UploadService {
	return &uploadService{
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		recordRepo:     recordRepo,
		statRepo:       statRepo,
		uploader:       uploader,
		analyzer:       analyzer,
		logger:         logger,
	}
}

func (s *uploadService) SubmitScreenshots(ctx context.Context, teamID, day, startMatchNumber int, uploads []ScreenshotUpload) (*BatchResult, error) {
	if len(uploads) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(uploads) > maxBatchSize {
		return nil, ErrBatchTooLarge
	}
	if day < 1 {
		return nil, ErrInvalidDay
	}
	if startMatchNumber < 1 {
		return nil, ErrInvalidMatchNumber
	}
	// Every file must be an image before any of them is processed.
	for _, up := range uploads {
		if !strings.HasPrefix(up.ContentType, "image/") {
			return nil, ErrNotAnImage
		}
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, team.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament %d: %w", team.TournamentID, err)
	}

	// Hard cap across the whole tournament. Note this is a read-then-write
	// check: two racing batches can both pass it, so the cap only holds
	// under serialized access.
	existing, err := s.recordRepo.CountPerMatchByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if existing >= tournament.TotalMatches {
		return nil, &QuotaExceededError{Limit: tournament.TotalMatches}
	}
	if existing+len(uploads) > tournament.TotalMatches {
		return nil, &QuotaExceededError{
			Limit:     tournament.TotalMatches,
			Remaining: tournament.TotalMatches - existing,
		}
	}

	// Items are processed strictly sequentially: one analyzer call in flight
	// per submission, and a clean per-item tally on partial failure.
	result := &BatchResult{Items: make([]UploadItemResult, 0, len(uploads))}
	for i, up := range uploads {
		item := s.processScreenshot(ctx, teamID, day, startMatchNumber+i, up)
		if item.Error != "" {
			result.Failed++
		} else {
			result.Succeeded++
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

func (s *uploadService) processScreenshot(ctx context.Context, teamID, day, matchNumber int, up ScreenshotUpload) UploadItemResult {
	item := UploadItemResult{FileName: up.FileName}
	fail := func(format string, args ...interface{}) UploadItemResult {
		item.Error = fmt.Sprintf(format, args...)
		return item
	}

	key := fmt.Sprintf("screenshots/%d/%s%s", teamID, uuid.NewString(), fileExt(up.FileName))
	uploaded, err := s.uploader.Upload(ctx, key, up.ContentType, up.Data)
	if err != nil {
		s.logger.Error("screenshot upload failed",
			slog.Int("team_id", teamID), slog.String("file", up.FileName), slog.Any("error", err))
		return fail("failed to store screenshot")
	}

	extracted, err := s.analyzer.AnalyzeScreenshot(ctx, uploaded.Location)
	if err != nil {
		s.logger.Error("screenshot analysis failed",
			slog.Int("team_id", teamID), slog.String("file", up.FileName), slog.Any("error", err))
		return fail("analysis failed: %v", err)
	}
	if extracted.Placement == nil || extracted.Kills == nil {
		return fail("could not detect placement or kills; make sure the screenshot clearly shows the match results")
	}
	if *extracted.Kills < 0 {
		return fail("analysis returned a negative kill count")
	}

	now := time.Now().UTC()
	record := &models.MatchRecord{
		TeamID:        teamID,
		MatchNumber:   matchNumber,
		Day:           day,
		Placement:     *extracted.Placement,
		Kills:         *extracted.Kills,
		Points:        scoring.CalculatePoints(*extracted.Placement, *extracted.Kills),
		Kind:          models.KindAutomatic,
		ScreenshotURL: uploaded.Location,
		AnalyzedAt:    &now,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		s.logger.Error("failed to persist match record",
			slog.Int("team_id", teamID), slog.String("file", up.FileName), slog.Any("error", err))
		return fail("failed to save match record")
	}

	// Player stats are best-effort enrichment; the record already counts.
	if len(extracted.Players) > 0 {
		stats := make([]*models.PlayerStat, 0, len(extracted.Players))
		for _, p := range extracted.Players {
			stats = append(stats, &models.PlayerStat{
				RecordID:   &record.ID,
				TeamID:     teamID,
				PlayerName: p.Name,
				Kills:      p.Kills,
				Damage:     p.Damage,
			})
		}
		if err := s.statRepo.CreateBatch(ctx, stats); err != nil {
			s.logger.Warn("failed to persist player stats",
				slog.Int("record_id", record.ID), slog.Any("error", err))
		}
	}

	item.Record = record
	return item
}

func fileExt(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return name[idx:]
	}
	return ""
}
