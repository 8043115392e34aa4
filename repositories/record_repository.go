package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pubg-tournament-tracker/models"
)

var (
	ErrRecordNotFound    = errors.New("match record not found")
	ErrRecordInvalidTeam = errors.New("invalid team reference")
)

// MatchRecordRepository is the record store: raw result rows per team, both
// per-match and daily-total. Listing is ordered by (created_at, id) so that
// repeated fetches see the same insertion order; positional ranking tie-breaks
// depend on that stability.
type MatchRecordRepository interface {
	Create(ctx context.Context, record *models.MatchRecord) error
	CreateBatch(ctx context.Context, records []*models.MatchRecord) error
	ListByTeam(ctx context.Context, teamID int) ([]models.MatchRecord, error)
	ListByTeams(ctx context.Context, teamIDs []int) ([]models.MatchRecord, error)
	// CountPerMatchByTeam counts only per-match rows (match_number >= 1);
	// daily totals do not consume upload quota.
	CountPerMatchByTeam(ctx context.Context, teamID int) (int, error)
	DeleteByTeams(ctx context.Context, exec SQLExecutor, teamIDs []int) (int64, error)
}

type postgresMatchRecordRepository struct {
	db *sql.DB
}

func NewPostgresMatchRecordRepository(db *sql.DB) MatchRecordRepository {
	return &postgresMatchRecordRepository{db: db}
}

func (r *postgresMatchRecordRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchRecordColumns = `id, team_id, match_number, day, placement, kills, points, kind, screenshot_url, analyzed_at, created_at`

func (r *postgresMatchRecordRepository) Create(ctx context.Context, record *models.MatchRecord) error {
	query := `
		INSERT INTO match_records
			(team_id, match_number, day, placement, kills, points, kind, screenshot_url, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		record.TeamID, record.MatchNumber, record.Day, record.Placement,
		record.Kills, record.Points, record.Kind, record.ScreenshotURL, record.AnalyzedAt,
	).Scan(&record.ID, &record.CreatedAt)
	return r.handleRecordError(err)
}

func (r *postgresMatchRecordRepository) CreateBatch(ctx context.Context, records []*models.MatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("CreateBatch failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO match_records
			(team_id, match_number, day, placement, kills, points, kind, screenshot_url, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	for _, record := range records {
		if err := tx.QueryRowContext(ctx, query,
			record.TeamID, record.MatchNumber, record.Day, record.Placement,
			record.Kills, record.Points, record.Kind, record.ScreenshotURL, record.AnalyzedAt,
		).Scan(&record.ID, &record.CreatedAt); err != nil {
			return r.handleRecordError(err)
		}
	}
	return tx.Commit()
}

func (r *postgresMatchRecordRepository) ListByTeam(ctx context.Context, teamID int) ([]models.MatchRecord, error) {
	query := `
		SELECT ` + matchRecordColumns + `
		FROM match_records
		WHERE team_id = $1
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatchRecords(rows)
}

func (r *postgresMatchRecordRepository) ListByTeams(ctx context.Context, teamIDs []int) ([]models.MatchRecord, error) {
	if len(teamIDs) == 0 {
		return []models.MatchRecord{}, nil
	}

	query := `
		SELECT ` + matchRecordColumns + `
		FROM match_records
		WHERE team_id = ANY($1)
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(teamIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatchRecords(rows)
}

func (r *postgresMatchRecordRepository) CountPerMatchByTeam(ctx context.Context, teamID int) (int, error) {
	query := `SELECT COUNT(*) FROM match_records WHERE team_id = $1 AND match_number >= 1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, teamID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count match records for team %d: %w", teamID, err)
	}
	return count, nil
}

func (r *postgresMatchRecordRepository) DeleteByTeams(ctx context.Context, exec SQLExecutor, teamIDs []int) (int64, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	executor := r.getExecutor(exec)
	query := `DELETE FROM match_records WHERE team_id = ANY($1)`
	result, err := executor.ExecContext(ctx, query, pq.Array(teamIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to delete match records: %w", err)
	}
	return result.RowsAffected()
}

func scanMatchRecords(rows *sql.Rows) ([]models.MatchRecord, error) {
	records := make([]models.MatchRecord, 0)
	for rows.Next() {
		var rec models.MatchRecord
		if err := rows.Scan(
			&rec.ID, &rec.TeamID, &rec.MatchNumber, &rec.Day, &rec.Placement,
			&rec.Kills, &rec.Points, &rec.Kind, &rec.ScreenshotURL, &rec.AnalyzedAt, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *postgresMatchRecordRepository) handleRecordError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "match_records_team_id_fkey" {
			return ErrRecordInvalidTeam
		}
	}
	return err
}
