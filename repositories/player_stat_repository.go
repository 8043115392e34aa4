package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pubg-tournament-tracker/models"
)

var ErrPlayerStatInvalidRef = errors.New("player stat references a missing record or team")

type PlayerStatRepository interface {
	CreateBatch(ctx context.Context, stats []*models.PlayerStat) error
	// ListByTeams returns rows ordered by id, i.e. insertion order. MVP
	// tie-breaking is first-seen, so this ordering is load-bearing.
	ListByTeams(ctx context.Context, teamIDs []int) ([]models.PlayerStat, error)
	DeleteByTeams(ctx context.Context, exec SQLExecutor, teamIDs []int) (int64, error)
}

type postgresPlayerStatRepository struct {
	db *sql.DB
}

func NewPostgresPlayerStatRepository(db *sql.DB) PlayerStatRepository {
	return &postgresPlayerStatRepository{db: db}
}

func (r *postgresPlayerStatRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerStatRepository) CreateBatch(ctx context.Context, stats []*models.PlayerStat) error {
	if len(stats) == 0 {
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
		INSERT INTO player_stats (record_id, team_id, player_name, kills, damage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	for _, st := range stats {
		if err := tx.QueryRowContext(ctx, query,
			st.RecordID, st.TeamID, st.PlayerName, st.Kills, st.Damage,
		).Scan(&st.ID, &st.CreatedAt); err != nil {
			return r.handleStatError(err)
		}
	}
	return tx.Commit()
}

func (r *postgresPlayerStatRepository) ListByTeams(ctx context.Context, teamIDs []int) ([]models.PlayerStat, error) {
	if len(teamIDs) == 0 {
		return []models.PlayerStat{}, nil
	}

	query := `
		SELECT id, record_id, team_id, player_name, kills, damage, created_at
		FROM player_stats
		WHERE team_id = ANY($1)
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(teamIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.PlayerStat, 0)
	for rows.Next() {
		var st models.PlayerStat
		if scanErr := rows.Scan(
			&st.ID, &st.RecordID, &st.TeamID, &st.PlayerName, &st.Kills, &st.Damage, &st.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (r *postgresPlayerStatRepository) DeleteByTeams(ctx context.Context, exec SQLExecutor, teamIDs []int) (int64, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	executor := r.getExecutor(exec)
	query := `DELETE FROM player_stats WHERE team_id = ANY($1)`
	result, err := executor.ExecContext(ctx, query, pq.Array(teamIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to delete player stats: %w", err)
	}
	return result.RowsAffected()
}

func (r *postgresPlayerStatRepository) handleStatError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" {
			return ErrPlayerStatInvalidRef
		}
	}
	return err
}
