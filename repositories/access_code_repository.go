package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pubg-tournament-tracker/models"
)

var ErrAccessCodeNotFound = errors.New("access code not found")

type AccessCodeRepository interface {
	Create(ctx context.Context, code *models.AccessCode) error
	// List returns every stored code. Redemption compares the presented code
	// against each bcrypt hash, so the table is expected to stay small.
	List(ctx context.Context) ([]models.AccessCode, error)
	DeleteByTeams(ctx context.Context, exec SQLExecutor, teamIDs []int) (int64, error)
}

type postgresAccessCodeRepository struct {
	db *sql.DB
}

func NewPostgresAccessCodeRepository(db *sql.DB) AccessCodeRepository {
	return &postgresAccessCodeRepository{db: db}
}

func (r *postgresAccessCodeRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresAccessCodeRepository) Create(ctx context.Context, code *models.AccessCode) error {
	query := `
		INSERT INTO access_codes (code_hash, role, team_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, code.CodeHash, code.Role, code.TeamID).
		Scan(&code.ID, &code.CreatedAt)
}

func (r *postgresAccessCodeRepository) List(ctx context.Context) ([]models.AccessCode, error) {
	query := `
		SELECT id, code_hash, role, team_id, created_at
		FROM access_codes
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := make([]models.AccessCode, 0)
	for rows.Next() {
		var code models.AccessCode
		if scanErr := rows.Scan(&code.ID, &code.CodeHash, &code.Role, &code.TeamID, &code.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *postgresAccessCodeRepository) DeleteByTeams(ctx context.Context, exec SQLExecutor, teamIDs []int) (int64, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	executor := r.getExecutor(exec)
	query := `DELETE FROM access_codes WHERE team_id = ANY($1)`
	result, err := executor.ExecContext(ctx, query, pq.Array(teamIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to delete access codes: %w", err)
	}
	return result.RowsAffected()
}
