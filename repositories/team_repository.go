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
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamNameConflict      = errors.New("team name already exists in this tournament")
	ErrTeamInvalidTournament = errors.New("invalid tournament reference")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error)
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
	Delete(ctx context.Context, id int) error
	// DeleteByTournament removes every team of the tournament and returns the
	// number of rows deleted.
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int64, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, name, logo_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, team.TournamentID, team.Name, team.LogoKey).
		Scan(&team.ID, &team.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, tournament_id, name, logo_key, created_at
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.TournamentID, &team.Name, &team.LogoKey, &team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	query := `
		SELECT id, tournament_id, name, logo_key, created_at
		FROM teams
		WHERE tournament_id = $1
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if scanErr := rows.Scan(&team.ID, &team.TournamentID, &team.Name, &team.LogoKey, &team.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, teamID)
	if err != nil {
		return fmt.Errorf("failed to update team logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int64, error) {
	executor := r.getExecutor(exec)
	query := `DELETE FROM teams WHERE tournament_id = $1`
	result, err := executor.ExecContext(ctx, query, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete teams for tournament %d: %w", tournamentID, err)
	}
	return result.RowsAffected()
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "teams_tournament_id_name_key" {
				return ErrTeamNameConflict
			}
		case "23503":
			if pqErr.Constraint == "teams_tournament_id_fkey" {
				return ErrTeamInvalidTournament
			}
		}
	}
	return err
}
