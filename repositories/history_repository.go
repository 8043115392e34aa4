package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pubg-tournament-tracker/models"
)

var ErrHistoryNotFound = errors.New("tournament history entry not found")

// TournamentHistoryRepository is append-only: entries are created exactly
// once per archived tournament and never updated or deleted.
type TournamentHistoryRepository interface {
	Create(ctx context.Context, entry *models.TournamentHistory) error
	GetByID(ctx context.Context, id int) (*models.TournamentHistory, error)
	GetByOriginalTournamentID(ctx context.Context, tournamentID int) (*models.TournamentHistory, error)
	List(ctx context.Context) ([]models.TournamentHistory, error)
}

type postgresTournamentHistoryRepository struct {
	db *sql.DB
}

func NewPostgresTournamentHistoryRepository(db *sql.DB) TournamentHistoryRepository {
	return &postgresTournamentHistoryRepository{db: db}
}

const historyColumns = `id, tournament_name, tournament_description, total_matches, standings,
		mvp_player_name, mvp_total_kills, mvp_matches_count, original_tournament_id, archived_at`

func (r *postgresTournamentHistoryRepository) Create(ctx context.Context, entry *models.TournamentHistory) error {
	standingsJSON, err := json.Marshal(entry.Standings)
	if err != nil {
		return fmt.Errorf("failed to marshal standings snapshot: %w", err)
	}

	query := `
		INSERT INTO tournament_history
			(tournament_name, tournament_description, total_matches, standings,
			 mvp_player_name, mvp_total_kills, mvp_matches_count, original_tournament_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, archived_at`

	return r.db.QueryRowContext(ctx, query,
		entry.TournamentName, entry.TournamentDescription, entry.TotalMatches, standingsJSON,
		entry.MVPPlayerName, entry.MVPTotalKills, entry.MVPMatchesCount, entry.OriginalTournamentID,
	).Scan(&entry.ID, &entry.ArchivedAt)
}

func (r *postgresTournamentHistoryRepository) GetByID(ctx context.Context, id int) (*models.TournamentHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM tournament_history WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentHistoryRepository) GetByOriginalTournamentID(ctx context.Context, tournamentID int) (*models.TournamentHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM tournament_history WHERE original_tournament_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, tournamentID))
}

func (r *postgresTournamentHistoryRepository) List(ctx context.Context) ([]models.TournamentHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM tournament_history ORDER BY archived_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.TournamentHistory, 0)
	for rows.Next() {
		var entry models.TournamentHistory
		var standingsJSON []byte
		if scanErr := rows.Scan(
			&entry.ID, &entry.TournamentName, &entry.TournamentDescription, &entry.TotalMatches, &standingsJSON,
			&entry.MVPPlayerName, &entry.MVPTotalKills, &entry.MVPMatchesCount, &entry.OriginalTournamentID, &entry.ArchivedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		if err := json.Unmarshal(standingsJSON, &entry.Standings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal standings snapshot for history %d: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *postgresTournamentHistoryRepository) scanOne(row *sql.Row) (*models.TournamentHistory, error) {
	entry := &models.TournamentHistory{}
	var standingsJSON []byte
	err := row.Scan(
		&entry.ID, &entry.TournamentName, &entry.TournamentDescription, &entry.TotalMatches, &standingsJSON,
		&entry.MVPPlayerName, &entry.MVPTotalKills, &entry.MVPMatchesCount, &entry.OriginalTournamentID, &entry.ArchivedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(standingsJSON, &entry.Standings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal standings snapshot for history %d: %w", entry.ID, err)
	}
	return entry, nil
}
