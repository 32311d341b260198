package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tennis-league/models"
)

type StandingRepository interface {
	ListByGroup(ctx context.Context, groupID int) ([]*models.StandingRow, error)
	ReplaceGroup(ctx context.Context, exec SQLExecutor, groupID int, rows []*models.StandingRow) error
	UpdateRows(ctx context.Context, exec SQLExecutor, rows []*models.StandingRow) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) ListByGroup(ctx context.Context, groupID int) ([]*models.StandingRow, error) {
	query := `
		SELECT s.id, s.group_id, s.user_id, s.points, s.matches_won, s.matches_lost,
		       s.walkovers, s.games_won, s.games_total, u.full_name
		FROM standings s
		JOIN users u ON s.user_id = u.id
		WHERE s.group_id = $1
		ORDER BY s.user_id`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	var standings []*models.StandingRow
	for rows.Next() {
		var s models.StandingRow
		if err := rows.Scan(
			&s.ID, &s.GroupID, &s.UserID, &s.Points, &s.MatchesWon, &s.MatchesLost,
			&s.Walkovers, &s.GamesWon, &s.GamesTotal, &s.PlayerName,
		); err != nil {
			return nil, err
		}
		standings = append(standings, &s)
	}
	return standings, rows.Err()
}

// ReplaceGroup rewrites the whole group projection inside the caller's
// transaction. Delete plus insert keeps the projection honest even when the
// roster changed since the last recalculation.
func (r *postgresStandingRepository) ReplaceGroup(ctx context.Context, exec SQLExecutor, groupID int, rows []*models.StandingRow) error {
	if exec == nil {
		exec = r.db
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM standings WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("failed to clear standings: %w", err)
	}

	query := `
		INSERT INTO standings
			(group_id, user_id, points, matches_won, matches_lost, walkovers, games_won, games_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	for _, s := range rows {
		err := exec.QueryRowContext(ctx, query,
			groupID, s.UserID, s.Points, s.MatchesWon, s.MatchesLost,
			s.Walkovers, s.GamesWon, s.GamesTotal,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("failed to insert standing row: %w", err)
		}
	}
	return nil
}

// UpdateRows writes absolute values for the given (group, user) rows,
// inserting rows that do not exist yet.
func (r *postgresStandingRepository) UpdateRows(ctx context.Context, exec SQLExecutor, rows []*models.StandingRow) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO standings
			(group_id, user_id, points, matches_won, matches_lost, walkovers, games_won, games_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (group_id, user_id) DO UPDATE
		SET points = EXCLUDED.points,
		    matches_won = EXCLUDED.matches_won,
		    matches_lost = EXCLUDED.matches_lost,
		    walkovers = EXCLUDED.walkovers,
		    games_won = EXCLUDED.games_won,
		    games_total = EXCLUDED.games_total`

	for _, s := range rows {
		_, err := exec.ExecContext(ctx, query,
			s.GroupID, s.UserID, s.Points, s.MatchesWon, s.MatchesLost,
			s.Walkovers, s.GamesWon, s.GamesTotal,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert standing row: %w", err)
		}
	}
	return nil
}
