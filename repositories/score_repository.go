package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tennis-league/models"
	"github.com/lib/pq"
)

var (
	ErrScoreNotFound = errors.New("match score not found")
	ErrScoreConflict = errors.New("score already exists for this match")
)

type ScoreRepository interface {
	Create(ctx context.Context, exec SQLExecutor, score *models.MatchScore) error
	GetByMatchID(ctx context.Context, matchID int) (*models.MatchScore, error)
	Update(ctx context.Context, exec SQLExecutor, score *models.MatchScore) error
	UpdateApproval(ctx context.Context, exec SQLExecutor, matchID int, status models.ApprovalStatus, approvedBy *int) error
	DeleteByMatchID(ctx context.Context, exec SQLExecutor, matchID int) error
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

const scoreColumns = `
	id, match_id, player1_set1, player2_set1, player1_set2, player2_set2,
	super_tiebreak_p1, super_tiebreak_p2, winner_id, walkover_player_id,
	submitted_by, submitted_at, approval_status, approved_by`

func (r *postgresScoreRepository) Create(ctx context.Context, exec SQLExecutor, score *models.MatchScore) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO match_scores
			(match_id, player1_set1, player2_set1, player1_set2, player2_set2,
			 super_tiebreak_p1, super_tiebreak_p2, winner_id, walkover_player_id,
			 submitted_by, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, submitted_at`

	err := exec.QueryRowContext(ctx, query,
		score.MatchID,
		score.Player1Set1, score.Player2Set1, score.Player1Set2, score.Player2Set2,
		score.SuperTiebreakP1, score.SuperTiebreakP2,
		score.WinnerID, score.WalkoverPlayer,
		score.SubmittedBy, score.ApprovalStatus,
	).Scan(&score.ID, &score.SubmittedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// match_scores.match_id уникален, повторная подача не создаёт вторую строку
			return ErrScoreConflict
		}
		return err
	}
	return nil
}

func (r *postgresScoreRepository) GetByMatchID(ctx context.Context, matchID int) (*models.MatchScore, error) {
	query := `SELECT` + scoreColumns + ` FROM match_scores WHERE match_id = $1`

	var s models.MatchScore
	err := r.db.QueryRowContext(ctx, query, matchID).Scan(
		&s.ID, &s.MatchID,
		&s.Player1Set1, &s.Player2Set1, &s.Player1Set2, &s.Player2Set2,
		&s.SuperTiebreakP1, &s.SuperTiebreakP2,
		&s.WinnerID, &s.WalkoverPlayer,
		&s.SubmittedBy, &s.SubmittedAt, &s.ApprovalStatus, &s.ApprovedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresScoreRepository) Update(ctx context.Context, exec SQLExecutor, score *models.MatchScore) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		UPDATE match_scores
		SET player1_set1 = $1, player2_set1 = $2, player1_set2 = $3, player2_set2 = $4,
		    super_tiebreak_p1 = $5, super_tiebreak_p2 = $6,
		    winner_id = $7, walkover_player_id = $8,
		    submitted_by = $9, submitted_at = NOW(),
		    approval_status = $10, approved_by = $11
		WHERE match_id = $12`

	result, err := exec.ExecContext(ctx, query,
		score.Player1Set1, score.Player2Set1, score.Player1Set2, score.Player2Set2,
		score.SuperTiebreakP1, score.SuperTiebreakP2,
		score.WinnerID, score.WalkoverPlayer,
		score.SubmittedBy, score.ApprovalStatus, score.ApprovedBy,
		score.MatchID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScoreNotFound)
}

func (r *postgresScoreRepository) UpdateApproval(ctx context.Context, exec SQLExecutor, matchID int, status models.ApprovalStatus, approvedBy *int) error {
	if exec == nil {
		exec = r.db
	}
	query := `UPDATE match_scores SET approval_status = $1, approved_by = $2 WHERE match_id = $3`

	result, err := exec.ExecContext(ctx, query, status, approvedBy, matchID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScoreNotFound)
}

func (r *postgresScoreRepository) DeleteByMatchID(ctx context.Context, exec SQLExecutor, matchID int) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx, `DELETE FROM match_scores WHERE match_id = $1`, matchID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScoreNotFound)
}
