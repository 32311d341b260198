package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/tennis-league/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound           = errors.New("match not found")
	ErrMatchParticipantInvalid = errors.New("match participant conflict or invalid")
	ErrMatchGroupInvalid       = errors.New("match group conflict or invalid")
)

// MatchFilter narrows match listings; nil fields mean no filtering.
type MatchFilter struct {
	Week       *int
	CategoryID *int
	GroupID    *int
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter MatchFilter) ([]*models.Match, error)
	ListByGroup(ctx context.Context, groupID int) ([]*models.Match, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Match, error)
	UpdateSchedule(ctx context.Context, id int, date *time.Time, matchTime, venue *string, scheduledBy *int) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO matches
			(group_id, player1_id, player2_id, player1_partner_id, player2_partner_id,
			 is_doubles, week_number, match_date, match_time, venue, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := exec.QueryRowContext(ctx, query,
		match.GroupID,
		match.Player1ID,
		match.Player2ID,
		match.Player1PartnerID,
		match.Player2PartnerID,
		match.IsDoubles,
		match.WeekNumber,
		match.MatchDate,
		match.MatchTime,
		match.Venue,
		models.MatchStatusScheduled,
	).Scan(&match.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			if strings.Contains(pqErr.Constraint, "group") {
				return ErrMatchGroupInvalid
			}
			return ErrMatchParticipantInvalid
		}
		return err
	}
	match.Status = models.MatchStatusScheduled
	return nil
}

const matchColumns = `
	m.id, m.group_id, m.player1_id, m.player2_id, m.player1_partner_id, m.player2_partner_id,
	m.is_doubles, m.week_number, m.match_date, m.match_time, m.venue, m.scheduled_by, m.status,
	p1.full_name, p2.full_name, p1p.full_name, p2p.full_name,
	g.name, c.name, c.gender,
	ms.id, ms.player1_set1, ms.player2_set1, ms.player1_set2, ms.player2_set2,
	ms.super_tiebreak_p1, ms.super_tiebreak_p2, ms.winner_id, ms.walkover_player_id,
	ms.submitted_by, ms.submitted_at, ms.approval_status, ms.approved_by`

const matchJoins = `
	FROM matches m
	JOIN users p1 ON m.player1_id = p1.id
	JOIN users p2 ON m.player2_id = p2.id
	LEFT JOIN users p1p ON m.player1_partner_id = p1p.id
	LEFT JOIN users p2p ON m.player2_partner_id = p2p.id
	JOIN groups g ON m.group_id = g.id
	JOIN categories c ON g.category_id = c.id
	LEFT JOIN match_scores ms ON ms.match_id = m.id`

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	var scoreID *int
	var s models.MatchScore
	var winnerID, submittedBy *int
	var submittedAt *time.Time
	var approval *models.ApprovalStatus

	err := row.Scan(
		&m.ID, &m.GroupID, &m.Player1ID, &m.Player2ID, &m.Player1PartnerID, &m.Player2PartnerID,
		&m.IsDoubles, &m.WeekNumber, &m.MatchDate, &m.MatchTime, &m.Venue, &m.ScheduledBy, &m.Status,
		&m.Player1Name, &m.Player2Name, &m.Player1PartnerName, &m.Player2PartnerName,
		&m.GroupName, &m.CategoryName, &m.Gender,
		&scoreID, &s.Player1Set1, &s.Player2Set1, &s.Player1Set2, &s.Player2Set2,
		&s.SuperTiebreakP1, &s.SuperTiebreakP2, &winnerID, &s.WalkoverPlayer,
		&submittedBy, &submittedAt, &approval, &s.ApprovedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if scoreID != nil {
		s.ID = *scoreID
		s.MatchID = m.ID
		if winnerID != nil {
			s.WinnerID = *winnerID
		}
		if submittedBy != nil {
			s.SubmittedBy = *submittedBy
		}
		if submittedAt != nil {
			s.SubmittedAt = *submittedAt
		}
		if approval != nil {
			s.ApprovalStatus = *approval
		}
		m.Score = &s
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + ` WHERE m.id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT` + matchColumns + matchJoins)

	var args []interface{}
	var conditions []string

	if filter.Week != nil {
		args = append(args, *filter.Week)
		conditions = append(conditions, "m.week_number = $"+strconv.Itoa(len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, "g.category_id = $"+strconv.Itoa(len(args)))
	}
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		conditions = append(conditions, "m.group_id = $"+strconv.Itoa(len(args)))
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY m.match_date NULLS LAST, m.match_time NULLS LAST, g.name, m.id")

	return r.queryMatches(ctx, queryBuilder.String(), args...)
}

func (r *postgresMatchRepository) ListByGroup(ctx context.Context, groupID int) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + ` WHERE m.group_id = $1 ORDER BY m.week_number, m.id`
	return r.queryMatches(ctx, query, groupID)
}

func (r *postgresMatchRepository) ListByUser(ctx context.Context, userID int) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + `
		WHERE m.player1_id = $1 OR m.player2_id = $1
		   OR m.player1_partner_id = $1 OR m.player2_partner_id = $1
		ORDER BY m.week_number, m.match_date NULLS LAST, m.match_time NULLS LAST`
	return r.queryMatches(ctx, query, userID)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := r.scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateSchedule(ctx context.Context, id int, date *time.Time, matchTime, venue *string, scheduledBy *int) error {
	query := `
		UPDATE matches
		SET match_date = $1, match_time = $2, venue = $3,
		    scheduled_by = COALESCE($4, scheduled_by)
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, date, matchTime, venue, scheduledBy, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx, `UPDATE matches SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
