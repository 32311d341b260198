package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tennis-league/models"
	"github.com/lib/pq"
)

var (
	ErrGroupNotFound        = errors.New("group not found")
	ErrGroupNameConflict    = errors.New("group with this name already exists in the category")
	ErrGroupPlayerConflict  = errors.New("player is already in the group")
	ErrGroupCategoryInvalid = errors.New("group category conflict or invalid")
)

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	ListIDs(ctx context.Context) ([]int, error)
	Delete(ctx context.Context, id int) error

	AddPlayer(ctx context.Context, exec SQLExecutor, groupID, userID int) error
	RemovePlayer(ctx context.Context, exec SQLExecutor, groupID, userID int) error
	CountPlayers(ctx context.Context, groupID int) (int, error)
	ListPlayerIDs(ctx context.Context, groupID int) ([]int, error)
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `INSERT INTO groups (category_id, name) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, group.CategoryID, group.Name).Scan(&group.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return ErrGroupNameConflict
			case "23503":
				return ErrGroupCategoryInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	query := `
		SELECT g.id, g.category_id, g.name, c.name, c.gender
		FROM groups g
		JOIN categories c ON g.category_id = c.id
		WHERE g.id = $1`

	var g models.Group
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.CategoryID, &g.Name, &g.CategoryName, &g.Gender)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *postgresGroupRepository) List(ctx context.Context) ([]*models.Group, error) {
	query := `
		SELECT g.id, g.category_id, g.name, c.name, c.gender,
		       COUNT(DISTINCT gp.user_id)
		FROM groups g
		JOIN categories c ON g.category_id = c.id
		LEFT JOIN group_players gp ON gp.group_id = g.id
		GROUP BY g.id, c.name, c.gender
		ORDER BY c.gender, c.name, g.name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.CategoryID, &g.Name, &g.CategoryName, &g.Gender, &g.PlayerCount); err != nil {
			return nil, err
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (r *postgresGroupRepository) ListIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query group ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresGroupRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}

func (r *postgresGroupRepository) AddPlayer(ctx context.Context, exec SQLExecutor, groupID, userID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx,
		`INSERT INTO group_players (group_id, user_id) VALUES ($1, $2)`, groupID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return ErrGroupPlayerConflict
			case "23503":
				return ErrGroupNotFound
			}
		}
		return err
	}
	return nil
}

func (r *postgresGroupRepository) RemovePlayer(ctx context.Context, exec SQLExecutor, groupID, userID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`DELETE FROM group_players WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupNotFound)
}

func (r *postgresGroupRepository) CountPlayers(ctx context.Context, groupID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM group_players WHERE group_id = $1`, groupID).Scan(&count)
	return count, err
}

func (r *postgresGroupRepository) ListPlayerIDs(ctx context.Context, groupID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM group_players WHERE group_id = $1 ORDER BY user_id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group players: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
