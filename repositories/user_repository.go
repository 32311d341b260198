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
	ErrUserNotFound         = errors.New("user not found")
	ErrUserUsernameConflict = errors.New("username is already taken")
	ErrUserGroupInvalid     = errors.New("user group conflict or invalid")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByGroup(ctx context.Context, groupID int) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateProfilePhotoKey(ctx context.Context, userID int, key *string) error
	SetGroup(ctx context.Context, exec SQLExecutor, userID int, groupID *int) error
	Delete(ctx context.Context, id int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `
	u.id, u.username, u.password_hash, u.full_name, u.role, u.phone,
	u.profile_photo_key, u.category_id, u.group_id, u.created_at,
	c.name, g.name`

const userJoins = `
	FROM users u
	LEFT JOIN categories c ON u.category_id = c.id
	LEFT JOIN groups g ON u.group_id = g.id`

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, full_name, role, phone, category_id, group_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.Role,
		user.Phone,
		user.CategoryID,
		user.GroupID,
	).Scan(&user.ID, &user.CreatedAt)

	return r.handleUserError(err)
}

func (r *postgresUserRepository) handleUserError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "users_username_key" {
				return ErrUserUsernameConflict
			}
		case "23503": // foreign_key_violation
			if pqErr.Constraint == "users_group_id_fkey" || pqErr.Constraint == "users_category_id_fkey" {
				return ErrUserGroupInvalid
			}
		}
	}
	return err
}

func (r *postgresUserRepository) scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.Phone,
		&u.ProfilePhotoKey, &u.CategoryID, &u.GroupID, &u.CreatedAt,
		&u.CategoryName, &u.GroupName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT` + userColumns + userJoins + ` WHERE u.id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT` + userColumns + userJoins + ` WHERE u.username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *postgresUserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT` + userColumns + userJoins + ` ORDER BY u.role, u.full_name`
	return r.queryUsers(ctx, query)
}

func (r *postgresUserRepository) ListByGroup(ctx context.Context, groupID int) ([]*models.User, error) {
	query := `SELECT` + userColumns + `
		FROM group_players gp
		JOIN users u ON u.id = gp.user_id
		LEFT JOIN categories c ON u.category_id = c.id
		LEFT JOIN groups g ON u.group_id = g.id
		WHERE gp.group_id = $1
		ORDER BY u.full_name`
	return r.queryUsers(ctx, query, groupID)
}

func (r *postgresUserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = $1, password_hash = $2, full_name = $3, role = $4,
		    phone = $5, category_id = $6, group_id = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.FullName, user.Role,
		user.Phone, user.CategoryID, user.GroupID, user.ID,
	)
	if err != nil {
		return r.handleUserError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateProfilePhotoKey(ctx context.Context, userID int, key *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET profile_photo_key = $1 WHERE id = $2`, key, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) SetGroup(ctx context.Context, exec SQLExecutor, userID int, groupID *int) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx,
		`UPDATE users SET group_id = $1 WHERE id = $2`, groupID, userID)
	if err != nil {
		return r.handleUserError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}
