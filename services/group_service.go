package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/storage"
)

type GroupService interface {
	Create(ctx context.Context, input CreateGroupInput) (*models.Group, error)
	GetByID(ctx context.Context, id int) (*GroupDetail, error)
	List(ctx context.Context) ([]*models.Group, error)
	AddPlayer(ctx context.Context, groupID, userID int) error
	RemovePlayer(ctx context.Context, groupID, userID int) error
	Delete(ctx context.Context, id int) error
}

type CreateGroupInput struct {
	CategoryID int    `json:"category_id"`
	Name       string `json:"name"`
}

// GroupDetail is a group with its roster attached.
type GroupDetail struct {
	models.Group
	Players []*models.User `json:"players"`
}

type groupService struct {
	db           *sql.DB
	groupRepo    repositories.GroupRepository
	userRepo     repositories.UserRepository
	categoryRepo repositories.CategoryRepository
	uploader     storage.FileUploader
}

func NewGroupService(
	db *sql.DB,
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	categoryRepo repositories.CategoryRepository,
	uploader storage.FileUploader,
) GroupService {
	return &groupService{
		db:           db,
		groupRepo:    groupRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		uploader:     uploader,
	}
}

func (s *groupService) Create(ctx context.Context, input CreateGroupInput) (*models.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrValidationFailed)
	}
	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	group := &models.Group{CategoryID: input.CategoryID, Name: name}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, repositories.ErrGroupNameConflict) {
			return nil, ErrGroupNameConflict
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (s *groupService) GetByID(ctx context.Context, id int) (*GroupDetail, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	players, err := s.userRepo.ListByGroup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load group roster: %w", err)
	}
	for _, p := range players {
		populateUserDetailsFunc(p, s.uploader)
	}
	return &GroupDetail{Group: *group, Players: players}, nil
}

func (s *groupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.List(ctx)
}

// AddPlayer ставит игрока в группу. Членство и users.group_id меняются в одной
// транзакции, иначе зеркало разъезжается с таблицей составов.
func (s *groupService) AddPlayer(ctx context.Context, groupID, userID int) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return mapUserRepoError(err)
	}
	if user.GroupID != nil {
		return ErrPlayerAlreadyInGroup
	}

	count, err := s.groupRepo.CountPlayers(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to count group players: %w", err)
	}
	if count >= models.GroupMaxPlayers {
		return ErrGroupFull
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.groupRepo.AddPlayer(ctx, tx, groupID, userID); err != nil {
		if errors.Is(err, repositories.ErrGroupPlayerConflict) {
			return ErrPlayerAlreadyInGroup
		}
		return fmt.Errorf("failed to add player to group: %w", err)
	}
	if err := s.userRepo.SetGroup(ctx, tx, userID, &group.ID); err != nil {
		return mapUserRepoError(err)
	}

	return tx.Commit()
}

func (s *groupService) RemovePlayer(ctx context.Context, groupID, userID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.groupRepo.RemovePlayer(ctx, tx, groupID, userID); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return ErrPlayerNotInGroup
		}
		return fmt.Errorf("failed to remove player from group: %w", err)
	}
	if err := s.userRepo.SetGroup(ctx, tx, userID, nil); err != nil {
		return mapUserRepoError(err)
	}

	return tx.Commit()
}

// Delete сначала освобождает игроков, затем удаляет саму группу. Удаление
// каскадно сносит матчи, счета и строки таблицы.
func (s *groupService) Delete(ctx context.Context, id int) error {
	playerIDs, err := s.groupRepo.ListPlayerIDs(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list group players: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, userID := range playerIDs {
		if err := s.userRepo.SetGroup(ctx, tx, userID, nil); err != nil {
			return mapUserRepoError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	return nil
}
