package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/storage"
	"golang.org/x/crypto/bcrypt"
)

type PlayerService interface {
	Create(ctx context.Context, input CreatePlayerInput) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	PublicProfile(ctx context.Context, id int) (*PlayerProfile, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByGroup(ctx context.Context, groupID int) ([]*models.User, error)
	Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, input UpdateProfileInput) (*models.User, error)
	UploadProfilePhoto(ctx context.Context, userID int, contentType string, file io.Reader) (*models.User, error)
	Delete(ctx context.Context, id int) error
}

type CreatePlayerInput struct {
	Username   string  `json:"username"`
	Password   string  `json:"password"`
	FullName   string  `json:"full_name"`
	Phone      *string `json:"phone,omitempty"`
	Role       *string `json:"role,omitempty"`
	CategoryID *int    `json:"category_id,omitempty"`
}

type UpdatePlayerInput struct {
	Username   *string `json:"username,omitempty"`
	Password   *string `json:"password,omitempty"`
	FullName   *string `json:"full_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	CategoryID *int    `json:"category_id,omitempty"`
}

// UpdateProfileInput is the subset a player may change on their own account.
type UpdateProfileInput struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// PlayerProfile — публичная карточка игрока: кто он, его группа, матчи и
// строка в таблице.
type PlayerProfile struct {
	Player   *models.User        `json:"player"`
	Group    *models.Group       `json:"group,omitempty"`
	Matches  []*models.Match     `json:"matches"`
	Standing *models.StandingRow `json:"standing,omitempty"`
}

type playerService struct {
	userRepo     repositories.UserRepository
	categoryRepo repositories.CategoryRepository
	groupRepo    repositories.GroupRepository
	matchRepo    repositories.MatchRepository
	standingRepo repositories.StandingRepository
	uploader     storage.FileUploader
}

func NewPlayerService(
	userRepo repositories.UserRepository,
	categoryRepo repositories.CategoryRepository,
	groupRepo repositories.GroupRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
	uploader storage.FileUploader,
) PlayerService {
	return &playerService{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		groupRepo:    groupRepo,
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		uploader:     uploader,
	}
}

func (s *playerService) Create(ctx context.Context, input CreatePlayerInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.FullName = strings.TrimSpace(input.FullName)
	if input.Username == "" || input.FullName == "" {
		return nil, fmt.Errorf("%w: username and full name are required", ErrValidationFailed)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := models.RolePlayer
	if input.Role != nil && models.UserRole(*input.Role) == models.RoleAdmin {
		role = models.RoleAdmin
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: string(hashed),
		FullName:     input.FullName,
		Role:         role,
		Phone:        input.Phone,
		CategoryID:   input.CategoryID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, mapUserRepoError(err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserRepoError(err)
	}
	populateUserDetailsFunc(user, s.uploader)
	return user, nil
}

// PublicProfile возвращает карточку игрока для публичной страницы. В mix
// категориях показываются и матчи, где игрок выходит партнёром; в остальных
// только матчи, где он заявлен основным.
func (s *playerService) PublicProfile(ctx context.Context, id int) (*PlayerProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserRepoError(err)
	}
	if user.Role != models.RolePlayer {
		return nil, ErrUserNotFound
	}
	populateUserDetailsFunc(user, s.uploader)

	profile := &PlayerProfile{Player: user, Matches: []*models.Match{}}
	if user.GroupID == nil {
		return profile, nil
	}
	groupID := *user.GroupID

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return profile, nil
		}
		return nil, fmt.Errorf("failed to load player group: %w", err)
	}
	profile.Group = group

	category, err := s.categoryRepo.GetByID(ctx, group.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group category: %w", err)
	}

	matches, err := s.matchRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list player matches: %w", err)
	}
	for _, m := range matches {
		if m.GroupID != groupID {
			continue
		}
		if !category.IsMix() && m.Player1ID != id && m.Player2ID != id {
			// вне mix партнёрские матчи на карточке не показываем
			continue
		}
		profile.Matches = append(profile.Matches, m)
	}

	rows, err := s.standingRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings row: %w", err)
	}
	for _, row := range rows {
		if row.UserID == id {
			profile.Standing = row
			break
		}
	}
	return profile, nil
}

func (s *playerService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for _, u := range users {
		populateUserDetailsFunc(u, s.uploader)
	}
	return users, nil
}

func (s *playerService) ListByGroup(ctx context.Context, groupID int) ([]*models.User, error) {
	users, err := s.userRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group players: %w", err)
	}
	for _, u := range users {
		populateUserDetailsFunc(u, s.uploader)
	}
	return users, nil
}

func (s *playerService) Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserRepoError(err)
	}

	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", ErrValidationFailed)
		}
		user.Username = trimmed
	}
	if input.FullName != nil {
		trimmed := strings.TrimSpace(*input.FullName)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: full name cannot be empty", ErrValidationFailed)
		}
		user.FullName = trimmed
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		user.CategoryID = input.CategoryID
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, mapUserRepoError(err)
	}
	populateUserDetailsFunc(user, s.uploader)
	return user, nil
}

func (s *playerService) UpdateProfile(ctx context.Context, id int, input UpdateProfileInput) (*models.User, error) {
	return s.Update(ctx, id, UpdatePlayerInput{
		FullName: input.FullName,
		Phone:    input.Phone,
	})
}

func (s *playerService) UploadProfilePhoto(ctx context.Context, userID int, contentType string, file io.Reader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapUserRepoError(err)
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	oldKey := user.ProfilePhotoKey
	key := fmt.Sprintf("players/%d/photo%s", userID, ext)

	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload profile photo: %w", err)
	}
	if err := s.userRepo.UpdateProfilePhotoKey(ctx, userID, &key); err != nil {
		return nil, mapUserRepoError(err)
	}

	// Старый файл под другим расширением больше не нужен.
	if oldKey != nil && *oldKey != "" && *oldKey != key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	user.ProfilePhotoKey = &key
	populateUserDetailsFunc(user, s.uploader)
	return user, nil
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return mapUserRepoError(err)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return mapUserRepoError(err)
	}
	if user.ProfilePhotoKey != nil && *user.ProfilePhotoKey != "" {
		_ = s.uploader.Delete(ctx, *user.ProfilePhotoKey)
	}
	return nil
}
