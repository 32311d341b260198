package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/schedule"
)

type ScheduleService interface {
	GenerateForGroup(ctx context.Context, groupID int) ([]*models.Match, error)
}

type scheduleService struct {
	db        *sql.DB
	groupRepo repositories.GroupRepository
	matchRepo repositories.MatchRepository
}

func NewScheduleService(
	db *sql.DB,
	groupRepo repositories.GroupRepository,
	matchRepo repositories.MatchRepository,
) ScheduleService {
	return &scheduleService{
		db:        db,
		groupRepo: groupRepo,
		matchRepo: matchRepo,
	}
}

// GenerateForGroup строит круговой календарь группы. Все туры создаются одной
// транзакцией: либо полный календарь, либо ничего.
func (s *scheduleService) GenerateForGroup(ctx context.Context, groupID int) ([]*models.Match, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	existing, err := s.matchRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing fixtures: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrScheduleExists
	}

	playerIDs, err := s.groupRepo.ListPlayerIDs(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group players: %w", err)
	}
	if len(playerIDs) < models.GroupMinPlayers {
		return nil, ErrGroupTooSmall
	}

	pairings, err := schedule.Generate(playerIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	matches := make([]*models.Match, 0, len(pairings))
	for _, p := range pairings {
		match := &models.Match{
			GroupID:    groupID,
			Player1ID:  p.Player1ID,
			Player2ID:  p.Player2ID,
			WeekNumber: p.Week,
		}
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return nil, fmt.Errorf("failed to create fixture: %w", err)
		}
		matches = append(matches, match)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return matches, nil
}
