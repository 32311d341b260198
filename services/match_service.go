package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
)

type MatchService interface {
	List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListMine(ctx context.Context, userID int) ([]*models.Match, error)
	Create(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	UpdateSchedule(ctx context.Context, matchID int, actor *models.User, input ScheduleMatchInput) (*models.Match, error)
}

type CreateMatchInput struct {
	GroupID          int  `json:"group_id"`
	Player1ID        int  `json:"player1_id"`
	Player2ID        int  `json:"player2_id"`
	Player1PartnerID *int `json:"player1_partner_id,omitempty"`
	Player2PartnerID *int `json:"player2_partner_id,omitempty"`
	WeekNumber       int  `json:"week_number"`
}

type ScheduleMatchInput struct {
	MatchDate *time.Time `json:"match_date,omitempty"`
	MatchTime *string    `json:"match_time,omitempty"`
	Venue     *string    `json:"venue,omitempty"`
}

type matchService struct {
	matchRepo repositories.MatchRepository
	groupRepo repositories.GroupRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	groupRepo repositories.GroupRepository,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		groupRepo: groupRepo,
	}
}

func (s *matchService) List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListMine(ctx context.Context, userID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user matches: %w", err)
	}
	return matches, nil
}

// Create добавляет матч вручную, минуя генератор календаря. Так появляются
// парные матчи в mix-группах.
func (s *matchService) Create(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.Player1ID == input.Player2ID {
		return nil, fmt.Errorf("%w: a player cannot face themselves", ErrValidationFailed)
	}
	if input.WeekNumber < 1 {
		return nil, fmt.Errorf("%w: week number must be positive", ErrValidationFailed)
	}
	if (input.Player1PartnerID == nil) != (input.Player2PartnerID == nil) {
		return nil, ErrPartnerRequired
	}

	memberIDs, err := s.groupRepo.ListPlayerIDs(ctx, input.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group players: %w", err)
	}
	members := make(map[int]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	participants := []int{input.Player1ID, input.Player2ID}
	if input.Player1PartnerID != nil {
		participants = append(participants, *input.Player1PartnerID, *input.Player2PartnerID)
	}
	seen := make(map[int]bool, len(participants))
	for _, id := range participants {
		if !members[id] {
			return nil, fmt.Errorf("%w: player %d", ErrPlayerNotInGroup, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: player %d appears twice", ErrValidationFailed, id)
		}
		seen[id] = true
	}

	match := &models.Match{
		GroupID:          input.GroupID,
		Player1ID:        input.Player1ID,
		Player2ID:        input.Player2ID,
		Player1PartnerID: input.Player1PartnerID,
		Player2PartnerID: input.Player2PartnerID,
		IsDoubles:        input.Player1PartnerID != nil,
		WeekNumber:       input.WeekNumber,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		if errors.Is(err, repositories.ErrMatchGroupInvalid) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return s.GetByID(ctx, match.ID)
}

// UpdateSchedule записывает договорённость о дате, времени и корте. Менять её
// могут только участники матча и администратор, и только до сдачи счёта.
func (s *matchService) UpdateSchedule(ctx context.Context, matchID int, actor *models.User, input ScheduleMatchInput) (*models.Match, error) {
	match, err := s.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if actor.Role != models.RoleAdmin && !match.HasParticipant(actor.ID) {
		return nil, ErrNotMatchParticipant
	}
	if match.Status != models.MatchStatusScheduled {
		return nil, fmt.Errorf("%w: match already has a result", ErrValidationFailed)
	}

	date := match.MatchDate
	if input.MatchDate != nil {
		date = input.MatchDate
	}
	matchTime := match.MatchTime
	if input.MatchTime != nil {
		matchTime = input.MatchTime
	}
	venue := match.Venue
	if input.Venue != nil {
		venue = input.Venue
	}

	if err := s.matchRepo.UpdateSchedule(ctx, matchID, date, matchTime, venue, intPtr(actor.ID)); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match schedule: %w", err)
	}
	return s.GetByID(ctx, matchID)
}
