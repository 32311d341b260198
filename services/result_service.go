package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/scoring"
	"golang.org/x/sync/errgroup"
)

// recalcParallelism ограничивает число групп, пересчитываемых одновременно.
const recalcParallelism = 4

type ResultService interface {
	SubmitScore(ctx context.Context, matchID int, submitter *models.User, input SubmitScoreInput) (*models.Match, error)
	ApproveScore(ctx context.Context, matchID int, approver *models.User) (*models.Match, error)
	OverrideScore(ctx context.Context, matchID int, admin *models.User, input SubmitScoreInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, matchID int) error
	RecalculateGroup(ctx context.Context, groupID int) error
	RecalculateAll(ctx context.Context) error
}

// SubmitScoreInput carries either a normal two-set score (with an optional
// super tiebreak) or a walkover naming the defaulting player.
type SubmitScoreInput struct {
	Player1Set1 *int `json:"player1_set1,omitempty"`
	Player2Set1 *int `json:"player2_set1,omitempty"`
	Player1Set2 *int `json:"player1_set2,omitempty"`
	Player2Set2 *int `json:"player2_set2,omitempty"`

	SuperTiebreakP1 *int `json:"super_tiebreak_p1,omitempty"`
	SuperTiebreakP2 *int `json:"super_tiebreak_p2,omitempty"`

	Walkover         bool `json:"walkover"`
	WalkoverPlayerID *int `json:"walkover_player_id,omitempty"`
}

type resultService struct {
	db           *sql.DB
	matchRepo    repositories.MatchRepository
	scoreRepo    repositories.ScoreRepository
	groupRepo    repositories.GroupRepository
	standingRepo repositories.StandingRepository
	logger       *slog.Logger

	// groupLocks сериализует пересчёты одной группы. Пары (submit, approve)
	// по разным матчам группы не должны гоняться за таблицей.
	mu         sync.Mutex
	groupLocks map[int]*sync.Mutex
}

func NewResultService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	scoreRepo repositories.ScoreRepository,
	groupRepo repositories.GroupRepository,
	standingRepo repositories.StandingRepository,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		db:           db,
		matchRepo:    matchRepo,
		scoreRepo:    scoreRepo,
		groupRepo:    groupRepo,
		standingRepo: standingRepo,
		logger:       logger,
		groupLocks:   make(map[int]*sync.Mutex),
	}
}

func (s *resultService) lockGroup(groupID int) func() {
	s.mu.Lock()
	lock, ok := s.groupLocks[groupID]
	if !ok {
		lock = &sync.Mutex{}
		s.groupLocks[groupID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// tryLockGroup не ждёт освобождения: явный пересчёт при занятой группе
// сразу возвращает ErrConcurrentRecalculation, повторов не делаем.
func (s *resultService) tryLockGroup(groupID int) (func(), bool) {
	s.mu.Lock()
	lock, ok := s.groupLocks[groupID]
	if !ok {
		lock = &sync.Mutex{}
		s.groupLocks[groupID] = lock
	}
	s.mu.Unlock()

	if !lock.TryLock() {
		return nil, false
	}
	return lock.Unlock, true
}

// SubmitScore принимает счёт от участника матча. Обычный счёт ждёт
// подтверждения соперника; неявка подтверждается автоматически и сразу
// попадает в таблицу.
func (s *resultService) SubmitScore(ctx context.Context, matchID int, submitter *models.User, input SubmitScoreInput) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if submitter.Role != models.RoleAdmin && !match.HasParticipant(submitter.ID) {
		return nil, ErrNotMatchParticipant
	}
	if match.Score != nil {
		return nil, ErrMatchAlreadyScored
	}

	outcome, score, err := s.resolveInput(match, input)
	if err != nil {
		return nil, err
	}
	score.SubmittedBy = submitter.ID

	unlock := s.lockGroup(match.GroupID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.scoreRepo.Create(ctx, tx, score); err != nil {
		if errors.Is(err, repositories.ErrScoreConflict) {
			return nil, ErrMatchAlreadyScored
		}
		return nil, fmt.Errorf("failed to store score: %w", err)
	}
	if err := s.matchRepo.UpdateStatus(ctx, tx, matchID, models.MatchStatus(outcome.Status)); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	// Неявка начинает считаться немедленно.
	if outcome.Status == scoring.StatusWalkover {
		match.Score = score
		match.Status = models.MatchStatusWalkover
		if err := s.applyMatch(ctx, tx, match); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.getMatch(ctx, matchID)
}

// ApproveScore подтверждает счёт от имени соперника. Подтверждение и
// обновление таблицы атомарны: либо оба, либо ни одного.
func (s *resultService) ApproveScore(ctx context.Context, matchID int, approver *models.User) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Score == nil {
		return nil, ErrMatchNotScored
	}
	if match.Score.ApprovalStatus == models.ApprovalApproved {
		return nil, ErrScoreAlreadyApproved
	}

	if approver.Role != models.RoleAdmin {
		if !match.HasParticipant(approver.ID) {
			return nil, ErrNotMatchParticipant
		}
		// Подтверждает только сторона, не подававшая счёт.
		if match.SideOf(approver.ID) == match.SideOf(match.Score.SubmittedBy) {
			return nil, ErrApprovalForbidden
		}
	}

	unlock := s.lockGroup(match.GroupID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.scoreRepo.UpdateApproval(ctx, tx, matchID, models.ApprovalApproved, intPtr(approver.ID)); err != nil {
		return nil, fmt.Errorf("failed to approve score: %w", err)
	}

	match.Score.ApprovalStatus = models.ApprovalApproved
	if err := s.applyMatch(ctx, tx, match); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.getMatch(ctx, matchID)
}

// OverrideScore перезаписывает счёт решением администратора и пересобирает
// таблицу группы с нуля.
func (s *resultService) OverrideScore(ctx context.Context, matchID int, admin *models.User, input SubmitScoreInput) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	outcome, score, err := s.resolveInput(match, input)
	if err != nil {
		return nil, err
	}
	score.SubmittedBy = admin.ID
	score.ApprovalStatus = models.ApprovalApproved
	score.ApprovedBy = intPtr(admin.ID)

	unlock := s.lockGroup(match.GroupID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if match.Score == nil {
		err = s.scoreRepo.Create(ctx, tx, score)
	} else {
		err = s.scoreRepo.Update(ctx, tx, score)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store score: %w", err)
	}
	if err := s.matchRepo.UpdateStatus(ctx, tx, matchID, models.MatchStatus(outcome.Status)); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	if err := s.rebuildGroup(ctx, tx, match.GroupID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.getMatch(ctx, matchID)
}

// DeleteMatch убирает матч вместе со счётом и пересобирает таблицу, чтобы
// вклад удалённого результата исчез.
func (s *resultService) DeleteMatch(ctx context.Context, matchID int) error {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return err
	}

	unlock := s.lockGroup(match.GroupID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if match.Score != nil {
		if err := s.scoreRepo.DeleteByMatchID(ctx, tx, matchID); err != nil {
			return fmt.Errorf("failed to delete score: %w", err)
		}
	}
	if err := s.matchRepo.Delete(ctx, tx, matchID); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if err := s.rebuildGroup(ctx, tx, match.GroupID); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *resultService) RecalculateGroup(ctx context.Context, groupID int) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	unlock, ok := s.tryLockGroup(groupID)
	if !ok {
		return ErrConcurrentRecalculation
	}
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.rebuildGroup(ctx, tx, groupID); err != nil {
		return err
	}
	return tx.Commit()
}

// RecalculateAll пересобирает таблицы всех групп. Группы независимы, поэтому
// считаются параллельно; ошибка любой из них останавливает остальные.
func (s *resultService) RecalculateAll(ctx context.Context) error {
	groupIDs, err := s.groupRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(recalcParallelism)

	for _, groupID := range groupIDs {
		groupID := groupID
		g.Go(func() error {
			if err := s.RecalculateGroup(ctx, groupID); err != nil {
				return fmt.Errorf("group %d: %w", groupID, err)
			}
			s.logger.InfoContext(ctx, "group standings recalculated", slog.Int("group_id", groupID))
			return nil
		})
	}
	return g.Wait()
}

func (s *resultService) getMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

// resolveInput переводит сырой ввод в исход матча и строку счёта для записи.
func (s *resultService) resolveInput(match *models.Match, input SubmitScoreInput) (scoring.Outcome, *models.MatchScore, error) {
	var scoreInput scoring.ScoreInput

	if input.Walkover {
		if input.WalkoverPlayerID == nil {
			return scoring.Outcome{}, nil, fmt.Errorf("%w: walkover requires the defaulting player", ErrValidationFailed)
		}
		side := match.SideOf(*input.WalkoverPlayerID)
		if side == 0 {
			return scoring.Outcome{}, nil, ErrNotMatchParticipant
		}
		scoreInput = scoring.ScoreInput{
			Kind:           scoring.KindWalkover,
			DefaultingSide: scoring.Side(side),
		}
	} else {
		if input.Player1Set1 == nil || input.Player2Set1 == nil || input.Player1Set2 == nil || input.Player2Set2 == nil {
			return scoring.Outcome{}, nil, fmt.Errorf("%w: both set scores are required", ErrValidationFailed)
		}
		scoreInput = scoring.ScoreInput{
			Kind: scoring.KindNormal,
			Sets: &scoring.SetScores{
				P1Set1: *input.Player1Set1,
				P2Set1: *input.Player2Set1,
				P1Set2: *input.Player1Set2,
				P2Set2: *input.Player2Set2,
			},
		}
		if input.SuperTiebreakP1 != nil && input.SuperTiebreakP2 != nil {
			scoreInput.Tiebreak = &scoring.TiebreakScore{P1: *input.SuperTiebreakP1, P2: *input.SuperTiebreakP2}
		}
	}

	outcome, err := scoring.ResolveOutcome(scoreInput)
	if err != nil {
		return scoring.Outcome{}, nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	score := &models.MatchScore{
		MatchID:     match.ID,
		Player1Set1: intPtr(outcome.DisplaySets.P1Set1),
		Player2Set1: intPtr(outcome.DisplaySets.P2Set1),
		Player1Set2: intPtr(outcome.DisplaySets.P1Set2),
		Player2Set2: intPtr(outcome.DisplaySets.P2Set2),
	}
	if outcome.Tiebreak != nil {
		score.SuperTiebreakP1 = intPtr(outcome.Tiebreak.P1)
		score.SuperTiebreakP2 = intPtr(outcome.Tiebreak.P2)
	}

	switch {
	case outcome.Draw:
		score.WinnerID = scoring.DrawParticipantID
	case outcome.Winner == scoring.Side1:
		score.WinnerID = match.Player1ID
	default:
		score.WinnerID = match.Player2ID
	}

	if outcome.Status == scoring.StatusWalkover {
		score.WalkoverPlayer = input.WalkoverPlayerID
		score.ApprovalStatus = models.ApprovalApproved
	} else {
		score.ApprovalStatus = models.ApprovalPending
	}

	return outcome, score, nil
}

// applyMatch инкрементально доливает один новый результат в таблицу группы.
func (s *resultService) applyMatch(ctx context.Context, tx *sql.Tx, match *models.Match) error {
	group, rows, err := s.loadRows(ctx, match.GroupID)
	if err != nil {
		return err
	}

	result, ok := matchResultFromModel(match)
	if !ok {
		return ErrMatchNotScored
	}

	updated, err := scoring.Apply(group, rows, result)
	if err != nil {
		return fmt.Errorf("failed to apply match result: %w", err)
	}
	return s.storeRows(ctx, tx, match.GroupID, updated)
}

// rebuildGroup пересобирает таблицу группы с нуля из всей истории матчей.
func (s *resultService) rebuildGroup(ctx context.Context, tx *sql.Tx, groupID int) error {
	participantIDs, err := s.groupRepo.ListPlayerIDs(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to list group players: %w", err)
	}
	matches, err := s.matchRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to list group matches: %w", err)
	}

	results := make([]scoring.MatchResult, 0, len(matches))
	for _, m := range matches {
		if result, ok := matchResultFromModel(m); ok {
			results = append(results, result)
		}
	}

	rows, err := scoring.Rebuild(scoring.GroupContext{GroupID: groupID, ParticipantIDs: participantIDs}, results)
	if err != nil {
		return fmt.Errorf("failed to rebuild standings: %w", err)
	}

	stored := make([]*models.StandingRow, len(rows))
	for i, row := range rows {
		stored[i] = &models.StandingRow{
			GroupID:     row.GroupID,
			UserID:      row.ParticipantID,
			Points:      row.Points,
			MatchesWon:  row.MatchesWon,
			MatchesLost: row.MatchesLost,
			Walkovers:   row.Walkovers,
			GamesWon:    row.GamesWon,
			GamesTotal:  row.GamesTotal,
		}
	}
	return s.standingRepo.ReplaceGroup(ctx, tx, groupID, stored)
}

// loadRows собирает текущие строки группы, добавляя нулевые для игроков, по
// которым таблица ещё пуста.
func (s *resultService) loadRows(ctx context.Context, groupID int) (scoring.GroupContext, []scoring.Row, error) {
	participantIDs, err := s.groupRepo.ListPlayerIDs(ctx, groupID)
	if err != nil {
		return scoring.GroupContext{}, nil, fmt.Errorf("failed to list group players: %w", err)
	}
	stored, err := s.standingRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return scoring.GroupContext{}, nil, fmt.Errorf("failed to load standings: %w", err)
	}

	byUser := make(map[int]*models.StandingRow, len(stored))
	for _, row := range stored {
		byUser[row.UserID] = row
	}

	rows := make([]scoring.Row, 0, len(participantIDs))
	for _, id := range participantIDs {
		row := scoring.Row{GroupID: groupID, ParticipantID: id}
		if existing, ok := byUser[id]; ok {
			row.Points = existing.Points
			row.MatchesWon = existing.MatchesWon
			row.MatchesLost = existing.MatchesLost
			row.Walkovers = existing.Walkovers
			row.GamesWon = existing.GamesWon
			row.GamesTotal = existing.GamesTotal
		}
		rows = append(rows, row)
	}

	group := scoring.GroupContext{GroupID: groupID, ParticipantIDs: participantIDs}
	return group, rows, nil
}

func (s *resultService) storeRows(ctx context.Context, tx *sql.Tx, groupID int, rows []scoring.Row) error {
	stored := make([]*models.StandingRow, len(rows))
	for i, row := range rows {
		stored[i] = &models.StandingRow{
			GroupID:     groupID,
			UserID:      row.ParticipantID,
			Points:      row.Points,
			MatchesWon:  row.MatchesWon,
			MatchesLost: row.MatchesLost,
			Walkovers:   row.Walkovers,
			GamesWon:    row.GamesWon,
			GamesTotal:  row.GamesTotal,
		}
	}
	return s.standingRepo.UpdateRows(ctx, tx, stored)
}
