package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/scoring"
)

type StandingsService interface {
	GroupStandings(ctx context.Context, groupID int) (*GroupStandingsView, error)
	AllStandings(ctx context.Context) ([]*GroupStandingsView, error)
}

// RankedRow is one display line of a group table. For doubles teams
// PartnerID and PartnerName identify the second member; both members share
// the same numbers.
type RankedRow struct {
	Position    int     `json:"position"`
	UserID      int     `json:"user_id"`
	PlayerName  string  `json:"player_name"`
	PartnerID   *int    `json:"partner_id,omitempty"`
	PartnerName *string `json:"partner_name,omitempty"`
	Points      int     `json:"points"`
	MatchesWon  int     `json:"matches_won"`
	MatchesLost int     `json:"matches_lost"`
	Walkovers   int     `json:"walkovers"`
	GamesWon    int     `json:"games_won"`
	GamesTotal  int     `json:"games_total"`
	Averaj      float64 `json:"averaj"`
}

type GroupStandingsView struct {
	GroupID      int         `json:"group_id"`
	GroupName    string      `json:"group_name"`
	CategoryID   int         `json:"category_id"`
	CategoryName string      `json:"category_name"`
	Gender       string      `json:"gender"`
	Doubles      bool        `json:"doubles"`
	Rows         []RankedRow `json:"rows"`
}

type standingsService struct {
	groupRepo    repositories.GroupRepository
	categoryRepo repositories.CategoryRepository
	standingRepo repositories.StandingRepository
	matchRepo    repositories.MatchRepository
}

func NewStandingsService(
	groupRepo repositories.GroupRepository,
	categoryRepo repositories.CategoryRepository,
	standingRepo repositories.StandingRepository,
	matchRepo repositories.MatchRepository,
) StandingsService {
	return &standingsService{
		groupRepo:    groupRepo,
		categoryRepo: categoryRepo,
		standingRepo: standingRepo,
		matchRepo:    matchRepo,
	}
}

func (s *standingsService) GroupStandings(ctx context.Context, groupID int) (*GroupStandingsView, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return s.buildView(ctx, group)
}

// AllStandings собирает таблицы всех групп для публичной страницы, в порядке
// категорий и групп.
func (s *standingsService) AllStandings(ctx context.Context) ([]*GroupStandingsView, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	views := make([]*GroupStandingsView, 0, len(groups))
	for _, group := range groups {
		view, err := s.buildView(ctx, group)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", group.ID, err)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *standingsService) buildView(ctx context.Context, group *models.Group) (*GroupStandingsView, error) {
	category, err := s.categoryRepo.GetByID(ctx, group.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	stored, err := s.standingRepo.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}

	names := make(map[int]string, len(stored))
	rows := make([]scoring.Row, 0, len(stored))
	for _, row := range stored {
		names[row.UserID] = derefString(row.PlayerName)
		rows = append(rows, scoring.Row{
			GroupID:       row.GroupID,
			ParticipantID: row.UserID,
			Points:        row.Points,
			MatchesWon:    row.MatchesWon,
			MatchesLost:   row.MatchesLost,
			Walkovers:     row.Walkovers,
			GamesWon:      row.GamesWon,
			GamesTotal:    row.GamesTotal,
		})
	}

	view := &GroupStandingsView{
		GroupID:      group.ID,
		GroupName:    group.Name,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Gender:       string(category.Gender),
		Doubles:      category.IsMix(),
	}

	if view.Doubles {
		// В mix-группах пары схлопываются в одну строку; партнёрство читается
		// из сыгранных матчей.
		matches, err := s.matchRepo.ListByGroup(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list group matches: %w", err)
		}
		results := make([]scoring.MatchResult, 0, len(matches))
		for _, m := range matches {
			if result, ok := matchResultFromModel(m); ok {
				results = append(results, result)
			}
		}

		teams := scoring.RankTeams(scoring.MergeTeams(rows, results))
		view.Rows = make([]RankedRow, 0, len(teams))
		for i, team := range teams {
			ranked := rankedRowFrom(team.Row, i+1, names)
			if team.PartnerID != 0 {
				partnerID := team.PartnerID
				partnerName := names[partnerID]
				ranked.PartnerID = &partnerID
				ranked.PartnerName = &partnerName
			}
			view.Rows = append(view.Rows, ranked)
		}
		return view, nil
	}

	ranked := scoring.Rank(rows)
	view.Rows = make([]RankedRow, 0, len(ranked))
	for i, row := range ranked {
		view.Rows = append(view.Rows, rankedRowFrom(row, i+1, names))
	}
	return view, nil
}

func rankedRowFrom(row scoring.Row, position int, names map[int]string) RankedRow {
	return RankedRow{
		Position:    position,
		UserID:      row.ParticipantID,
		PlayerName:  names[row.ParticipantID],
		Points:      row.Points,
		MatchesWon:  row.MatchesWon,
		MatchesLost: row.MatchesLost,
		Walkovers:   row.Walkovers,
		GamesWon:    row.GamesWon,
		GamesTotal:  row.GamesTotal,
		Averaj:      row.Averaj(),
	}
}
