package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStandingsService struct {
	views []*GroupStandingsView
	err   error
}

func (s *stubStandingsService) GroupStandings(ctx context.Context, groupID int) (*GroupStandingsView, error) {
	for _, view := range s.views {
		if view.GroupID == groupID {
			return view, nil
		}
	}
	return nil, ErrGroupNotFound
}

func (s *stubStandingsService) AllStandings(ctx context.Context) ([]*GroupStandingsView, error) {
	return s.views, s.err
}

func TestExportStandingsCSV(t *testing.T) {
	partner := "Дина Ахметова"
	standings := &stubStandingsService{
		views: []*GroupStandingsView{
			{
				GroupID:      1,
				GroupName:    "Группа А",
				CategoryName: "Elite",
				Gender:       "male",
				Rows: []RankedRow{
					{Position: 1, UserID: 10, PlayerName: "Азамат Серик", Points: 7, MatchesWon: 2, GamesWon: 24, GamesTotal: 31, Averaj: 0.774},
					{Position: 2, UserID: 11, PlayerName: "Ерлан Досжан", Points: 4, MatchesWon: 1, MatchesLost: 1, GamesWon: 18, GamesTotal: 30, Averaj: 0.6},
				},
			},
			{
				GroupID:      2,
				GroupName:    "Mix 1",
				CategoryName: "Mix",
				Gender:       "female",
				Doubles:      true,
				Rows: []RankedRow{
					{Position: 1, UserID: 20, PlayerName: "Арман Ким", PartnerName: &partner, Points: 3, MatchesWon: 1, GamesWon: 12, GamesTotal: 15, Averaj: 0.8},
				},
			},
		},
	}

	var buf bytes.Buffer
	err := NewExportService(standings, nil, nil).ExportStandingsCSV(context.Background(), &buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, utf8BOM), "CSV must start with UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(raw[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 rows

	assert.Equal(t, exportHeader, records[0])

	assert.Equal(t, []string{"Elite", "male", "Группа А", "1", "Азамат Серик", "", "7", "2", "0", "0", "24", "31", "0.774"}, records[1])
	assert.Equal(t, "0.600", records[2][12])

	mixRow := records[3]
	assert.Equal(t, "Mix 1", mixRow[2])
	assert.Equal(t, "Дина Ахметова", mixRow[5])
}

func TestExportStandingsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := NewExportService(&stubStandingsService{}, nil, nil).ExportStandingsCSV(context.Background(), &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), utf8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, exportHeader, records[0])
}

type stubGroupRepo struct {
	repositories.GroupRepository
	groups []*models.Group
}

func (s *stubGroupRepo) List(ctx context.Context) ([]*models.Group, error) {
	return s.groups, nil
}

type stubMatchRepo struct {
	repositories.MatchRepository
	byGroup map[int][]*models.Match
}

func (s *stubMatchRepo) ListByGroup(ctx context.Context, groupID int) ([]*models.Match, error) {
	return s.byGroup[groupID], nil
}

func strPtr(s string) *string { return &s }

func TestExportFixturesCSV(t *testing.T) {
	matchDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	groups := &stubGroupRepo{groups: []*models.Group{
		{ID: 1, Name: "Группа А", CategoryName: strPtr("Elite")},
		{ID: 2, Name: "Mix 1", CategoryName: strPtr("Mix")},
		{ID: 3, Name: "Пустая", CategoryName: strPtr("Elite")},
	}}
	matches := &stubMatchRepo{byGroup: map[int][]*models.Match{
		1: {
			{
				ID: 1, GroupID: 1, Player1ID: 10, Player2ID: 11, WeekNumber: 1,
				Player1Name: strPtr("Азамат Серик"), Player2Name: strPtr("Ерлан Досжан"),
				MatchDate: &matchDate, MatchTime: strPtr("19:00"), Venue: strPtr("Корт 3"),
				Status: models.MatchStatusCompleted,
				Score: &models.MatchScore{
					Player1Set1: intPtr(6), Player2Set1: intPtr(3),
					Player1Set2: intPtr(3), Player2Set2: intPtr(6),
					SuperTiebreakP1: intPtr(10), SuperTiebreakP2: intPtr(8),
					WinnerID:       10,
					ApprovalStatus: models.ApprovalApproved,
				},
			},
			{
				ID: 2, GroupID: 1, Player1ID: 10, Player2ID: 12, WeekNumber: 2,
				Player1Name: strPtr("Азамат Серик"), Player2Name: strPtr("Марат Абенов"),
				Status:      models.MatchStatusScheduled,
			},
		},
		2: {
			{
				ID: 3, GroupID: 2, Player1ID: 20, Player2ID: 22, WeekNumber: 1,
				Player1PartnerID: intPtr(21), Player2PartnerID: intPtr(23), IsDoubles: true,
				Player1Name: strPtr("Арман Ким"), Player1PartnerName: strPtr("Дина Ахметова"),
				Player2Name: strPtr("Олег Цой"), Player2PartnerName: strPtr("Сауле Найзабек"),
				Status:      models.MatchStatusWalkover,
				Score: &models.MatchScore{
					Player1Set1: intPtr(6), Player2Set1: intPtr(0),
					Player1Set2: intPtr(6), Player2Set2: intPtr(0),
					WinnerID:       20,
					WalkoverPlayer: intPtr(22),
					ApprovalStatus: models.ApprovalApproved,
				},
			},
		},
	}}

	var buf bytes.Buffer
	err := NewExportService(&stubStandingsService{}, groups, matches).ExportFixturesCSV(context.Background(), &buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, utf8BOM), "CSV must start with UTF-8 BOM")

	reader := csv.NewReader(bytes.NewReader(raw[len(utf8BOM):]))
	reader.FieldsPerRecord = -1 // секции разной ширины
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// Секция на группу: заголовок секции, шапка и строки матчей.
	// Группа без матчей в файл не попадает.
	require.Len(t, records, 7)

	assert.Equal(t, []string{"Elite - Группа А"}, records[0])
	assert.Equal(t, fixtureHeader, records[1])
	assert.Equal(t, []string{
		"Dönem 1", "2026-03-14 19:00", "Азамат Серик", "Ерлан Досжан",
		"6-3, 3-6 (ST: 10-8)", "Азамат Серик", "Корт 3", "Tamamlandı",
	}, records[2])
	assert.Equal(t, []string{
		"Dönem 2", "-", "Азамат Серик", "Марат Абенов", "-", "-", "-", "Planlandı",
	}, records[3])

	assert.Equal(t, []string{"Mix - Mix 1"}, records[4])
	assert.Equal(t, fixtureHeader, records[5])
	assert.Equal(t, []string{
		"Dönem 1", "-", "Арман Ким / Дина Ахметова", "Олег Цой / Сауле Найзабек",
		"6-0, 6-0 ALARAK", "Арман Ким / Дина Ахметова", "-", "Walkover",
	}, records[6])
}
