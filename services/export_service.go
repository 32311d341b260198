package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Dosada05/tennis-league/models"
	"github.com/Dosada05/tennis-league/repositories"
	"github.com/Dosada05/tennis-league/scoring"
)

// utf8BOM в начале файла, иначе Excel показывает кириллицу и турецкие
// буквы кракозябрами.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var exportHeader = []string{
	"Category", "Gender", "Group", "Position", "Player", "Partner",
	"Points", "Won", "Lost", "Walkovers", "Games Won", "Games Total", "Averaj",
}

// Заголовок секции фикстуры. Колонки и статусы оставлены как в продукте,
// на турецком: файл уходит напрямую организаторам лиги.
var fixtureHeader = []string{
	"Dönem", "Tarih", "Oyuncu 1", "Oyuncu 2", "Skor", "Kazanan", "Saha", "Durum",
}

type ExportService interface {
	ExportStandingsCSV(ctx context.Context, w io.Writer) error
	ExportFixturesCSV(ctx context.Context, w io.Writer) error
}

type exportService struct {
	standings StandingsService
	groupRepo repositories.GroupRepository
	matchRepo repositories.MatchRepository
}

func NewExportService(
	standings StandingsService,
	groupRepo repositories.GroupRepository,
	matchRepo repositories.MatchRepository,
) ExportService {
	return &exportService{
		standings: standings,
		groupRepo: groupRepo,
		matchRepo: matchRepo,
	}
}

// ExportStandingsCSV пишет таблицы всех групп одним CSV-файлом.
func (s *exportService) ExportStandingsCSV(ctx context.Context, w io.Writer) error {
	views, err := s.standings.AllStandings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load standings for export: %w", err)
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, view := range views {
		for _, row := range view.Rows {
			record := []string{
				view.CategoryName,
				view.Gender,
				view.GroupName,
				strconv.Itoa(row.Position),
				row.PlayerName,
				derefString(row.PartnerName),
				strconv.Itoa(row.Points),
				strconv.Itoa(row.MatchesWon),
				strconv.Itoa(row.MatchesLost),
				strconv.Itoa(row.Walkovers),
				strconv.Itoa(row.GamesWon),
				strconv.Itoa(row.GamesTotal),
				strconv.FormatFloat(row.Averaj, 'f', 3, 64),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportFixturesCSV пишет расписание всех групп одним файлом: секция на
// группу с заголовком "Категория - Группа", между секциями пустая строка.
func (s *exportService) ExportFixturesCSV(ctx context.Context, w io.Writer) error {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list groups for export: %w", err)
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	for _, group := range groups {
		matches, err := s.matchRepo.ListByGroup(ctx, group.ID)
		if err != nil {
			return fmt.Errorf("failed to list matches of group %d: %w", group.ID, err)
		}
		if len(matches) == 0 {
			continue
		}

		section := fmt.Sprintf("%s - %s", derefString(group.CategoryName), group.Name)
		if err := writer.Write([]string{section}); err != nil {
			return fmt.Errorf("failed to write section header: %w", err)
		}
		if err := writer.Write(fixtureHeader); err != nil {
			return fmt.Errorf("failed to write fixture header: %w", err)
		}

		for _, match := range matches {
			record := []string{
				fmt.Sprintf("Dönem %d", match.WeekNumber),
				fixtureDate(match),
				sideDisplayName(match, 1),
				sideDisplayName(match, 2),
				fixtureScore(match),
				fixtureWinner(match),
				fixtureVenue(match),
				fixtureStatus(match.Status),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write fixture row: %w", err)
			}
		}

		if err := writer.Write([]string{""}); err != nil {
			return fmt.Errorf("failed to write section separator: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// sideDisplayName собирает имя стороны матча, для пар через " / ".
func sideDisplayName(m *models.Match, side int) string {
	var name, partner string
	switch side {
	case 1:
		name, partner = derefString(m.Player1Name), derefString(m.Player1PartnerName)
	case 2:
		name, partner = derefString(m.Player2Name), derefString(m.Player2PartnerName)
	}
	if m.IsDoubles && partner != "" {
		return name + " / " + partner
	}
	return name
}

func fixtureDate(m *models.Match) string {
	if m.MatchDate == nil {
		return "-"
	}
	date := m.MatchDate.Format("2006-01-02")
	if m.MatchTime != nil && *m.MatchTime != "" {
		return date + " " + *m.MatchTime
	}
	return date
}

func fixtureVenue(m *models.Match) string {
	if m.Venue == nil || *m.Venue == "" {
		return "-"
	}
	return *m.Venue
}

// fixtureScore форматирует счёт сыгранного матча, "-" для несыгранных.
// Для неявок к синтетическим 6-0, 6-0 дописывается пометка ALARAK.
func fixtureScore(m *models.Match) string {
	sc := m.Score
	if sc == nil || (m.Status != models.MatchStatusCompleted && m.Status != models.MatchStatusWalkover) {
		return "-"
	}
	if sc.Player1Set1 == nil || sc.Player2Set1 == nil || sc.Player1Set2 == nil || sc.Player2Set2 == nil {
		return "-"
	}

	score := fmt.Sprintf("%d-%d, %d-%d", *sc.Player1Set1, *sc.Player2Set1, *sc.Player1Set2, *sc.Player2Set2)
	if m.Status == models.MatchStatusWalkover {
		return score + " ALARAK"
	}
	if sc.SuperTiebreakP1 != nil && sc.SuperTiebreakP2 != nil {
		score += fmt.Sprintf(" (ST: %d-%d)", *sc.SuperTiebreakP1, *sc.SuperTiebreakP2)
	}
	return score
}

func fixtureWinner(m *models.Match) string {
	if m.Score == nil || m.Score.WinnerID == scoring.DrawParticipantID {
		return "-"
	}
	switch m.Score.WinnerID {
	case m.Player1ID:
		return sideDisplayName(m, 1)
	case m.Player2ID:
		return sideDisplayName(m, 2)
	}
	return "-"
}

func fixtureStatus(status models.MatchStatus) string {
	switch status {
	case models.MatchStatusCompleted:
		return "Tamamlandı"
	case models.MatchStatusWalkover:
		return "Walkover"
	default:
		return "Planlandı"
	}
}
