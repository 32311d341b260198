package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/tennis-league/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	resultService    services.ResultService
	exportService    services.ExportService
}

func NewStandingsHandler(
	standingsService services.StandingsService,
	resultService services.ResultService,
	exportService services.ExportService,
) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
		resultService:    resultService,
		exportService:    exportService,
	}
}

func (h *StandingsHandler) All(w http.ResponseWriter, r *http.Request) {
	views, err := h.standingsService.AllStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": views}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) ByGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.standingsService.GroupStandings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecalculateGroup пересобирает таблицу одной группы.
func (h *StandingsHandler) RecalculateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.resultService.RecalculateGroup(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	view, err := h.standingsService.GroupStandings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecalculateAll пересобирает таблицы всех групп.
func (h *StandingsHandler) RecalculateAll(w http.ResponseWriter, r *http.Request) {
	if err := h.resultService.RecalculateAll(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := map[string]string{"message": "standings recalculated"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportCSV выгружает все таблицы одним CSV-файлом.
func (h *StandingsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("standings-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exportService.ExportStandingsCSV(r.Context(), w); err != nil {
		// Заголовки уже могли уйти клиенту, менять статус поздно.
		serverErrorResponse(w, r, err)
	}
}

// ExportFixtures выгружает расписание всех групп одним CSV-файлом.
func (h *StandingsHandler) ExportFixtures(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="fikstur.csv"`)

	if err := h.exportService.ExportFixturesCSV(r.Context(), w); err != nil {
		serverErrorResponse(w, r, err)
	}
}
