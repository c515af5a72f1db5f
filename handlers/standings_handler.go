package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/housecup/house-points-system/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

func (h *StandingsHandler) ListStandings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.standingsService.ListStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"standings": rows}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetLeader(w http.ResponseWriter, r *http.Request) {
	leader, err := h.standingsService.GetLeader(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// Пустая база - не ошибка: лидера просто нет.
	response := jsonResponse{"leader": leader}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	lines, err := h.standingsService.BreakdownByCategory(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"breakdown": lines}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) ListStudentsByStanding(w http.ResponseWriter, r *http.Request) {
	var topN *int
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequestResponse(w, r, fmt.Errorf("top must be a positive integer, got %q", raw))
			return
		}
		topN = &n
	}

	rows, err := h.standingsService.ListStudentsByStanding(r.Context(), topN)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"students": rows}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetHouseSummary(w http.ResponseWriter, r *http.Request) {
	houseID, err := getIDFromURL(r, "houseID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.standingsService.GetHouseSummary(r.Context(), houseID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"summary": summary}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
