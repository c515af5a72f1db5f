package handlers

import (
	"net/http"

	"github.com/housecup/house-points-system/services"
)

type ClassYearHandler struct {
	classYearService services.ClassYearService
}

func NewClassYearHandler(cs services.ClassYearService) *ClassYearHandler {
	return &ClassYearHandler{classYearService: cs}
}

func (h *ClassYearHandler) CreateClassYear(w http.ResponseWriter, r *http.Request) {
	var input services.CreateClassYearInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	classYear, err := h.classYearService.CreateClassYear(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"class_year": classYear}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ClassYearHandler) ListClassYears(w http.ResponseWriter, r *http.Request) {
	classYears, err := h.classYearService.GetAllClassYears(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"class_years": classYears}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ClassYearHandler) DeleteClassYear(w http.ResponseWriter, r *http.Request) {
	classYearID, err := getIDFromURL(r, "classYearID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.classYearService.DeleteClassYear(r.Context(), classYearID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
