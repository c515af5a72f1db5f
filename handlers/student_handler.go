package handlers

import (
	"net/http"

	"github.com/housecup/house-points-system/services"
)

type StudentHandler struct {
	studentService services.StudentService
}

func NewStudentHandler(ss services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: ss}
}

func (h *StudentHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	var input services.AddStudentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	student, err := h.studentService.AddStudent(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"student": student}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := getIDFromURL(r, "studentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	student, err := h.studentService.GetStudentByID(r.Context(), studentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"student": student}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.ListStudents(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"students": students}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := getIDFromURL(r, "studentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.studentService.DeleteStudent(r.Context(), studentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
