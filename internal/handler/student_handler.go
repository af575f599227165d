package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"studentportal/internal/logger"
	"studentportal/internal/model"
	"studentportal/internal/service"
)

// StudentService is what the API handlers need from the storage layer.
type StudentService interface {
	ListStudents() ([]model.Student, error)
	GetStudent(id uint) (*model.Student, error)
	CreateStudent(student model.Student) (*model.Student, error)
	UpdateStudent(id uint, req model.UpdateRequest) (*model.Student, error)
	DeleteStudent(id uint) error
}

type StudentHandler struct {
	studentService StudentService
}

func NewStudentHandler(studentService StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// Register mounts the /api/students routes on r.
func (h *StudentHandler) Register(r *mux.Router) {
	api := r.PathPrefix("/api/students").Subrouter()
	api.HandleFunc("", h.ListStudents).Methods("GET")
	api.HandleFunc("", h.CreateStudent).Methods("POST")
	api.HandleFunc("/{id:[0-9]+}", h.GetStudent).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}", h.UpdateStudent).Methods("PUT")
	api.HandleFunc("/{id:[0-9]+}", h.DeleteStudent).Methods("DELETE")
}

func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.ListStudents()
	if err != nil {
		writeError(w, err)
		return
	}
	if students == nil {
		students = []model.Student{}
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	student, err := h.studentService.GetStudent(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var student model.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	created, err := h.studentService.CreateStudent(student)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	var req model.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	updated, err := h.studentService.UpdateStudent(id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}
	if err := h.studentService.DeleteStudent(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func studentID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid student id")
		return 0, false
	}
	return uint(id), true
}

func writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	var cerr *service.ConflictError
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Student not found")
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &cerr):
		writeMessage(w, http.StatusConflict, cerr.Message)
	default:
		logger.Log.WithError(err).Error("Student API request failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Debug("Error encoding response")
	}
}
