package api

import (
	"net/http"

	"log/slog"

	"github.com/garnizeh/crm/pkg/models"
	"github.com/garnizeh/crm/pkg/repository"
	"github.com/gorilla/mux"
)

type JobsHandler struct {
	repo    repository.JobRepo
	schemas *requestSchemas
}

func NewJobsHandler(jr repository.JobRepo, schemas *requestSchemas) *JobsHandler {
	return &JobsHandler{repo: jr, schemas: schemas}
}

type jobPayload struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	ScheduledAt    *int64   `json:"scheduledAt"`
	Address        string   `json:"address"`
	Fee            *int64   `json:"fee"`
	ClientID       string   `json:"clientId"`
	AssignedPeople []string `json:"assignedPeople"`
}

type jobUpdatePayload struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Status         *string   `json:"status"`
	ScheduledAt    *int64    `json:"scheduledAt"`
	Address        *string   `json:"address"`
	Fee            *int64    `json:"fee"`
	ClientID       *string   `json:"clientId"`
	AssignedPeople *[]string `json:"assignedPeople"`
}

type assignmentPayload struct {
	PersonID string `json:"personId"`
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.repo.ListJobsWithPeople(r.Context())
	if err != nil {
		logger.Error("list jobs", slog.Any("err", err))
		writeError(w, "Failed to fetch jobs", http.StatusInternalServerError)
		return
	}

	if jobs == nil {
		jobs = []models.JobWithPeople{}
	}

	writeJSON(w, jobs, http.StatusOK)
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	j, err := h.repo.GetJobWithPeople(r.Context(), id)
	if err != nil {
		logger.Error("get job", slog.String("id", id), slog.Any("err", err))
		writeError(w, "Failed to fetch job", http.StatusInternalServerError)
		return
	}
	if j == nil {
		writeError(w, "Job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, j, http.StatusOK)
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req jobPayload
	details, err := decodeValid(r.Context(), r, h.schemas.jobCreate, &req)
	if err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	j := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ScheduledAt: req.ScheduledAt,
		Address:     req.Address,
		Fee:         req.Fee,
		ClientID:    req.ClientID,
	}
	if err := h.repo.CreateJob(r.Context(), j, req.AssignedPeople); err != nil {
		logger.Error("create job", slog.Any("err", err))
		writeError(w, "Failed to create job", http.StatusInternalServerError)
		return
	}

	// return the stored row with its materialized assignment list
	jw, err := h.repo.GetJobWithPeople(r.Context(), j.ID)
	if err != nil || jw == nil {
		logger.Error("fetch created job", slog.String("id", j.ID), slog.Any("err", err))
		writeError(w, "Failed to create job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, jw, http.StatusCreated)
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req jobUpdatePayload
	details, err := decodeValid(r.Context(), r, h.schemas.jobUpdate, &req)
	if err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	u := &models.JobUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		ScheduledAt:    req.ScheduledAt,
		Address:        req.Address,
		Fee:            req.Fee,
		ClientID:       req.ClientID,
		AssignedPeople: req.AssignedPeople,
	}
	jw, err := h.repo.UpdateJob(r.Context(), id, u)
	if err != nil {
		logger.Error("update job", slog.String("id", id), slog.Any("err", err))
		writeError(w, "Failed to update job", http.StatusInternalServerError)
		return
	}
	if jw == nil {
		writeError(w, "Job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, jw, http.StatusOK)
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := h.repo.DeleteJob(r.Context(), id)
	if err != nil {
		logger.Error("delete job", slog.String("id", id), slog.Any("err", err))
		writeError(w, "Failed to delete job", http.StatusInternalServerError)
		return
	}
	if !deleted {
		writeError(w, "Job not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *JobsHandler) AddPerson(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req assignmentPayload
	details, err := decodeValid(r.Context(), r, h.schemas.assignment, &req)
	if err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	added, err := h.repo.AddPersonToJob(r.Context(), id, req.PersonID)
	if err != nil {
		logger.Error("add person to job", slog.String("job_id", id), slog.String("person_id", req.PersonID), slog.Any("err", err))
		writeError(w, "Failed to add person to job", http.StatusInternalServerError)
		return
	}
	if !added {
		writeError(w, "Job not found or person already assigned", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]string{"message": "Person added to job successfully"}, http.StatusCreated)
}

func (h *JobsHandler) RemovePerson(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	personID := vars["personId"]

	removed, err := h.repo.RemovePersonFromJob(r.Context(), id, personID)
	if err != nil {
		logger.Error("remove person from job", slog.String("job_id", id), slog.String("person_id", personID), slog.Any("err", err))
		writeError(w, "Failed to remove person from job", http.StatusInternalServerError)
		return
	}
	if !removed {
		writeError(w, "Job assignment not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
