package api

import (
	"net/http"

	"log/slog"

	"github.com/garnizeh/crm/pkg/models"
	"github.com/garnizeh/crm/pkg/repository"
	"github.com/gorilla/mux"
)

type PeopleHandler struct {
	repo    repository.PersonRepo
	schemas *requestSchemas
}

func NewPeopleHandler(pr repository.PersonRepo, schemas *requestSchemas) *PeopleHandler {
	return &PeopleHandler{repo: pr, schemas: schemas}
}

type personPayload struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
}

type personUpdatePayload struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Telephone *string `json:"telephone"`
	Email     *string `json:"email"`
}

func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.repo.ListPeople(r.Context())
	if err != nil {
		logger.Error("list people", slog.Any("err", err))
		writeError(w, "Failed to fetch people", http.StatusInternalServerError)
		return
	}

	if people == nil {
		people = []models.Person{}
	}

	writeJSON(w, people, http.StatusOK)
}

func (h *PeopleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := h.repo.GetPerson(r.Context(), id)
	if err != nil {
		logger.Error("get person", slog.String("id", id), slog.Any("err", err))
		writeError(w, "Failed to fetch person", http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeError(w, "Person not found", http.StatusNotFound)
		return
	}

	writeJSON(w, p, http.StatusOK)
}

func (h *PeopleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req personPayload
	details, err := decodeValid(r.Context(), r, h.schemas.personCreate, &req)
	if err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	p := &models.Person{
		Name:      req.Name,
		Address:   req.Address,
		Telephone: req.Telephone,
		Email:     req.Email,
	}
	if err := h.repo.CreatePerson(r.Context(), p); err != nil {
		logger.Error("create person", slog.Any("err", err))
		writeError(w, "Failed to create person", http.StatusInternalServerError)
		return
	}

	writeJSON(w, p, http.StatusCreated)
}

func (h *PeopleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req personUpdatePayload
	details, err := decodeValid(r.Context(), r, h.schemas.personUpdate, &req)
	if err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	u := &models.PersonUpdate{
		Name:      req.Name,
		Address:   req.Address,
		Telephone: req.Telephone,
		Email:     req.Email,
	}
	p, err := h.repo.UpdatePerson(r.Context(), id, u)
	if err != nil {
		logger.Error("update person", slog.String("id", id), slog.Any("err", err))
		writeError(w, "Failed to update person", http.StatusInternalServerError)
		return
	}
	if p == nil {
		writeError(w, "Person not found", http.StatusNotFound)
		return
	}

	writeJSON(w, p, http.StatusOK)
}

func (h *PeopleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := h.repo.DeletePerson(r.Context(), id)
	if err != nil {
		logger.Error("delete person", slog.String("id", id), slog.Any("err", err))
		writeError(w, "Failed to delete person", http.StatusInternalServerError)
		return
	}
	if !deleted {
		writeError(w, "Person not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
