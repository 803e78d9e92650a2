package api

import (
	"net/http"

	"log/slog"

	"github.com/garnizeh/crm/pkg/models"
	"github.com/garnizeh/crm/pkg/repository"
	"github.com/gorilla/mux"
)

type ClientsHandler struct {
	repo    repository.ClientRepo
	schemas *requestSchemas
}

func NewClientsHandler(cr repository.ClientRepo, schemas *requestSchemas) *ClientsHandler {
	return &ClientsHandler{repo: cr, schemas: schemas}
}

type clientPayload struct {
	Name             string                 `json:"name"`
	Address          string                 `json:"address"`
	LeadContact      string                 `json:"leadContact"`
	LeadContactPhone string                 `json:"leadContactPhone"`
	LeadContactEmail string                 `json:"leadContactEmail"`
	ExtraContacts    []models.ClientContact `json:"extraContacts"`
}

type clientUpdatePayload struct {
	Name             *string                 `json:"name"`
	Address          *string                 `json:"address"`
	LeadContact      *string                 `json:"leadContact"`
	LeadContactPhone *string                 `json:"leadContactPhone"`
	LeadContactEmail *string                 `json:"leadContactEmail"`
	ExtraContacts    *[]models.ClientContact `json:"extraContacts"`
}

func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.repo.ListClients(r.Context())
	if err != nil {
		logger.Error("list clients", slog.Any("err", err))
		writeError(w, "Failed to fetch clients", http.StatusInternalServerError)
		return
	}

	if clients == nil {
		clients = []models.Client{}
	}

	writeJSON(w, clients, http.StatusOK)
}

func (h *ClientsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	c, err := h.repo.GetClient(r.Context(), id)
	if err != nil {
		logger.Error("get client", slog.String("id", id), slog.Any("err", err))
		writeError(w, "Failed to fetch client", http.StatusInternalServerError)
		return
	}
	if c == nil {
		writeError(w, "Client not found", http.StatusNotFound)
		return
	}

	writeJSON(w, c, http.StatusOK)
}

func (h *ClientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientPayload
	details, err := decodeValid(r.Context(), r, h.schemas.clientCreate, &req)
	if err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	c := &models.Client{
		Name:             req.Name,
		Address:          req.Address,
		LeadContact:      req.LeadContact,
		LeadContactPhone: req.LeadContactPhone,
		LeadContactEmail: req.LeadContactEmail,
		ExtraContacts:    req.ExtraContacts,
	}
	if err := h.repo.CreateClient(r.Context(), c); err != nil {
		logger.Error("create client", slog.Any("err", err))
		writeError(w, "Failed to create client", http.StatusInternalServerError)
		return
	}

	writeJSON(w, c, http.StatusCreated)
}

func (h *ClientsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req clientUpdatePayload
	details, err := decodeValid(r.Context(), r, h.schemas.clientUpdate, &req)
	if err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	u := &models.ClientUpdate{
		Name:             req.Name,
		Address:          req.Address,
		LeadContact:      req.LeadContact,
		LeadContactPhone: req.LeadContactPhone,
		LeadContactEmail: req.LeadContactEmail,
		ExtraContacts:    req.ExtraContacts,
	}
	c, err := h.repo.UpdateClient(r.Context(), id, u)
	if err != nil {
		logger.Error("update client", slog.String("id", id), slog.Any("err", err))
		writeError(w, "Failed to update client", http.StatusInternalServerError)
		return
	}
	if c == nil {
		writeError(w, "Client not found", http.StatusNotFound)
		return
	}

	writeJSON(w, c, http.StatusOK)
}

// Delete refuses to remove a client that still owns jobs: the foreign key
// on jobs.client_id makes the delete fail, which surfaces as a store error.
func (h *ClientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := h.repo.DeleteClient(r.Context(), id)
	if err != nil {
		logger.Error("delete client", slog.String("id", id), slog.Any("err", err))
		writeError(w, "Failed to delete client", http.StatusInternalServerError)
		return
	}
	if !deleted {
		writeError(w, "Client not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
