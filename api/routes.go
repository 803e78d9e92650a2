package api

import (
	"github.com/garnizeh/crm/internal/db"
	"github.com/garnizeh/crm/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

func SetupRoutes(version, buildTime string, conn *db.DB) (*mux.Router, error) {
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(conn, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	peopleHandler := NewPeopleHandler(repo, schemas)
	clientsHandler := NewClientsHandler(repo, schemas)
	jobsHandler := NewJobsHandler(repo, schemas)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// People endpoints
	api.HandleFunc("/people", peopleHandler.List).Methods("GET")
	api.HandleFunc("/people", peopleHandler.Create).Methods("POST")
	api.HandleFunc("/people/{id}", peopleHandler.Get).Methods("GET")
	api.HandleFunc("/people/{id}", peopleHandler.Update).Methods("PUT")
	api.HandleFunc("/people/{id}", peopleHandler.Delete).Methods("DELETE")

	// Client endpoints
	api.HandleFunc("/clients", clientsHandler.List).Methods("GET")
	api.HandleFunc("/clients", clientsHandler.Create).Methods("POST")
	api.HandleFunc("/clients/{id}", clientsHandler.Get).Methods("GET")
	api.HandleFunc("/clients/{id}", clientsHandler.Update).Methods("PUT")
	api.HandleFunc("/clients/{id}", clientsHandler.Delete).Methods("DELETE")

	// Job endpoints, including the assignment relation
	api.HandleFunc("/jobs", jobsHandler.List).Methods("GET")
	api.HandleFunc("/jobs", jobsHandler.Create).Methods("POST")
	api.HandleFunc("/jobs/{id}", jobsHandler.Get).Methods("GET")
	api.HandleFunc("/jobs/{id}", jobsHandler.Update).Methods("PUT")
	api.HandleFunc("/jobs/{id}", jobsHandler.Delete).Methods("DELETE")
	api.HandleFunc("/jobs/{id}/people", jobsHandler.AddPerson).Methods("POST")
	api.HandleFunc("/jobs/{id}/people/{personId}", jobsHandler.RemovePerson).Methods("DELETE")

	return r, nil
}
