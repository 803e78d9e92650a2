package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garnizeh/crm/api"
	dbfs "github.com/garnizeh/crm/db"
	"github.com/garnizeh/crm/internal/db"
)

func setupServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	ctx := context.Background()
	d, err := db.New(ctx, "file::memory:?cache=shared", nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		d.Close()
		t.Fatalf("migrate: %v", err)
	}

	handler, err := api.SetupRoutes("test", "now", d)
	if err != nil {
		d.Close()
		t.Fatalf("setup routes: %v", err)
	}

	srv := httptest.NewServer(handler)
	return srv, func() {
		srv.Close()
		http.DefaultClient.CloseIdleConnections()
		d.Close()
	}
}

func doJSON(t *testing.T, method, url string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer res.Body.Close()

	var decoded map[string]any
	if res.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(res.Body).Decode(&decoded)
	}

	return res, decoded
}

func doJSONList(t *testing.T, url string) (*http.Response, []map[string]any) {
	t.Helper()

	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer res.Body.Close()

	var decoded []map[string]any
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode list from %s: %v", url, err)
	}

	return res, decoded
}

func createEntity(t *testing.T, baseURL, path string, payload map[string]any) map[string]any {
	t.Helper()

	res, body := doJSON(t, http.MethodPost, baseURL+path, payload)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("POST %s: expected 201 got %d (%v)", path, res.StatusCode, body)
	}
	if body["id"] == nil || body["id"] == "" {
		t.Fatalf("POST %s: expected generated id got %v", path, body)
	}
	if body["createdAt"] == nil {
		t.Fatalf("POST %s: expected creation timestamp got %v", path, body)
	}

	return body
}

func TestHealthAndVersion(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	res, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}

	res, err = http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatalf("get version: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
}

func TestJobAssignmentScenario(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	acme := createEntity(t, srv.URL, "/api/clients", map[string]any{"name": "Acme"})
	jane := createEntity(t, srv.URL, "/api/people", map[string]any{"name": "Jane"})

	job := createEntity(t, srv.URL, "/api/jobs", map[string]any{
		"title":    "Install",
		"clientId": acme["id"],
	})
	if job["status"] != "pending" {
		t.Fatalf("expected default status pending got %v", job["status"])
	}

	// freshly created job shows an empty assignment list
	res, jobs := doJSONList(t, srv.URL+"/api/jobs")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list jobs: expected 200 got %d", res.StatusCode)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job got %d", len(jobs))
	}
	if assigned := jobs[0]["assignedPeople"].([]any); len(assigned) != 0 {
		t.Fatalf("expected empty assignedPeople got %v", assigned)
	}

	// assign jane
	jobURL := fmt.Sprintf("%s/api/jobs/%s", srv.URL, job["id"])
	res, _ = doJSON(t, http.MethodPost, jobURL+"/people", map[string]any{"personId": jane["id"]})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("add person: expected 201 got %d", res.StatusCode)
	}

	res, body := doJSON(t, http.MethodGet, jobURL, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get job: expected 200 got %d", res.StatusCode)
	}
	assigned := body["assignedPeople"].([]any)
	if len(assigned) != 1 || assigned[0] != jane["id"] {
		t.Fatalf("expected [%v] got %v", jane["id"], assigned)
	}

	// duplicate assignment reports 404 per the API contract
	res, _ = doJSON(t, http.MethodPost, jobURL+"/people", map[string]any{"personId": jane["id"]})
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("duplicate add: expected 404 got %d", res.StatusCode)
	}

	// missing personId is a validation failure
	res, _ = doJSON(t, http.MethodPost, jobURL+"/people", map[string]any{})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing personId: expected 400 got %d", res.StatusCode)
	}

	// remove and verify the list is empty again
	res, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/people/%v", jobURL, jane["id"]), nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("remove person: expected 204 got %d", res.StatusCode)
	}

	res, body = doJSON(t, http.MethodGet, jobURL, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get job after removal: expected 200 got %d", res.StatusCode)
	}
	if assigned := body["assignedPeople"].([]any); len(assigned) != 0 {
		t.Fatalf("expected empty assignment list got %v", assigned)
	}

	// removing again is a 404
	res, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/people/%v", jobURL, jane["id"]), nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("remove missing assignment: expected 404 got %d", res.StatusCode)
	}
}

func TestUpdateJobFullReplacement(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	acme := createEntity(t, srv.URL, "/api/clients", map[string]any{"name": "Acme"})
	jane := createEntity(t, srv.URL, "/api/people", map[string]any{"name": "Jane"})
	bob := createEntity(t, srv.URL, "/api/people", map[string]any{"name": "Bob"})

	job := createEntity(t, srv.URL, "/api/jobs", map[string]any{
		"title":          "Install",
		"clientId":       acme["id"],
		"assignedPeople": []any{jane["id"], bob["id"]},
	})
	if assigned := job["assignedPeople"].([]any); len(assigned) != 2 {
		t.Fatalf("expected 2 assignments on create got %v", assigned)
	}

	jobURL := fmt.Sprintf("%s/api/jobs/%s", srv.URL, job["id"])

	// replacing with a single id drops the other
	res, body := doJSON(t, http.MethodPut, jobURL, map[string]any{"assignedPeople": []any{bob["id"]}})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("update job: expected 200 got %d (%v)", res.StatusCode, body)
	}
	assigned := body["assignedPeople"].([]any)
	if len(assigned) != 1 || assigned[0] != bob["id"] {
		t.Fatalf("expected full replacement with [%v] got %v", bob["id"], assigned)
	}

	// an empty list clears everything
	res, body = doJSON(t, http.MethodPut, jobURL, map[string]any{"assignedPeople": []any{}})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("clear assignments: expected 200 got %d", res.StatusCode)
	}
	if assigned := body["assignedPeople"].([]any); len(assigned) != 0 {
		t.Fatalf("expected cleared assignments got %v", assigned)
	}

	// updating only the status leaves other fields alone
	res, body = doJSON(t, http.MethodPut, jobURL, map[string]any{"status": "completed"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status update: expected 200 got %d", res.StatusCode)
	}
	if body["status"] != "completed" || body["title"] != "Install" {
		t.Fatalf("partial update wrong: %v", body)
	}

	// a status outside the enum is rejected
	res, _ = doJSON(t, http.MethodPut, jobURL, map[string]any{"status": "paused"})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad status: expected 400 got %d", res.StatusCode)
	}

	// a negative fee is rejected by validation
	res, _ = doJSON(t, http.MethodPut, jobURL, map[string]any{"fee": -5})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("negative fee: expected 400 got %d", res.StatusCode)
	}

	// deleting the job cascades its assignments and returns 204
	res, _ = doJSON(t, http.MethodDelete, jobURL, nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete job: expected 204 got %d", res.StatusCode)
	}
	res, _ = doJSON(t, http.MethodGet, jobURL, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted job: expected 404 got %d", res.StatusCode)
	}
}

func TestCreateJobRequiresClient(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	// clientId is required by the schema
	res, body := doJSON(t, http.MethodPost, srv.URL+"/api/jobs", map[string]any{"title": "Install"})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%v)", res.StatusCode, body)
	}
	if body["error"] != "Validation failed" {
		t.Fatalf("expected validation error body got %v", body)
	}

	// a well-formed request naming a missing client fails in the store
	res, _ = doJSON(t, http.MethodPost, srv.URL+"/api/jobs", map[string]any{"title": "Install", "clientId": "missing"})
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", res.StatusCode)
	}
}
