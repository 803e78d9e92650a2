package api_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestClientsCRUD(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	acme := createEntity(t, srv.URL, "/api/clients", map[string]any{
		"name":             "Acme",
		"address":          "10 Factory Rd",
		"leadContactEmail": "office@acme.example",
		"extraContacts": []any{
			map[string]any{"name": "Pat", "phone": "555-0200"},
		},
	})

	clientURL := fmt.Sprintf("%s/api/clients/%s", srv.URL, acme["id"])

	res, body := doJSON(t, http.MethodGet, clientURL, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get client: expected 200 got %d", res.StatusCode)
	}
	if body["leadContactEmail"] != "office@acme.example" {
		t.Fatalf("lead contact email did not round trip: %v", body)
	}
	contacts, ok := body["extraContacts"].([]any)
	if !ok || len(contacts) != 1 {
		t.Fatalf("expected one extra contact got %v", body["extraContacts"])
	}
	first := contacts[0].(map[string]any)
	if first["name"] != "Pat" {
		t.Fatalf("unexpected contact: %v", first)
	}

	// replacing the contact list is a full overwrite
	res, body = doJSON(t, http.MethodPut, clientURL, map[string]any{
		"extraContacts": []any{
			map[string]any{"name": "Sam"},
			map[string]any{"name": "Kim"},
		},
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("update client: expected 200 got %d", res.StatusCode)
	}
	if contacts := body["extraContacts"].([]any); len(contacts) != 2 {
		t.Fatalf("expected replaced contacts got %v", contacts)
	}
	if body["name"] != "Acme" {
		t.Fatalf("untouched fields changed: %v", body)
	}

	// an empty list clears the contacts
	res, body = doJSON(t, http.MethodPut, clientURL, map[string]any{"extraContacts": []any{}})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("clear contacts: expected 200 got %d", res.StatusCode)
	}
	if contacts := body["extraContacts"].([]any); len(contacts) != 0 {
		t.Fatalf("expected cleared contacts got %v", contacts)
	}

	res, list := doJSONList(t, srv.URL+"/api/clients")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list clients: expected 200 got %d", res.StatusCode)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 client got %d", len(list))
	}

	res, _ = doJSON(t, http.MethodDelete, clientURL, nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete client: expected 204 got %d", res.StatusCode)
	}
	res, _ = doJSON(t, http.MethodGet, clientURL, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted client: expected 404 got %d", res.StatusCode)
	}
}

func TestCreateClientValidation(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	res, body := doJSON(t, http.MethodPost, srv.URL+"/api/clients", map[string]any{"name": ""})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty name: expected 400 got %d", res.StatusCode)
	}
	if body["error"] != "Validation failed" {
		t.Fatalf("expected validation error body got %v", body)
	}

	// extra contacts must each carry a name
	res, _ = doJSON(t, http.MethodPost, srv.URL+"/api/clients", map[string]any{
		"name":          "Acme",
		"extraContacts": []any{map[string]any{"phone": "555-0200"}},
	})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("contact without name: expected 400 got %d", res.StatusCode)
	}
}

func TestDeleteClientWithJobsFails(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	acme := createEntity(t, srv.URL, "/api/clients", map[string]any{"name": "Acme"})
	createEntity(t, srv.URL, "/api/jobs", map[string]any{"title": "Install", "clientId": acme["id"]})

	// the job still references the client, so the delete fails in the store
	res, _ := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/clients/%s", srv.URL, acme["id"]), nil)
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", res.StatusCode)
	}

	res, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/clients/%s", srv.URL, acme["id"]), nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("client should survive the failed delete, got %d", res.StatusCode)
	}
}
