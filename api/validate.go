package api

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// requestSchemas holds the compiled JSON Schemas request bodies are
// validated against. Create schemas carry required fields; update schemas
// share the same properties with nothing required, matching the
// partial-update contract.
type requestSchemas struct {
	personCreate *jsonschema.Schema
	personUpdate *jsonschema.Schema
	clientCreate *jsonschema.Schema
	clientUpdate *jsonschema.Schema
	jobCreate    *jsonschema.Schema
	jobUpdate    *jsonschema.Schema
	assignment   *jsonschema.Schema
}

func loadSchemas() (*requestSchemas, error) {
	s := &requestSchemas{}
	for name, dst := range map[string]**jsonschema.Schema{
		"person_create.json": &s.personCreate,
		"person_update.json": &s.personUpdate,
		"client_create.json": &s.clientCreate,
		"client_update.json": &s.clientUpdate,
		"job_create.json":    &s.jobCreate,
		"job_update.json":    &s.jobUpdate,
		"assignment.json":    &s.assignment,
	} {
		rs, err := compileSchema(name)
		if err != nil {
			return nil, err
		}

		*dst = rs
	}

	return s, nil
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	b, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(b, rs); err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	return rs, nil
}

// decodeValid validates the request body against the schema and, when it
// passes, unmarshals it into dst. Schema violations come back as field
// errors; a non-nil error means the body could not be read or parsed at all.
func decodeValid(ctx context.Context, r *http.Request, rs *jsonschema.Schema, dst any) ([]fieldError, error) {
	const maxSize = 1 << 20
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxSize {
		return nil, fmt.Errorf("body too large")
	}

	keyErrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if len(keyErrs) > 0 {
		details := make([]fieldError, 0, len(keyErrs))
		for _, ke := range keyErrs {
			details = append(details, fieldError{Path: ke.PropertyPath, Message: ke.Message})
		}

		return details, nil
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	return nil, nil
}
