package careerapi

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/qri-io/jsonschema"
)

// Schema names, one per backend call plus the shared envelope.
const (
	SchemaEnvelope = "envelope"
	SchemaRoadmap  = "roadmap"
	SchemaJobs     = "jobs"
	SchemaLearning = "learning"
	SchemaResume   = "resume"
	SchemaTrends   = "trends"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator holds the compiled response schemas. It is read-only after
// construction and safe for concurrent use.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// LoadSchemas compiles the embedded schemas.
func LoadSchemas() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(entries))}
	for _, e := range entries {
		b, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}

		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}
		v.schemas[strings.TrimSuffix(e.Name(), ".json")] = rs
	}

	if _, ok := v.schemas[SchemaEnvelope]; !ok {
		return nil, fmt.Errorf("envelope schema missing")
	}
	return v, nil
}

// Names lists the loaded schemas.
func (v *Validator) Names() []string {
	names := make([]string, 0, len(v.schemas))
	for n := range v.schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks body against the named schema.
func (v *Validator) Validate(ctx context.Context, name string, body []byte) error {
	s, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("no schema named %s", name)
	}

	verrs, err := s.ValidateBytes(ctx, body)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchema, name, err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for i, e := range verrs {
			if i > 0 {
				sb.WriteString("; ")
			}
			if e.PropertyPath != "" {
				sb.WriteString(e.PropertyPath)
				sb.WriteString(": ")
			}
			sb.WriteString(e.Message)
		}
		return fmt.Errorf("%w: %s: %s", ErrSchema, name, sb.String())
	}
	return nil
}

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Decode validates the envelope, turns success=false into an *APIError, then
// validates the endpoint payload and unmarshals it into out.
func (v *Validator) Decode(ctx context.Context, name string, body []byte, out any) error {
	if err := v.Validate(ctx, SchemaEnvelope, body); err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchema, name, err)
	}
	if !env.Success {
		return &APIError{Endpoint: name, Message: env.Error}
	}

	if err := v.Validate(ctx, name, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchema, name, err)
	}
	return nil
}
