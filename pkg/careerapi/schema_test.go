package careerapi

import (
	"context"
	"errors"
	"testing"
)

func TestLoadSchemas_AllEndpointsPresent(t *testing.T) {
	v, err := LoadSchemas()
	if err != nil {
		t.Fatalf("LoadSchemas: %v", err)
	}
	for _, name := range []string{SchemaEnvelope, SchemaRoadmap, SchemaJobs, SchemaLearning, SchemaResume, SchemaTrends} {
		if _, ok := v.schemas[name]; !ok {
			t.Fatalf("schema %s not loaded", name)
		}
	}
	if got := v.Names(); len(got) != 6 || got[0] != SchemaEnvelope {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestValidator_Decode(t *testing.T) {
	v, err := LoadSchemas()
	if err != nil {
		t.Fatalf("LoadSchemas: %v", err)
	}
	ctx := context.Background()

	var out struct {
		Jobs []JobListing `json:"jobs"`
	}

	// envelope without success flag
	if err := v.Decode(ctx, SchemaJobs, []byte(`{"jobs":[]}`), &out); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema for missing success, got %v", err)
	}

	// success=false short-circuits payload validation
	err = v.Decode(ctx, SchemaJobs, []byte(`{"success":false}`), &out)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "" {
		t.Fatalf("expected APIError without message, got %v", err)
	}

	// success=true requires the payload
	if err := v.Decode(ctx, SchemaJobs, []byte(`{"success":true}`), &out); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema for missing jobs, got %v", err)
	}

	if err := v.Decode(ctx, SchemaJobs, []byte(`{"success":true,"jobs":[{"title":"t","company":"c","url":"u"}]}`), &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out.Jobs) != 1 || out.Jobs[0].Company != "c" {
		t.Fatalf("unexpected jobs: %+v", out.Jobs)
	}
}

func TestValidator_UnknownSchema(t *testing.T) {
	v, err := LoadSchemas()
	if err != nil {
		t.Fatalf("LoadSchemas: %v", err)
	}
	if err := v.Validate(context.Background(), "nope", []byte(`{}`)); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
}
