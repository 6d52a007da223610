package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

// SchemaLister reports the response schemas the backend client validates with.
type SchemaLister interface {
	SchemaNames() []string
}

type SystemHandler struct {
	schemas SchemaLister
}

func NewSystemHandler(schemas SchemaLister) *SystemHandler {
	return &SystemHandler{schemas: schemas}
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"status":"ok","service":"careerguide"}`)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","buildTime":"%s"}`, version, buildTime)
	}
}

// ListSchemasHandler lists the embedded backend response schemas.
func (h *SystemHandler) ListSchemasHandler(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if h.schemas != nil {
		names = append(names, h.schemas.SchemaNames()...)
	}
	sort.Strings(names)
	writeJSON(w, map[string]any{"schemas": names}, http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write json", "err", err)
	}
}
