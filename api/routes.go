package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/careerguide/internal/config"
	"github.com/garnizeh/careerguide/internal/session"
)

// SetupRoutes wires the view pages, their actions and the system endpoints.
func SetupRoutes(cfg *config.Config, version, buildTime string, backend Backend, schemas SchemaLister, sessions *session.Store, renderer *Renderer) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := NewSystemHandler(schemas)
	pageHandler := NewPageHandler(backend, renderer, cfg.Resume.MaxUploadBytes)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/schemas", systemHandler.ListSchemasHandler).Methods("GET")
	r.PathPrefix("/static/").Handler(staticHandler()).Methods("GET")

	// Views, bound to the browser session
	views := r.NewRoute().Subrouter()
	views.Use(SessionMiddleware(sessions))

	views.HandleFunc("/", pageHandler.Roadmap).Methods("GET")
	views.HandleFunc("/roadmap/generate", pageHandler.GenerateRoadmap).Methods("POST")
	views.HandleFunc("/roadmap/phases/{index:[0-9]+}/toggle", pageHandler.TogglePhase).Methods("POST")

	views.HandleFunc("/jobs", pageHandler.Jobs).Methods("GET")
	views.HandleFunc("/jobs/search", pageHandler.SearchJobs).Methods("POST")

	views.HandleFunc("/learn", pageHandler.Learn).Methods("GET")
	views.HandleFunc("/learn/search", pageHandler.SearchResources).Methods("POST")

	views.HandleFunc("/resume", pageHandler.Resume).Methods("GET")
	views.HandleFunc("/resume/mode", pageHandler.ResumeMode).Methods("POST")
	views.HandleFunc("/resume/file", pageHandler.SelectResumeFile).Methods("POST")
	views.HandleFunc("/resume/file/remove", pageHandler.RemoveResumeFile).Methods("POST")
	views.HandleFunc("/resume/analyze", pageHandler.AnalyzeResume).Methods("POST")

	views.HandleFunc("/insights", pageHandler.Insights).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(http.NotFound)

	return r
}
