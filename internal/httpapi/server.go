package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"routined/pkg/types"
)

// RoutineLister is the piece of the registry the ops surface needs.
type RoutineLister interface {
	List() []types.RoutineInfo
}

// JobService is the piece of the job tracker the ops surface needs.
type JobService interface {
	List() []types.JobStatus
	Status(id string) (types.JobStatus, bool)
	CancelJob(id string) bool
}

// NewMux builds the ops router: routine listing, job status, cooperative
// job cancellation, health and metrics.
func NewMux(routines RoutineLister, jobs JobService) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)
	r.Use(LoggingMiddleware)

	r.Get("/routines", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.RoutinesResponse{Routines: routines.List()})
	})

	r.Get("/jobs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.JobsResponse{Jobs: jobs.List()})
	})

	r.Get("/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		st, ok := jobs.Status(id)
		if !ok {
			writeJSONError(w, http.StatusNotFound, "job not found: "+id)
			return
		}
		writeJSON(w, st)
	})

	r.Post("/jobs/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !jobs.CancelJob(id) {
			writeJSONError(w, http.StatusNotFound, "job not found: "+id)
			return
		}
		// Cancellation is cooperative; 202 reflects that the flag is set,
		// not that the job has exited.
		w.WriteHeader(http.StatusAccepted)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
