// Package httpapi is a thin net/http surface over the schema source and
// the layout/routing/render pipeline.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/AndrewBazen/django-schema-viewer/internal/schema"
)

// SchemaLoader produces a fresh schema snapshot for one request. For a JSON
// source this simply re-reads the file; for a Postgres source it
// re-introspects the database — either way every request gets its own
// independent snapshot, with no shared mutable layout state across
// requests.
type SchemaLoader func(ctx context.Context) (*schema.Schema, error)

// Server holds the dependencies every handler needs.
type Server struct {
	load SchemaLoader
	mux  *http.ServeMux
}

// New builds a Server and registers every route.
func New(load SchemaLoader) *Server {
	s := &Server{load: load, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /api/schema/", s.handleSchema)
	s.mux.HandleFunc("GET /api/model/{app}/{model}/", s.handleModel)
	s.mux.HandleFunc("GET /api/layout/", s.handleLayout)
	s.mux.HandleFunc("GET /api/diagram.svg", s.handleDiagramSVG)
	return s
}

// Handler returns the server's routes wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return withLogging(s.mux)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
