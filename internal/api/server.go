// internal/api/server.go
package api

import (
	"net/http"
	"strconv"
	"time"

	"transparency-service/internal/common/logger"
	"transparency-service/internal/common/observability"
	"transparency-service/internal/questions"
	"transparency-service/internal/report"
	"transparency-service/internal/store"

	"github.com/go-chi/chi/v5"
)

// Server exposes the report pipeline over HTTP. Authentication, session
// validation, CORS and rate limiting are owned by the gateway in front of
// this service; the gateway injects the caller identity as X-User-ID.
type Server struct {
	router       chi.Router
	products     *store.ProductStore
	orchestrator *questions.Orchestrator
	assembler    *report.Assembler
	renderer     *report.Renderer
	obs          *observability.Observability
	logger       logger.Logger
}

// NewServer wires the HTTP surface. obs may be nil, in which case no
// per-request telemetry is recorded.
func NewServer(products *store.ProductStore, orchestrator *questions.Orchestrator, assembler *report.Assembler, renderer *report.Renderer, obs *observability.Observability, log logger.Logger) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		products:     products,
		orchestrator: orchestrator,
		assembler:    assembler,
		renderer:     renderer,
		obs:          obs,
		logger:       log.WithFields(map[string]interface{}{"component": "api"}),
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if s.obs != nil {
				status := strconv.Itoa(recorder.status)
				s.obs.RecordRequest(r.Context(), r.URL.Path, status)
				s.obs.RecordDuration(r.Context(), r.URL.Path, time.Since(start), status)
			}
			s.logger.Debug("request", map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   recorder.status,
				"duration": time.Since(start).String(),
			})
		})
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})

	s.router.Post("/api/questions/generate", s.handleGenerateQuestions)
	s.router.Post("/api/reports/generate", s.handleGenerateReport)
	s.router.Get("/api/reports/{reportID}", s.handleGetReport)
	s.router.Get("/api/reports/{reportID}/pdf", s.handleReportPDF)
}

// userID extracts the gateway-injected caller identity.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
