package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// requestTimeout bounds synchronous analysis of large uploads.
const requestTimeout = 2 * time.Minute

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(bodyLimitMiddleware)
		r.With(timeoutMiddleware(requestTimeout)).Post("/analyze", s.handleAnalyze)
		r.With(timeoutMiddleware(requestTimeout)).Post("/structures", s.handleStructures)
		r.Post("/reports", s.handleSubmitReport)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
		r.Get("/reports/{id}/mistakes", s.handleReportMistakes)
	})
	return r
}
