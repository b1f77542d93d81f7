// Package api serves the report service over JSON HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/vytor/chessinsight/internal/services"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	Reports services.ReportService
	// Store is checked by /ready; nil skips the check.
	Store Pinger
	// Metrics serves /metrics; nil leaves the route out.
	Metrics http.Handler
}
