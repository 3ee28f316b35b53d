// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/pulse/internal/domain/aggregate"
	"github.com/okian/pulse/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose the aggregated dashboard views.
	Executive(ctx context.Context) (aggregate.ExecutiveSummary, error)
	Pipeline(ctx context.Context) (aggregate.Pipeline, error)
	Capacity(ctx context.Context) (map[string]aggregate.TeamCapacity, error)
	Clients(ctx context.Context, office string) (aggregate.ClientScores, error)
	Trends(ctx context.Context) (aggregate.Trends, error)

	// Refresh discards the cached snapshot and refetches it.
	Refresh(ctx context.Context) error

	// KnownOffice reports whether an office filter is configured.
	KnownOffice(name string) bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	executiveHandler *ExecutiveHandler
	pipelineHandler  *PipelineHandler
	capacityHandler  *CapacityHandler
	clientsHandler   *ClientsHandler
	trendsHandler    *TrendsHandler
	summaryHandler   *SummaryHandler
	refreshHandler   *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(statsProvider),
		statsHandler:     NewStatsHandler(statsProvider),
		executiveHandler: NewExecutiveHandler(deps),
		pipelineHandler:  NewPipelineHandler(deps),
		capacityHandler:  NewCapacityHandler(deps),
		clientsHandler:   NewClientsHandler(deps),
		trendsHandler:    NewTrendsHandler(deps),
		summaryHandler:   NewSummaryHandler(deps),
		refreshHandler:   NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/executive", MetricsMiddleware(s.executiveHandler.HandleGetExecutive, "executive"))
	mux.HandleFunc("/api/pipeline", MetricsMiddleware(s.pipelineHandler.HandleGetPipeline, "pipeline"))
	mux.HandleFunc("/api/capacity", MetricsMiddleware(s.capacityHandler.HandleGetCapacity, "capacity"))
	mux.HandleFunc("/api/clients", MetricsMiddleware(s.clientsHandler.HandleGetClients, "clients"))
	mux.HandleFunc("/api/trends", MetricsMiddleware(s.trendsHandler.HandleGetTrends, "trends"))
	mux.HandleFunc("/api/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/api/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
