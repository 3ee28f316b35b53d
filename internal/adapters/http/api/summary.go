// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/pulse/internal/domain/aggregate"
)

// SummaryDependencies defines the interface for the combined view.
type SummaryDependencies interface {
	Executive(ctx context.Context) (aggregate.ExecutiveSummary, error)
	Pipeline(ctx context.Context) (aggregate.Pipeline, error)
	Capacity(ctx context.Context) (map[string]aggregate.TeamCapacity, error)
	Clients(ctx context.Context, office string) (aggregate.ClientScores, error)
	Trends(ctx context.Context) (aggregate.Trends, error)
}

// summaryResponse bundles every dashboard view in one payload.
type summaryResponse struct {
	Executive aggregate.ExecutiveSummary        `json:"executive"`
	Pipeline  aggregate.Pipeline                `json:"pipeline"`
	Capacity  map[string]aggregate.TeamCapacity `json:"capacity"`
	Clients   aggregate.ClientScores            `json:"clients"`
	Trends    aggregate.Trends                  `json:"trends"`
}

// SummaryHandler handles combined dashboard requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /api/summary requests. All five views are
// computed from the same snapshot because the first call pins it for the
// cache TTL.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	executive, err := h.deps.Executive(ctx)
	if err != nil {
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
		return
	}
	pipeline, err := h.deps.Pipeline(ctx)
	if err != nil {
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
		return
	}
	capacity, err := h.deps.Capacity(ctx)
	if err != nil {
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
		return
	}
	clients, err := h.deps.Clients(ctx, "")
	if err != nil {
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
		return
	}
	trends, err := h.deps.Trends(ctx)
	if err != nil {
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Executive: executive,
		Pipeline:  pipeline,
		Capacity:  capacity,
		Clients:   clients,
		Trends:    trends,
	})
}
