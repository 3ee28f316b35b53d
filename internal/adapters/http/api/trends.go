// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/pulse/internal/domain/aggregate"
)

// TrendsDependencies defines the interface for the trends view.
type TrendsDependencies interface {
	Trends(ctx context.Context) (aggregate.Trends, error)
}

// TrendsHandler handles billing trend requests.
type TrendsHandler struct {
	deps TrendsDependencies
}

// NewTrendsHandler creates a new trends handler.
func NewTrendsHandler(deps TrendsDependencies) *TrendsHandler {
	return &TrendsHandler{deps: deps}
}

// HandleGetTrends handles GET /api/trends requests.
func (h *TrendsHandler) HandleGetTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.Trends(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
