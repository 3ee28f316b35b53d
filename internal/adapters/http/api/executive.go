// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/pulse/internal/domain/aggregate"
)

// ExecutiveDependencies defines the interface for the executive view.
type ExecutiveDependencies interface {
	Executive(ctx context.Context) (aggregate.ExecutiveSummary, error)
}

// ExecutiveHandler handles executive summary requests.
type ExecutiveHandler struct {
	deps ExecutiveDependencies
}

// NewExecutiveHandler creates a new executive handler.
func NewExecutiveHandler(deps ExecutiveDependencies) *ExecutiveHandler {
	return &ExecutiveHandler{deps: deps}
}

// HandleGetExecutive handles GET /api/executive requests.
func (h *ExecutiveHandler) HandleGetExecutive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.Executive(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
