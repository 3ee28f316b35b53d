// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/pulse/internal/domain/aggregate"
)

// CapacityDependencies defines the interface for the capacity view.
type CapacityDependencies interface {
	Capacity(ctx context.Context) (map[string]aggregate.TeamCapacity, error)
}

// CapacityHandler handles team capacity requests.
type CapacityHandler struct {
	deps CapacityDependencies
}

// NewCapacityHandler creates a new capacity handler.
func NewCapacityHandler(deps CapacityDependencies) *CapacityHandler {
	return &CapacityHandler{deps: deps}
}

// HandleGetCapacity handles GET /api/capacity requests.
func (h *CapacityHandler) HandleGetCapacity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.Capacity(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
