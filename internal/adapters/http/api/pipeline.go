// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/pulse/internal/domain/aggregate"
)

// PipelineDependencies defines the interface for the pipeline view.
type PipelineDependencies interface {
	Pipeline(ctx context.Context) (aggregate.Pipeline, error)
}

// PipelineHandler handles pipeline health requests.
type PipelineHandler struct {
	deps PipelineDependencies
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(deps PipelineDependencies) *PipelineHandler {
	return &PipelineHandler{deps: deps}
}

// HandleGetPipeline handles GET /api/pipeline requests.
func (h *PipelineHandler) HandleGetPipeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.Pipeline(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
