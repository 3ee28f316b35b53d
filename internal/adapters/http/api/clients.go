// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/pulse/internal/domain/aggregate"
)

// ClientsDependencies defines the interface for the client scoring view.
type ClientsDependencies interface {
	Clients(ctx context.Context, office string) (aggregate.ClientScores, error)
	KnownOffice(name string) bool
}

// ClientsHandler handles client scoring requests.
type ClientsHandler struct {
	deps ClientsDependencies
}

// NewClientsHandler creates a new clients handler.
func NewClientsHandler(deps ClientsDependencies) *ClientsHandler {
	return &ClientsHandler{deps: deps}
}

// HandleGetClients handles GET /api/clients?office=NAME requests. Without
// an office parameter the whole book of clients is scored.
func (h *ClientsHandler) HandleGetClients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	office := r.URL.Query().Get("office")
	if office != "" && !h.deps.KnownOffice(office) {
		writeError(w, http.StatusBadRequest, "unknown_office", ErrUnknownOffice)
		return
	}
	view, err := h.deps.Clients(r.Context(), office)
	if err != nil {
		writeError(w, http.StatusBadGateway, "bad_gateway", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
