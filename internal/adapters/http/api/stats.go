// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// Stats describes the serving state of the dashboard: whether a snapshot
// is loaded, how old it is and how many rows each sheet contributed.
type Stats struct {
	Started            bool    `json:"started"`
	CacheTTLSeconds    float64 `json:"cache_ttl_seconds"`
	SnapshotLoaded     bool    `json:"snapshot_loaded"`
	SnapshotID         string  `json:"snapshot_id,omitempty"`
	SnapshotAgeSeconds float64 `json:"snapshot_age_seconds"`
	EngagementRows     int     `json:"engagement_rows"`
	ProposalRows       int     `json:"proposal_rows"`
	SummaryRows        int     `json:"summary_rows"`
	ClientRows         int     `json:"client_rows"`
}

// StatsProvider supplies the serving state behind the operational endpoints.
type StatsProvider interface {
	GetStats() Stats
}

// StatsHandler serves the snapshot bookkeeping.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.GetStats())
}
