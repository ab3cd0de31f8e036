package admin

import (
	"net/http"

	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/service"
)

// StatsHandler serves the dashboard aggregate.
type StatsHandler struct {
	stats service.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get handles GET /api/admin/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetStoreStats(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, stats)
}
