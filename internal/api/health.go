package api

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status   string     `json:"status"`
	LastSync *time.Time `json:"lastSync,omitempty"`
}

// Health handles GET /health. It pings the cache store and reports the last
// completed sync pass; an unreachable store is a 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.readDB.PingContext(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}

	resp := healthResponse{Status: "ok"}
	if h.sync != nil {
		if last := h.sync.LastSync(); !last.IsZero() {
			resp.LastSync = &last
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
