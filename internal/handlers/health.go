package handlers

import (
	"context"
	"net/http"
	"time"

	applog "parfumerie/internal/log"
)

type healthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
	Error  string    `json:"error,omitempty"`
}

// Pinger reports whether the backing store is reachable.
type Pinger func(ctx context.Context) error

// Health returns a readiness handler suitable for infrastructure probes. A nil
// pinger always reports ok.
func Health(ping Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applog.Debug(r.Context(), "health check requested", "method", r.Method)
		resp := healthResponse{
			Status: "ok",
			Time:   time.Now().UTC(),
		}
		status := http.StatusOK

		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				applog.Warn(r.Context(), "health check failed", "error", err)
				resp.Status = "unavailable"
				resp.Error = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		writeJSON(w, status, resp)
	}
}
