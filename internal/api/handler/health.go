package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports liveness. It never checks dependencies so orchestrators do
// not restart the process on a database hiccup.
func Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready returns a readiness handler that pings the primary datastore with a
// short deadline. A failing ping yields 503 so load balancers drain traffic.
func Ready(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			Error(w, http.StatusServiceUnavailable, "not_ready", "datastore unreachable")
			return
		}
		JSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
