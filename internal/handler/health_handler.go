package handler

import (
	"context"
	"fmt"
	"net/http"
)

// HealthHandler reports service and store health.
type HealthHandler struct {
	ping func(ctx context.Context) error
}

// NewHealthHandler creates a new HealthHandler instance. ping checks the
// store connection.
func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Check handles GET /healthz. A failing store is reported in the body but does
// not fail the endpoint.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if err := h.ping(r.Context()); err != nil {
		dbStatus = fmt.Sprintf("disconnected: %s", err)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": dbStatus,
	})
}
