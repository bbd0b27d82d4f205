package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crusher-sewa/materials-api/internal/core/ports"
)

const probeTimeout = 3 * time.Second

// HealthHandler handles GET /api/health — liveness probe.
type HealthHandler struct {
	service string
}

func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.service,
	})
}

// ReadinessHandler handles GET /api/health/ready. It pings every registered
// dependency and answers 503 "degraded" when any of them is unreachable.
type ReadinessHandler struct {
	deps map[string]ports.Pinger
}

// NewReadinessHandler takes the dependencies to probe, keyed by the name
// they are reported under.
func NewReadinessHandler(deps map[string]ports.Pinger) *ReadinessHandler {
	return &ReadinessHandler{deps: deps}
}

type probeResult struct {
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]probeResult `json:"checks"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	checks := make(map[string]probeResult, len(h.deps))
	ready := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			checks[name] = probeResult{Error: err.Error()}
			ready = false
			continue
		}
		checks[name] = probeResult{Healthy: true}
	}

	if !ready {
		return c.JSON(http.StatusServiceUnavailable, readinessResponse{Status: "degraded", Checks: checks})
	}
	return c.JSON(http.StatusOK, readinessResponse{Status: "ok", Checks: checks})
}
