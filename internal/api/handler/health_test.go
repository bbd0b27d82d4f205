package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/crusher-sewa/materials-api/internal/core/ports"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(_ context.Context) error { return p.err }

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler("Crusher Material Sewa")

	c, rec := newJSONContext(t, http.MethodGet, "/api/health", "")
	if err := h.Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "ok" || resp["service"] != "Crusher Material Sewa" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestReadinessHandler_AllHealthy(t *testing.T) {
	h := NewReadinessHandler(map[string]ports.Pinger{
		"mongodb": &stubPinger{},
		"redis":   &stubPinger{},
	})

	c, rec := newJSONContext(t, http.MethodGet, "/api/health/ready", "")
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("expected ok status, got %q", resp.Status)
	}
	for name, check := range resp.Checks {
		if !check.Healthy {
			t.Fatalf("dependency %s reported unhealthy: %+v", name, check)
		}
	}
}

func TestReadinessHandler_DegradedOnFailedPing(t *testing.T) {
	h := NewReadinessHandler(map[string]ports.Pinger{
		"mongodb": &stubPinger{err: errors.New("no reachable servers")},
		"redis":   &stubPinger{},
	})

	c, rec := newJSONContext(t, http.MethodGet, "/api/health/ready", "")
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" {
		t.Fatalf("expected degraded status, got %q", resp.Status)
	}
	if resp.Checks["mongodb"].Healthy || resp.Checks["mongodb"].Error == "" {
		t.Fatalf("failing dependency not reported: %+v", resp.Checks["mongodb"])
	}
	if !resp.Checks["redis"].Healthy {
		t.Fatalf("healthy dependency misreported: %+v", resp.Checks["redis"])
	}
}
