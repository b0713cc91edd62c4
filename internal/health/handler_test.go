package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pwspen/vlmcar/internal/agent"
)

type stubLoop struct {
	state      agent.State
	iterations uint64
}

func (s *stubLoop) State() agent.State { return s.state }
func (s *stubLoop) Iterations() uint64 { return s.iterations }

type stubCounter struct{ n int }

func (s *stubCounter) Count() int { return s.n }

type stubProber struct{ available bool }

func (s *stubProber) IsAvailable(context.Context) bool { return s.available }

func performRequest(h *Handler, path string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e.Group("/v1"))
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLiveness(t *testing.T) {
	h := NewHandler(&stubLoop{}, &stubCounter{}, &stubProber{}, "test")

	rec := performRequest(h, "/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected ok, got %q", body["status"])
	}
}

func TestReadiness_Healthy(t *testing.T) {
	h := NewHandler(
		&stubLoop{state: agent.StatePacing, iterations: 7},
		&stubCounter{n: 2},
		&stubProber{available: true},
		"test",
	)

	rec := performRequest(h, "/v1/health/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", resp.Status)
	}
	if resp.Stats.Loop.State != "pacing" || resp.Stats.Loop.Iterations != 7 {
		t.Errorf("unexpected loop stats: %+v", resp.Stats.Loop)
	}
	if resp.Stats.Observers.Connected != 2 {
		t.Errorf("expected 2 observers, got %d", resp.Stats.Observers.Connected)
	}
	if resp.Components["oracle"].Status != StatusHealthy {
		t.Errorf("expected healthy oracle, got %+v", resp.Components["oracle"])
	}
}

func TestReadiness_OracleDownIsUnhealthy(t *testing.T) {
	h := NewHandler(
		&stubLoop{state: agent.StateSensing},
		&stubCounter{},
		&stubProber{available: false},
		"test",
	)

	rec := performRequest(h, "/v1/health/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", resp.Status)
	}
}

func TestReadiness_StoppedLoopDegrades(t *testing.T) {
	h := NewHandler(
		&stubLoop{state: agent.StateStopped},
		&stubCounter{},
		&stubProber{available: true},
		"test",
	)

	rec := performRequest(h, "/v1/health/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("degraded should still be 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", resp.Status)
	}
	if resp.Components["loop"].Error != "loop not running" {
		t.Errorf("unexpected loop component: %+v", resp.Components["loop"])
	}
}
