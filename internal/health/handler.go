package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pwspen/vlmcar/internal/agent"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

type ComponentStatus struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type RuntimeStats struct {
	Goroutines    int    `json:"goroutines"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
	MemorySysMB   uint64 `json:"memory_sys_mb"`
	NumGC         uint32 `json:"num_gc"`
}

type LoopStats struct {
	State      string `json:"state"`
	Iterations uint64 `json:"iterations"`
}

type ObserverStats struct {
	Connected int `json:"connected"`
}

type Stats struct {
	Loop      LoopStats     `json:"loop"`
	Observers ObserverStats `json:"observers"`
	Runtime   RuntimeStats  `json:"runtime"`
}

type HealthResponse struct {
	Status        Status                     `json:"status"`
	Timestamp     time.Time                  `json:"timestamp"`
	Version       string                     `json:"version"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Stats         Stats                      `json:"stats"`
	Components    map[string]ComponentStatus `json:"components"`
}

// LoopInfo is the slice of the control loop the handler reports on.
type LoopInfo interface {
	State() agent.State
	Iterations() uint64
}

// ObserverCounter reports how many observers are attached to the hub.
type ObserverCounter interface {
	Count() int
}

// Prober checks that the decision endpoint answers at all.
type Prober interface {
	IsAvailable(ctx context.Context) bool
}

type Handler struct {
	loop      LoopInfo
	observers ObserverCounter
	oracle    Prober
	version   string
	startTime time.Time
}

func NewHandler(loop LoopInfo, observers ObserverCounter, oracle Prober, version string) *Handler {
	return &Handler{
		loop:      loop,
		observers: observers,
		oracle:    oracle,
		version:   version,
		startTime: time.Now(),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Liveness)
	g.GET("/health/ready", h.Readiness)
}

func (h *Handler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *Handler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	components := map[string]ComponentStatus{
		"oracle": h.checkOracle(ctx),
		"loop":   h.checkLoop(),
	}

	overallStatus := h.computeOverallStatus(components)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	resp := HealthResponse{
		Status:        overallStatus,
		Timestamp:     time.Now().UTC(),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Stats: Stats{
			Loop: LoopStats{
				State:      h.loop.State().String(),
				Iterations: h.loop.Iterations(),
			},
			Observers: ObserverStats{
				Connected: h.observers.Count(),
			},
			Runtime: RuntimeStats{
				Goroutines:    runtime.NumGoroutine(),
				MemoryAllocMB: memStats.Alloc / 1024 / 1024,
				MemorySysMB:   memStats.Sys / 1024 / 1024,
				NumGC:         memStats.NumGC,
			},
		},
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, resp)
}

func (h *Handler) checkOracle(ctx context.Context) ComponentStatus {
	start := time.Now()
	if h.oracle == nil {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "oracle not configured",
		}
	}

	if !h.oracle.IsAvailable(ctx) {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "endpoint unreachable",
		}
	}

	return ComponentStatus{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (h *Handler) checkLoop() ComponentStatus {
	start := time.Now()
	if h.loop.State() == agent.StateStopped {
		return ComponentStatus{
			Status:    StatusDegraded,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "loop not running",
		}
	}

	return ComponentStatus{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (h *Handler) computeOverallStatus(components map[string]ComponentStatus) Status {
	// The oracle is the one dependency the car cannot drive without.
	if status, ok := components["oracle"]; ok && status.Status == StatusUnhealthy {
		return StatusUnhealthy
	}

	for _, status := range components {
		if status.Status != StatusHealthy {
			return StatusDegraded
		}
	}

	return StatusHealthy
}
