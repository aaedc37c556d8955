// Package handlers implements gateway-svc's public JSON API: one route set
// per backend service (auth, solver, validation, analytics, simulation,
// history, report, audit) plus the gateway's own health/info surface. Most
// routes forward the request body verbatim to a backend and relay its
// response back untouched; a handful (CalculateLogistics, BatchSolve)
// compose several backend calls into one gateway-level operation.
package handlers

import (
	"net/http"
	"time"

	"mapfnet/pkg/config"
	"mapfnet/services/gateway-svc/internal/clients"
)

const statusHealthy = "HEALTHY"

// Handler serves every route the gateway exposes to external clients.
type Handler struct {
	clients   *clients.Manager
	config    *config.Config
	startedAt time.Time
	mux       *http.ServeMux
}

// New builds a Handler wired to cm and cfg.
func New(cm *clients.Manager, cfg *config.Config) *Handler {
	h := &Handler{clients: cm, config: cfg, startedAt: time.Now(), mux: http.NewServeMux()}

	h.mux.HandleFunc("/healthz", h.handleHealth)
	h.mux.HandleFunc("/v1/info", h.handleInfo)
	h.mux.HandleFunc("/v1/algorithms", h.handleAlgorithms)

	h.registerAuthRoutes()
	h.registerSolverRoutes()
	h.registerValidationRoutes()
	h.registerAnalyticsRoutes()
	h.registerSimulationRoutes()
	h.registerHistoryRoutes()
	h.registerReportRoutes()
	h.registerAuditRoutes()

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type serviceHealth struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

type healthResponse struct {
	Status    string                    `json:"status"`
	Timestamp time.Time                 `json:"timestamp"`
	Services  map[string]*serviceHealth `json:"services"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	results := h.clients.CheckHealth(r.Context())

	services := make(map[string]*serviceHealth, len(results))
	allHealthy := true
	for name, health := range results {
		services[name] = &serviceHealth{
			Name:      health.Name,
			Address:   health.Address,
			Status:    health.Status,
			LatencyMs: health.LatencyMs,
			Error:     health.Error,
		}
		if health.Status != statusHealthy {
			allHealthy = false
		}
	}

	status := statusHealthy
	if !allHealthy {
		status = "DEGRADED"
	}

	writeJSON(w, http.StatusOK, &healthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
	})
}

type infoResponse struct {
	Name          string            `json:"name"`
	Version       string            `json:"version"`
	Environment   string            `json:"environment"`
	StartedAt     time.Time         `json:"startedAt"`
	UptimeSeconds int64             `json:"uptimeSeconds"`
	Features      []string          `json:"features"`
	RateLimit     rateLimitInfo     `json:"rateLimit"`
	BuildInfo     map[string]string `json:"buildInfo"`
}

type rateLimitInfo struct {
	Enabled           bool `json:"enabled"`
	RequestsPerWindow int  `json:"requestsPerWindow"`
	BurstSize         int  `json:"burstSize"`
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &infoResponse{
		Name:          h.config.App.Name,
		Version:       h.config.App.Version,
		Environment:   h.config.App.Environment,
		StartedAt:     h.startedAt,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Features: []string{
			"optimization", "validation", "analytics",
			"simulation", "history", "reports", "audit", "auth",
		},
		RateLimit: rateLimitInfo{
			Enabled:           h.config.RateLimit.Enabled,
			RequestsPerWindow: h.config.RateLimit.Requests,
			BurstSize:         h.config.RateLimit.BurstSize,
		},
		BuildInfo: map[string]string{
			"build_time": h.startedAt.Format(time.RFC3339),
		},
	})
}
