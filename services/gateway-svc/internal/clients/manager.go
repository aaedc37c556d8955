package clients

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"mapfnet/pkg/client"
	"mapfnet/pkg/config"
	"mapfnet/pkg/logger"
)

// Manager owns one JSON client per backend service, replacing the teacher's
// pool of grpc.ClientConn now that the RPCs travel over plain HTTP.
type Manager struct {
	mu sync.RWMutex

	auth       *AuthClient
	solver     *SolverClient
	analytics  *AnalyticsClient
	validation *ValidationClient
	simulation *SimulationClient
	history    *HistoryClient
	report     *ReportClient
	audit      *AuditClient

	config *Config
}

// Config holds the endpoint for every backend service the gateway fronts.
type Config struct {
	Auth       config.ServiceEndpoint
	Solver     config.ServiceEndpoint
	Analytics  config.ServiceEndpoint
	Validation config.ServiceEndpoint
	Simulation config.ServiceEndpoint
	History    config.ServiceEndpoint
	Report     config.ServiceEndpoint
	Audit      config.ServiceEndpoint
}

// baseURL turns a ServiceEndpoint into the http:// URL the JSON client dials.
func baseURL(endpoint config.ServiceEndpoint) string {
	scheme := "http"
	if endpoint.TLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, endpoint.Address())
}

func clientConfig(endpoint config.ServiceEndpoint) client.Config {
	cfg := client.DefaultConfig(baseURL(endpoint))
	if endpoint.Timeout > 0 {
		cfg.Timeout = endpoint.Timeout
	}
	if endpoint.MaxRetries > 0 {
		cfg.MaxRetries = endpoint.MaxRetries
	}
	if endpoint.RetryBackoff > 0 {
		cfg.RetryBackoff = endpoint.RetryBackoff
	}
	return cfg
}

// NewManager builds a Manager wired to every backend endpoint in cfg.
func NewManager(_ context.Context, cfg *Config) (*Manager, error) {
	m := &Manager{config: cfg}

	m.auth = NewAuthClient(cfg.Auth)
	logger.Log.Info("Configured auth-svc client", "address", cfg.Auth.Address())

	m.solver = NewSolverClient(cfg.Solver)
	logger.Log.Info("Configured solver-svc client", "address", cfg.Solver.Address())

	m.analytics = NewAnalyticsClient(cfg.Analytics)
	logger.Log.Info("Configured analytics-svc client", "address", cfg.Analytics.Address())

	m.validation = NewValidationClient(cfg.Validation)
	logger.Log.Info("Configured validation-svc client", "address", cfg.Validation.Address())

	m.simulation = NewSimulationClient(cfg.Simulation)
	logger.Log.Info("Configured simulation-svc client", "address", cfg.Simulation.Address())

	m.history = NewHistoryClient(cfg.History)
	logger.Log.Info("Configured history-svc client", "address", cfg.History.Address())

	m.report = NewReportClient(cfg.Report)
	logger.Log.Info("Configured report-svc client", "address", cfg.Report.Address())

	m.audit = NewAuditClient(cfg.Audit)
	logger.Log.Info("Configured audit-svc client", "address", cfg.Audit.Address())

	return m, nil
}

func (m *Manager) Auth() *AuthClient             { return m.auth }
func (m *Manager) Solver() *SolverClient         { return m.solver }
func (m *Manager) Analytics() *AnalyticsClient   { return m.analytics }
func (m *Manager) Validation() *ValidationClient { return m.validation }
func (m *Manager) Simulation() *SimulationClient { return m.simulation }
func (m *Manager) History() *HistoryClient       { return m.history }
func (m *Manager) Report() *ReportClient         { return m.report }
func (m *Manager) Audit() *AuditClient           { return m.audit }

// ServiceHealth reports one backend's reachability.
type ServiceHealth struct {
	Name      string
	Address   string
	Status    string
	LatencyMs int64
	Error     string
}

// CheckHealth polls every backend's /healthz concurrently.
func (m *Manager) CheckHealth(ctx context.Context) map[string]*ServiceHealth {
	results := make(map[string]*ServiceHealth)

	services := []struct {
		name    string
		address string
	}{
		{"auth", m.config.Auth.Address()},
		{"solver", m.config.Solver.Address()},
		{"analytics", m.config.Analytics.Address()},
		{"validation", m.config.Validation.Address()},
		{"simulation", m.config.Simulation.Address()},
		{"history", m.config.History.Address()},
		{"report", m.config.Report.Address()},
		{"audit", m.config.Audit.Address()},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	hc := &http.Client{Timeout: 5 * time.Second}

	for _, svc := range services {
		wg.Add(1)
		go func(name, address string) {
			defer wg.Done()

			health := &ServiceHealth{Name: name, Address: address}
			start := time.Now()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+address+"/healthz", nil)
			if err != nil {
				health.Status = "UNHEALTHY"
				health.Error = err.Error()
			} else {
				resp, err := hc.Do(req)
				health.LatencyMs = time.Since(start).Milliseconds()
				if err != nil {
					health.Status = "UNHEALTHY"
					health.Error = err.Error()
				} else {
					_ = resp.Body.Close()
					if resp.StatusCode == http.StatusOK {
						health.Status = "HEALTHY"
					} else {
						health.Status = "UNHEALTHY"
						health.Error = fmt.Sprintf("status %d", resp.StatusCode)
					}
				}
			}

			mu.Lock()
			results[name] = health
			mu.Unlock()
		}(svc.name, svc.address)
	}

	wg.Wait()
	return results
}

// Close is a no-op now that clients hold no long-lived connection, kept so
// callers don't need to change their shutdown sequence.
func (m *Manager) Close() error {
	return nil
}
