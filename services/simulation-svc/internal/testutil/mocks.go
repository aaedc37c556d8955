// Package testutil provides shared fakes for simulation-svc's unit tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"mapfnet/services/simulation-svc/internal/repository"
)

// ================== Mock Repository ==================

type MockSimulationRepository struct {
	mu          sync.RWMutex
	simulations map[string]*repository.Simulation

	// For controlling behavior
	CreateErr    error
	GetByIDErr   error
	DeleteErr    error
	ListErr      error
	GetByUserErr error

	// Call tracking
	CreateCalls      int
	GetByIDCalls     int
	DeleteCalls      int
	ListCalls        int
	ListByUserCalls  int
	GetByUserIDCalls int
}

func NewMockSimulationRepository() *MockSimulationRepository {
	return &MockSimulationRepository{
		simulations: make(map[string]*repository.Simulation),
	}
}

func (m *MockSimulationRepository) Create(ctx context.Context, sim *repository.Simulation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++

	if m.CreateErr != nil {
		return m.CreateErr
	}

	sim.ID = generateID()
	sim.CreatedAt = time.Now()
	sim.UpdatedAt = time.Now()
	m.simulations[sim.ID] = sim
	return nil
}

func (m *MockSimulationRepository) GetByID(ctx context.Context, id string) (*repository.Simulation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.GetByIDCalls++

	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}

	sim, ok := m.simulations[id]
	if !ok {
		return nil, repository.ErrSimulationNotFound
	}
	return sim, nil
}

func (m *MockSimulationRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++

	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	if _, ok := m.simulations[id]; !ok {
		return repository.ErrSimulationNotFound
	}
	delete(m.simulations, id)
	return nil
}

func (m *MockSimulationRepository) List(
	ctx context.Context,
	userID string,
	simType string,
	opts *repository.ListOptions,
) ([]*repository.SimulationSummary, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.ListCalls++

	if m.ListErr != nil {
		return nil, 0, m.ListErr
	}

	var results []*repository.SimulationSummary
	for _, sim := range m.simulations {
		if sim.UserID != userID {
			continue
		}
		if simType != "" && sim.SimulationType != simType {
			continue
		}
		results = append(results, &repository.SimulationSummary{
			ID:             sim.ID,
			Name:           sim.Name,
			SimulationType: sim.SimulationType,
			CreatedAt:      sim.CreatedAt,
			Tags:           sim.Tags,
		})
	}

	total := int64(len(results))
	if opts != nil {
		start := opts.Offset
		end := opts.Offset + opts.Limit
		if start > len(results) {
			start = len(results)
		}
		if end > len(results) {
			end = len(results)
		}
		results = results[start:end]
	}

	return results, total, nil
}

func (m *MockSimulationRepository) ListByUser(
	ctx context.Context,
	userID string,
	opts *repository.ListOptions,
) ([]*repository.SimulationSummary, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.ListByUserCalls++

	return m.List(ctx, userID, "", opts)
}

func (m *MockSimulationRepository) GetByUserAndID(
	ctx context.Context,
	userID, id string,
) (*repository.Simulation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.GetByUserIDCalls++

	if m.GetByUserErr != nil {
		return nil, m.GetByUserErr
	}

	sim, ok := m.simulations[id]
	if !ok {
		return nil, repository.ErrSimulationNotFound
	}
	if sim.UserID != userID {
		return nil, repository.ErrAccessDenied
	}
	return sim, nil
}

// AddSimulation inserts sim directly, bypassing Create's error hooks.
func (m *MockSimulationRepository) AddSimulation(sim *repository.Simulation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sim.ID == "" {
		sim.ID = generateID()
	}
	m.simulations[sim.ID] = sim
}

var idCounter int
var idMu sync.Mutex

func generateID() string {
	idMu.Lock()
	defer idMu.Unlock()
	idCounter++
	return "sim_" + string(rune('a'+idCounter-1))
}

// ================== Mock Database ==================

type MockDB struct {
	mu sync.RWMutex

	ExecResult  pgconn.CommandTag
	ExecErr     error
	QueryRows   pgx.Rows
	QueryErr    error
	QueryRowRow pgx.Row
	BeginTxTx   pgx.Tx
	BeginTxErr  error
	PingErr     error

	ExecCalls     int
	QueryCalls    int
	QueryRowCalls int
}

func NewMockDB() *MockDB {
	return &MockDB{}
}

func (m *MockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExecCalls++
	return m.ExecResult, m.ExecErr
}

func (m *MockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCalls++
	return m.QueryRows, m.QueryErr
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryRowCalls++
	return m.QueryRowRow
}

func (m *MockDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return m.BeginTxTx, m.BeginTxErr
}

func (m *MockDB) Close() {}

func (m *MockDB) Ping(ctx context.Context) error {
	return m.PingErr
}
