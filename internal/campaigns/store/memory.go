package store

import (
	"context"
	"sync"

	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
)

// Memory is an in-process Store used by tests and local development.
// Each instance is fully isolated, so test cases construct their own.
type Memory struct {
	mu       sync.RWMutex
	nextID   int64
	order    []int64
	projects map[int64]domain.Project
	backers  map[int64][]domain.Contribution
	events   map[int64][]domain.Event
}

func NewMemory() *Memory {
	return &Memory{
		nextID:   1,
		projects: make(map[int64]domain.Project),
		backers:  make(map[int64][]domain.Contribution),
		events:   make(map[int64][]domain.Event),
	}
}

func (m *Memory) CreateProject(_ context.Context, p *domain.Project) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = m.nextID
	m.nextID++
	m.projects[p.ID] = *p
	m.order = append(m.order, p.ID)
	return p.ID, nil
}

func (m *Memory) GetProject(_ context.Context, id int64) (domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.projects[id]
	if !ok {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	return p, nil
}

func (m *Memory) ListProjects(_ context.Context) ([]domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Project, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.projects[id])
	}
	return out, nil
}

func (m *Memory) AddContribution(_ context.Context, projectID int64, c domain.Contribution) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[projectID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.CurrentFunding += c.Amount
	p.TotalRaised += c.Amount
	m.projects[projectID] = p
	m.backers[projectID] = append(m.backers[projectID], c)
	return nil
}

func (m *Memory) ListBackers(_ context.Context, projectID int64) ([]domain.Contribution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.projects[projectID]; !ok {
		return nil, domain.ErrProjectNotFound
	}
	ledger := m.backers[projectID]
	out := make([]domain.Contribution, len(ledger))
	copy(out, ledger)
	return out, nil
}

func (m *Memory) SetFunding(_ context.Context, projectID int64, amount domain.Money) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[projectID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.CurrentFunding = amount
	m.projects[projectID] = p
	return nil
}

func (m *Memory) AppendEvent(_ context.Context, e domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events[e.ProjectID] = append(m.events[e.ProjectID], e)
	return nil
}

func (m *Memory) ListEvents(_ context.Context, projectID int64) ([]domain.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	log := m.events[projectID]
	out := make([]domain.Event, len(log))
	copy(out, log)
	return out, nil
}
