package store

import (
	"context"
	"sort"
	"sync"

	"github.com/satheeshds/invoicer/invoicing"
	"github.com/satheeshds/invoicer/models"
)

// Memory keeps everything in process. It backs tests and STORE_DRIVER=memory.
// Records are copied on the way in and out so a failed write never leaves a
// half-applied change behind.
type Memory struct {
	mu       sync.RWMutex
	invoices map[string]models.Invoice // by id
	settings map[string]models.Settings
	clients  map[string]models.Client
}

func NewMemory() *Memory {
	return &Memory{
		invoices: make(map[string]models.Invoice),
		settings: make(map[string]models.Settings),
		clients:  make(map[string]models.Client),
	}
}

func (m *Memory) FindByOwner(ctx context.Context, ownerID string) ([]models.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Invoice{}
	for _, inv := range m.invoices {
		if inv.OwnerID == ownerID {
			out = append(out, inv.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) FindByID(ctx context.Context, ownerID, id string) (*models.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inv, ok := m.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return nil, invoicing.ErrNotFound
	}
	c := inv.Clone()
	return &c, nil
}

func (m *Memory) Save(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.invoices[inv.ID]; ok && prev.OwnerID != inv.OwnerID {
		return nil, invoicing.ErrNotFound
	}
	for id, other := range m.invoices {
		if id != inv.ID && other.OwnerID == inv.OwnerID && other.Number == inv.Number {
			return nil, invoicing.ErrDuplicateNumber
		}
	}
	m.invoices[inv.ID] = inv.Clone()
	c := inv.Clone()
	return &c, nil
}

func (m *Memory) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return invoicing.ErrNotFound
	}
	delete(m.invoices, id)
	return nil
}

func (m *Memory) FindSettings(ctx context.Context, ownerID string) (*models.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.settings[ownerID]
	if !ok {
		return nil, invoicing.ErrNotFound
	}
	return &s, nil
}

func (m *Memory) InsertSettings(ctx context.Context, s *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.settings[s.OwnerID]; ok {
		return invoicing.ErrDuplicate
	}
	m.settings[s.OwnerID] = *s
	return nil
}

func (m *Memory) SaveSettings(ctx context.Context, s *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings[s.OwnerID] = *s
	return nil
}

func (m *Memory) ListClients(ctx context.Context, ownerID, search string) ([]models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Client{}
	for _, c := range m.clients {
		if c.OwnerID == ownerID && matchesClient(c, search) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) FindClient(ctx context.Context, ownerID, id string) (*models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.clients[id]
	if !ok || c.OwnerID != ownerID {
		return nil, invoicing.ErrNotFound
	}
	return &c, nil
}

func (m *Memory) SaveClient(ctx context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.clients[c.ID]; ok && prev.OwnerID != c.OwnerID {
		return invoicing.ErrNotFound
	}
	m.clients[c.ID] = *c
	return nil
}

func (m *Memory) DeleteClient(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clients[id]
	if !ok || c.OwnerID != ownerID {
		return invoicing.ErrNotFound
	}
	delete(m.clients, id)
	return nil
}

func (m *Memory) Close() error { return nil }
