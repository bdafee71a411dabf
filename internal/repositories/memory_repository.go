package repositories

import (
	"context"
	"sync"

	"paylink/internal/models/db_models"
	"paylink/pkg/utils"
)

// MemoryInvoiceRepository keeps invoices in a mutex-guarded map. Every
// instance is independent so tests can run isolated stores in parallel.
type MemoryInvoiceRepository struct {
	mu     sync.RWMutex
	byID   map[string]*db_models.Invoice
	bySlug map[string]string
	order  []string
}

func NewMemoryInvoiceRepository() *MemoryInvoiceRepository {
	return &MemoryInvoiceRepository{
		byID:   make(map[string]*db_models.Invoice),
		bySlug: make(map[string]string),
	}
}

func (m *MemoryInvoiceRepository) CreateInvoice(ctx context.Context, inv *db_models.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID[inv.ID] = inv.Clone()
	m.bySlug[inv.Slug] = inv.ID
	m.order = append(m.order, inv.ID)
	return nil
}

func (m *MemoryInvoiceRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, nil
	}
	return m.byID[id].Clone(), nil
}

func (m *MemoryInvoiceRepository) GetByID(ctx context.Context, id string) (*db_models.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inv, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return inv.Clone(), nil
}

func (m *MemoryInvoiceRepository) ListInvoices(ctx context.Context) ([]db_models.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]db_models.Invoice, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.byID[id].Clone())
	}
	return out, nil
}

func (m *MemoryInvoiceRepository) UpdateInvoice(ctx context.Context, id string, mutate func(inv *db_models.Invoice) error) (*db_models.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.byID[id]
	if !ok {
		return nil, utils.ErrInvoiceNotFound
	}

	updated := inv.Clone()
	if err := mutate(updated); err != nil {
		return nil, err
	}
	m.byID[id] = updated
	return updated.Clone(), nil
}

func (m *MemoryInvoiceRepository) DeleteInvoice(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	delete(m.byID, id)
	delete(m.bySlug, inv.Slug)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true, nil
}
