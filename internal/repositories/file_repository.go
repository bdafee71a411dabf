package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"paylink/internal/models/db_models"
	"paylink/pkg/utils"
)

// FileInvoiceRepository persists the whole invoice list as one JSON file.
// All operations run under a single mutex and writes go through a temp
// file plus rename, so a concurrent admin action and webhook cannot lose
// each other's update.
type FileInvoiceRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileInvoiceRepository(path string) *FileInvoiceRepository {
	return &FileInvoiceRepository{path: path}
}

func (f *FileInvoiceRepository) load() ([]db_models.Invoice, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []db_models.Invoice{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", utils.ErrStorage, f.path, err)
	}
	if len(data) == 0 {
		return []db_models.Invoice{}, nil
	}

	var invoices []db_models.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", utils.ErrStorage, f.path, err)
	}
	return invoices, nil
}

func (f *FileInvoiceRepository) save(invoices []db_models.Invoice) error {
	data, err := json.MarshalIndent(invoices, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", utils.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".invoices-*.json")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", utils.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write: %v", utils.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close: %v", utils.ErrStorage, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", utils.ErrStorage, err)
	}
	return nil
}

func (f *FileInvoiceRepository) CreateInvoice(ctx context.Context, inv *db_models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	invoices, err := f.load()
	if err != nil {
		return err
	}
	invoices = append(invoices, *inv.Clone())
	return f.save(invoices)
}

func (f *FileInvoiceRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	invoices, err := f.load()
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].Slug == slug {
			return invoices[i].Clone(), nil
		}
	}
	return nil, nil
}

func (f *FileInvoiceRepository) GetByID(ctx context.Context, id string) (*db_models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	invoices, err := f.load()
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return invoices[i].Clone(), nil
		}
	}
	return nil, nil
}

func (f *FileInvoiceRepository) ListInvoices(ctx context.Context) ([]db_models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.load()
}

func (f *FileInvoiceRepository) UpdateInvoice(ctx context.Context, id string, mutate func(inv *db_models.Invoice) error) (*db_models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	invoices, err := f.load()
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID != id {
			continue
		}
		updated := invoices[i].Clone()
		if err := mutate(updated); err != nil {
			return nil, err
		}
		invoices[i] = *updated
		if err := f.save(invoices); err != nil {
			return nil, err
		}
		return updated.Clone(), nil
	}
	return nil, utils.ErrInvoiceNotFound
}

func (f *FileInvoiceRepository) DeleteInvoice(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	invoices, err := f.load()
	if err != nil {
		return false, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			invoices = append(invoices[:i], invoices[i+1:]...)
			if err := f.save(invoices); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
