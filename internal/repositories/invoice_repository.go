package repositories

import (
	"context"

	"paylink/internal/models/db_models"
)

// InvoiceRepositoryInterface is the persistence contract. All three
// backends behave identically from the caller's point of view: lookups
// return (nil, nil) for unknown keys, I/O failures surface wrapped in
// utils.ErrStorage, and nothing backend-specific leaks out.
type InvoiceRepositoryInterface interface {
	CreateInvoice(ctx context.Context, inv *db_models.Invoice) error
	GetBySlug(ctx context.Context, slug string) (*db_models.Invoice, error)
	GetByID(ctx context.Context, id string) (*db_models.Invoice, error)
	// ListInvoices returns invoices in insertion order; display ordering
	// belongs to callers.
	ListInvoices(ctx context.Context) ([]db_models.Invoice, error)
	// UpdateInvoice applies mutate to the stored record under the
	// backend's atomicity guarantee (lock or row-level transaction) and
	// returns the updated copy. Returns utils.ErrInvoiceNotFound for an
	// unknown id; an error from mutate aborts the update untouched.
	UpdateInvoice(ctx context.Context, id string, mutate func(inv *db_models.Invoice) error) (*db_models.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) (bool, error)
}
