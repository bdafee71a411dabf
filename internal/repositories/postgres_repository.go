package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paylink/internal/models/db_models"
	"paylink/pkg/utils"
)

type PostgresInvoiceRepository struct {
	db *gorm.DB
}

func NewPostgresInvoiceRepository(db *gorm.DB) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{db: db}
}

func (p *PostgresInvoiceRepository) CreateInvoice(ctx context.Context, inv *db_models.Invoice) error {
	if err := p.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("%w: create invoice: %v", utils.ErrStorage, err)
	}
	return nil
}

func (p *PostgresInvoiceRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Invoice, error) {
	var inv db_models.Invoice
	err := p.db.WithContext(ctx).Where("slug = ?", slug).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get by slug: %v", utils.ErrStorage, err)
	}
	return &inv, nil
}

func (p *PostgresInvoiceRepository) GetByID(ctx context.Context, id string) (*db_models.Invoice, error) {
	var inv db_models.Invoice
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get by id: %v", utils.ErrStorage, err)
	}
	return &inv, nil
}

func (p *PostgresInvoiceRepository) ListInvoices(ctx context.Context) ([]db_models.Invoice, error) {
	var invoices []db_models.Invoice
	err := p.db.WithContext(ctx).Order("created_at ASC").Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list invoices: %v", utils.ErrStorage, err)
	}
	return invoices, nil
}

// UpdateInvoice runs mutate inside a transaction holding a row lock, so
// the admin path and the webhook path serialize on the same invoice.
func (p *PostgresInvoiceRepository) UpdateInvoice(ctx context.Context, id string, mutate func(inv *db_models.Invoice) error) (*db_models.Invoice, error) {
	var updated *db_models.Invoice
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv db_models.Invoice
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&inv).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrInvoiceNotFound
			}
			return fmt.Errorf("%w: lock invoice: %v", utils.ErrStorage, err)
		}

		if err := mutate(&inv); err != nil {
			return err
		}
		if err := tx.Save(&inv).Error; err != nil {
			return fmt.Errorf("%w: save invoice: %v", utils.ErrStorage, err)
		}
		updated = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (p *PostgresInvoiceRepository) DeleteInvoice(ctx context.Context, id string) (bool, error) {
	res := p.db.WithContext(ctx).Where("id = ?", id).Delete(&db_models.Invoice{})
	if res.Error != nil {
		return false, fmt.Errorf("%w: delete invoice: %v", utils.ErrStorage, res.Error)
	}
	return res.RowsAffected > 0, nil
}
