package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"paylink/internal/models/db_models"
	"paylink/internal/models/request_models"
	"paylink/internal/repositories"
	"paylink/pkg/utils"
)

const slugRetryLimit = 5

type InvoiceServiceInterface interface {
	CreateInvoice(ctx context.Context, req request_models.CreateInvoiceRequest) (*db_models.Invoice, error)
	GetBySlug(ctx context.Context, slug string) (*db_models.Invoice, error)
	GetByID(ctx context.Context, id string) (*db_models.Invoice, error)
	ListInvoices(ctx context.Context) ([]db_models.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status db_models.InvoiceStatus, method string) (*db_models.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) (bool, error)
	// MarkPaidBySlug is the reconciliation entry point. The bool reports
	// whether the invoice actually transitioned (false on duplicate
	// delivery). Unknown slugs return (nil, false, nil).
	MarkPaidBySlug(ctx context.Context, slug string, method string, providerRef string) (*db_models.Invoice, bool, error)
}

type InvoiceService struct {
	invoiceRepo repositories.InvoiceRepositoryInterface
}

func NewInvoiceService(invoiceRepo repositories.InvoiceRepositoryInterface) InvoiceServiceInterface {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
	}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, req request_models.CreateInvoiceRequest) (*db_models.Invoice, error) {
	if strings.TrimSpace(req.Client.Name) == "" {
		return nil, fmt.Errorf("%w: client name is required", utils.ErrValidation)
	}
	if len(req.Services) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", utils.ErrValidation)
	}

	services := make(db_models.Services, 0, len(req.Services))
	sum := decimal.Zero
	for _, svc := range req.Services {
		if strings.TrimSpace(svc.Description) == "" {
			return nil, fmt.Errorf("%w: service description is required", utils.ErrValidation)
		}
		if svc.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: service amount must not be negative", utils.ErrValidation)
		}
		services = append(services, db_models.Service{
			Description: svc.Description,
			Amount:      svc.Amount,
		})
		sum = sum.Add(svc.Amount)
	}

	// The total derives from the line items; a caller-supplied value is
	// an explicit override and is stored as given.
	total := sum
	if req.Total != nil {
		if req.Total.IsNegative() {
			return nil, fmt.Errorf("%w: total must not be negative", utils.ErrValidation)
		}
		total = *req.Total
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	slug, err := s.resolveSlug(ctx, req.Slug, req.Client.Name, now)
	if err != nil {
		return nil, err
	}

	inv := &db_models.Invoice{
		ID:   utils.NewInvoiceID(),
		Slug: slug,
		Client: db_models.Client{
			Name:  strings.TrimSpace(req.Client.Name),
			Email: strings.TrimSpace(req.Client.Email),
			Phone: strings.TrimSpace(req.Client.Phone),
		},
		Services:  services,
		Total:     total,
		Currency:  currency,
		Status:    db_models.StatusPending,
		CreatedAt: now,
		Notes:     req.Notes,
	}

	if err := s.invoiceRepo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// resolveSlug uses the caller-supplied slug when given (rejecting
// collisions) or generates one from the client name, retrying with a
// random suffix until it is free of collisions.
func (s *InvoiceService) resolveSlug(ctx context.Context, requested string, clientName string, issued time.Time) (string, error) {
	if requested != "" {
		slug := utils.Slugify(requested)
		if slug == "" {
			return "", fmt.Errorf("%w: slug contains no usable characters", utils.ErrValidation)
		}
		existing, err := s.invoiceRepo.GetBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return "", fmt.Errorf("%w: slug %q is already in use", utils.ErrValidation, slug)
		}
		return slug, nil
	}

	base := utils.SlugFromClientName(clientName, issued)
	candidate := base
	if candidate == "" {
		candidate = utils.RandomSlug(8)
	}
	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		existing, err := s.invoiceRepo.GetBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		if base != "" {
			candidate = base + "-" + utils.RandomSlug(4)
		} else {
			candidate = utils.RandomSlug(8)
		}
	}
	return "", fmt.Errorf("%w: could not generate a unique slug", utils.ErrValidation)
}

func (s *InvoiceService) GetBySlug(ctx context.Context, slug string) (*db_models.Invoice, error) {
	inv, err := s.invoiceRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, utils.ErrInvoiceNotFound
	}
	return inv, nil
}

func (s *InvoiceService) GetByID(ctx context.Context, id string) (*db_models.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, utils.ErrInvoiceNotFound
	}
	return inv, nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context) ([]db_models.Invoice, error) {
	invoices, err := s.invoiceRepo.ListInvoices(ctx)
	if err != nil {
		logrus.WithError(err).Error("listing invoices failed")
		return nil, err
	}
	return invoices, nil
}

func (s *InvoiceService) UpdateStatus(ctx context.Context, id string, status db_models.InvoiceStatus, method string) (*db_models.Invoice, error) {
	return s.invoiceRepo.UpdateInvoice(ctx, id, func(inv *db_models.Invoice) error {
		_, err := applyTransition(inv, status, method, time.Now().UTC())
		return err
	})
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) (bool, error) {
	return s.invoiceRepo.DeleteInvoice(ctx, id)
}

func (s *InvoiceService) MarkPaidBySlug(ctx context.Context, slug string, method string, providerRef string) (*db_models.Invoice, bool, error) {
	existing, err := s.invoiceRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, nil
	}

	changed := false
	inv, err := s.invoiceRepo.UpdateInvoice(ctx, existing.ID, func(inv *db_models.Invoice) error {
		var terr error
		changed, terr = applyTransition(inv, db_models.StatusPaid, method, time.Now().UTC())
		if terr != nil {
			return terr
		}
		if changed && providerRef != "" {
			receipt, _ := json.Marshal(map[string]string{"provider_ref": providerRef})
			inv.Metadata = receipt
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return inv, changed, nil
}
