package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"paylink/internal/models/db_models"
	"paylink/internal/models/response_models"
	"paylink/pkg/utils"
)

var minorUnitFactor = decimal.NewFromInt(100)

type CheckoutConfig struct {
	SecretKey    string
	AppBaseURL   string // e.g. https://pay.example.com
	ProviderName string // stored on the invoice as payment_method
}

type CheckoutServiceInterface interface {
	CreateCheckoutSession(ctx context.Context, slug string) (*response_models.CreateCheckoutResponse, error)
}

type checkoutService struct {
	invoiceService InvoiceServiceInterface
	cfg            CheckoutConfig
}

func NewCheckoutService(invoiceService InvoiceServiceInterface, cfg CheckoutConfig) CheckoutServiceInterface {
	stripe.Key = cfg.SecretKey
	return &checkoutService{
		invoiceService: invoiceService,
		cfg:            cfg,
	}
}

// CreateCheckoutSession builds a hosted checkout session with one line
// item per invoiced service, amounts in minor units.
func (s *checkoutService) CreateCheckoutSession(ctx context.Context, slug string) (*response_models.CreateCheckoutResponse, error) {
	inv, err := s.invoiceService.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if inv.Status == db_models.StatusPaid {
		return nil, utils.ErrAlreadyPaid
	}
	if inv.Status == db_models.StatusCancelled {
		return nil, fmt.Errorf("%w: invoice is cancelled", utils.ErrValidation)
	}

	baseURL := strings.TrimRight(s.cfg.AppBaseURL, "/")
	currency := strings.ToLower(inv.Currency)

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(inv.Services))
	for _, svc := range inv.Services {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(svc.Description),
				},
				UnitAmount: stripe.Int64(svc.Amount.Mul(minorUnitFactor).Round(0).IntPart()),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(fmt.Sprintf("%s/pay/%s?paid=true", baseURL, inv.Slug)),
		CancelURL:          stripe.String(fmt.Sprintf("%s/pay/%s", baseURL, inv.Slug)),
	}
	params.AddMetadata("invoice_id", inv.ID)
	params.AddMetadata("slug", inv.Slug)
	if inv.Client.Email != "" {
		params.CustomerEmail = stripe.String(inv.Client.Email)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &response_models.CreateCheckoutResponse{
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}
