package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"paylink/pkg/utils"
)

type ReconcileConfig struct {
	WebhookSecret string
	ProviderName  string
}

// ReconcileServiceInterface applies provider payment events to invoice
// state. Events are signature-verified before anything is trusted, and
// processing is idempotent so redelivery is safe.
type ReconcileServiceInterface interface {
	HandleProviderEvent(ctx context.Context, payload []byte, signatureHeader string) error
}

type reconcileService struct {
	invoiceService InvoiceServiceInterface
	mailService    IMailService
	cfg            ReconcileConfig
}

func NewReconcileService(invoiceService InvoiceServiceInterface, mailService IMailService, cfg ReconcileConfig) ReconcileServiceInterface {
	return &reconcileService{
		invoiceService: invoiceService,
		mailService:    mailService,
		cfg:            cfg,
	}
}

func (r *reconcileService) HandleProviderEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := webhook.ConstructEvent(payload, signatureHeader, r.cfg.WebhookSecret)
	if err != nil {
		logrus.WithError(err).Warn("webhook signature verification failed")
		return fmt.Errorf("%w: webhook signature verification failed", utils.ErrUnauthorized)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("%w: malformed checkout session payload", utils.ErrValidation)
		}
		return r.applyCheckoutCompleted(ctx, &sess)

	case "payment_intent.succeeded", "payment_intent.payment_failed":
		logrus.WithField("event", event.Type).Info("payment intent event acknowledged")
		return nil

	default:
		logrus.WithField("event", event.Type).Debug("unhandled event type")
		return nil
	}
}

func (r *reconcileService) applyCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	slug := sess.Metadata["slug"]
	if slug == "" {
		logrus.WithField("session", sess.ID).Warn("checkout session without invoice slug, discarded")
		return nil
	}

	inv, updated, err := r.invoiceService.MarkPaidBySlug(ctx, slug, r.cfg.ProviderName, sess.ID)
	if err != nil {
		return err
	}
	if inv == nil {
		// Unknown reference: acknowledge so the provider stops retrying.
		logrus.WithField("slug", slug).Warn("payment event for unknown invoice, discarded")
		return nil
	}
	if !updated {
		logrus.WithField("slug", slug).Info("duplicate payment event, invoice already paid")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"slug":   slug,
		"method": r.cfg.ProviderName,
	}).Info("invoice reconciled as paid")

	if r.mailService != nil && inv.Client.Email != "" {
		receipt := *inv
		go func() {
			if err := r.mailService.SendPaymentReceipt(receipt.Client.Email, &receipt); err != nil {
				logrus.WithError(err).WithField("slug", receipt.Slug).Warn("receipt notification failed")
			}
		}()
	}
	return nil
}
