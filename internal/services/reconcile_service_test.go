package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"paylink/internal/models/db_models"
	"paylink/internal/repositories"
	"paylink/pkg/utils"
)

const testWebhookSecret = "whsec_test_secret"

type fakeMailService struct {
	sent chan string
}

func newFakeMailService() *fakeMailService {
	return &fakeMailService{sent: make(chan string, 4)}
}

func (f *fakeMailService) SendPaymentReceipt(to string, inv *db_models.Invoice) error {
	f.sent <- to
	return nil
}

func signedEvent(t *testing.T, slug string) ([]byte, string) {
	t.Helper()
	payload := []byte(fmt.Sprintf(
		`{"id":"evt_1","object":"event","api_version":%q,"type":"checkout.session.completed","data":{"object":{"id":"cs_test_1","object":"checkout.session","metadata":{"slug":%q}}}}`,
		stripe.APIVersion, slug))

	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, testWebhookSecret)
	header := fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
	return payload, header
}

func newReconcileFixture(t *testing.T) (InvoiceServiceInterface, ReconcileServiceInterface, *fakeMailService) {
	t.Helper()
	invoiceService := NewInvoiceService(repositories.NewMemoryInvoiceRepository())
	mail := newFakeMailService()
	reconcile := NewReconcileService(invoiceService, mail, ReconcileConfig{
		WebhookSecret: testWebhookSecret,
		ProviderName:  db_models.PaymentMethodStripe,
	})
	return invoiceService, reconcile, mail
}

func TestHandleProviderEventMarksInvoicePaid(t *testing.T) {
	invoiceService, reconcile, mail := newReconcileFixture(t)
	ctx := context.Background()

	req := createRequest("John Smith", 850)
	req.Client.Email = "john@email.com"
	inv, err := invoiceService.CreateInvoice(ctx, req)
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	payload, header := signedEvent(t, inv.Slug)
	if err := reconcile.HandleProviderEvent(ctx, payload, header); err != nil {
		t.Fatalf("HandleProviderEvent: %v", err)
	}

	paid, err := invoiceService.GetBySlug(ctx, inv.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if paid.Status != db_models.StatusPaid {
		t.Fatalf("status = %s, want paid", paid.Status)
	}
	if paid.PaymentMethod == nil || *paid.PaymentMethod != db_models.PaymentMethodStripe {
		t.Fatalf("payment_method = %v, want stripe", paid.PaymentMethod)
	}
	if paid.PaidAt == nil {
		t.Fatal("paid_at not set")
	}

	select {
	case to := <-mail.sent:
		if to != "john@email.com" {
			t.Fatalf("receipt sent to %q", to)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a receipt notification")
	}
}

func TestHandleProviderEventDuplicateDelivery(t *testing.T) {
	invoiceService, reconcile, mail := newReconcileFixture(t)
	ctx := context.Background()

	req := createRequest("John Smith", 850)
	req.Client.Email = "john@email.com"
	inv, err := invoiceService.CreateInvoice(ctx, req)
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	payload, header := signedEvent(t, inv.Slug)
	if err := reconcile.HandleProviderEvent(ctx, payload, header); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	<-mail.sent

	if err := reconcile.HandleProviderEvent(ctx, payload, header); err != nil {
		t.Fatalf("duplicate delivery must be acknowledged: %v", err)
	}
	select {
	case <-mail.sent:
		t.Fatal("duplicate delivery must not notify again")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandleProviderEventUnknownSlug(t *testing.T) {
	invoiceService, reconcile, _ := newReconcileFixture(t)
	ctx := context.Background()

	payload, header := signedEvent(t, "no-such-invoice")
	if err := reconcile.HandleProviderEvent(ctx, payload, header); err != nil {
		t.Fatalf("unknown slug must be acknowledged, got %v", err)
	}

	invoices, err := invoiceService.ListInvoices(ctx)
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(invoices) != 0 {
		t.Fatalf("store changed: %+v", invoices)
	}
}

func TestHandleProviderEventBadSignature(t *testing.T) {
	invoiceService, reconcile, _ := newReconcileFixture(t)
	ctx := context.Background()

	inv, err := invoiceService.CreateInvoice(ctx, createRequest("John Smith", 850))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	payload, _ := signedEvent(t, inv.Slug)
	err = reconcile.HandleProviderEvent(ctx, payload, "t=1,v1=deadbeef")
	if !errors.Is(err, utils.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	got, err := invoiceService.GetBySlug(ctx, inv.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Status != db_models.StatusPending {
		t.Fatalf("status = %s, rejected event must not change state", got.Status)
	}
}
