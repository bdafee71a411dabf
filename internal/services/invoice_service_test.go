package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"paylink/internal/models/db_models"
	"paylink/internal/models/request_models"
	"paylink/internal/repositories"
	"paylink/pkg/utils"
)

func newTestService() InvoiceServiceInterface {
	return NewInvoiceService(repositories.NewMemoryInvoiceRepository())
}

func createRequest(name string, amounts ...int64) request_models.CreateInvoiceRequest {
	req := request_models.CreateInvoiceRequest{
		Client: request_models.ClientPayload{Name: name},
	}
	for _, a := range amounts {
		req.Services = append(req.Services, request_models.ServicePayload{
			Description: "Consulting",
			Amount:      decimal.NewFromInt(a),
		})
	}
	return req
}

func TestCreateInvoiceDerivesTotal(t *testing.T) {
	svc := newTestService()

	inv, err := svc.CreateInvoice(context.Background(), createRequest("John Smith", 100, 50))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if !inv.Total.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("total = %s, want 150", inv.Total)
	}
}

func TestCreateInvoiceDefaults(t *testing.T) {
	svc := newTestService()

	inv, err := svc.CreateInvoice(context.Background(), createRequest("John Smith", 850))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.Status != db_models.StatusPending {
		t.Fatalf("status = %s, want pending", inv.Status)
	}
	if inv.PaidAt != nil || inv.PaymentMethod != nil {
		t.Fatalf("fresh invoice has paid_at=%v method=%v, want nil/nil", inv.PaidAt, inv.PaymentMethod)
	}
	if inv.Currency != "USD" {
		t.Fatalf("currency = %s, want USD", inv.Currency)
	}
	if inv.ID == "" || inv.Slug == "" {
		t.Fatalf("missing identifiers: id=%q slug=%q", inv.ID, inv.Slug)
	}
}

func TestCreateInvoiceExplicitTotalOverride(t *testing.T) {
	svc := newTestService()

	override := decimal.NewFromInt(800)
	req := createRequest("John Smith", 850)
	req.Total = &override

	inv, err := svc.CreateInvoice(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if !inv.Total.Equal(override) {
		t.Fatalf("total = %s, want the explicit override 800", inv.Total)
	}
}

func TestCreateInvoiceValidation(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		name string
		req  request_models.CreateInvoiceRequest
	}{
		{"empty client name", createRequest("  ", 100)},
		{"no services", request_models.CreateInvoiceRequest{Client: request_models.ClientPayload{Name: "A"}}},
		{"negative amount", createRequest("A", -5)},
	}
	for _, tc := range cases {
		if _, err := svc.CreateInvoice(context.Background(), tc.req); !errors.Is(err, utils.ErrValidation) {
			t.Fatalf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}
}

func TestCreateInvoiceDistinctSlugsForSameClient(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.CreateInvoice(ctx, createRequest("John Smith", 100))
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.CreateInvoice(ctx, createRequest("John Smith", 200))
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.Slug == second.Slug {
		t.Fatalf("slug collision: both invoices got %q", first.Slug)
	}
}

func TestCreateInvoiceRejectsDuplicateExplicitSlug(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	req := createRequest("John Smith", 100)
	req.Slug = "john-deal"
	if _, err := svc.CreateInvoice(ctx, req); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := svc.CreateInvoice(ctx, req); !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("duplicate explicit slug: err = %v, want ErrValidation", err)
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	svc := newTestService()

	_, err := svc.UpdateStatus(context.Background(), "inv_missing", db_models.StatusPaid, "")
	if !errors.Is(err, utils.ErrInvoiceNotFound) {
		t.Fatalf("err = %v, want ErrInvoiceNotFound", err)
	}
}

func TestDeleteInvoice(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	inv, err := svc.CreateInvoice(ctx, createRequest("John Smith", 100))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	deleted, err := svc.DeleteInvoice(ctx, "inv_missing")
	if err != nil || deleted {
		t.Fatalf("delete unknown = (%v, %v), want (false, nil)", deleted, err)
	}

	deleted, err = svc.DeleteInvoice(ctx, inv.ID)
	if err != nil || !deleted {
		t.Fatalf("delete known = (%v, %v), want (true, nil)", deleted, err)
	}

	if _, err := svc.GetByID(ctx, inv.ID); !errors.Is(err, utils.ErrInvoiceNotFound) {
		t.Fatalf("get after delete: err = %v, want ErrInvoiceNotFound", err)
	}
}

func TestMarkPaidBySlug(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	inv, err := svc.CreateInvoice(ctx, createRequest("John Smith", 850))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	paid, updated, err := svc.MarkPaidBySlug(ctx, inv.Slug, "card-provider", "cs_123")
	if err != nil {
		t.Fatalf("MarkPaidBySlug: %v", err)
	}
	if !updated {
		t.Fatal("expected first delivery to transition the invoice")
	}
	if paid.Status != db_models.StatusPaid || paid.PaymentMethod == nil || *paid.PaymentMethod != "card-provider" {
		t.Fatalf("got %s / %v, want paid / card-provider", paid.Status, paid.PaymentMethod)
	}

	// duplicate delivery
	again, updated, err := svc.MarkPaidBySlug(ctx, inv.Slug, "card-provider", "cs_123")
	if err != nil {
		t.Fatalf("duplicate MarkPaidBySlug: %v", err)
	}
	if updated {
		t.Fatal("duplicate delivery must not re-mutate")
	}
	if !again.PaidAt.Equal(*paid.PaidAt) {
		t.Fatalf("paid_at drifted on duplicate: %v != %v", again.PaidAt, paid.PaidAt)
	}

	// unknown slug is acknowledged with no state change
	missing, updated, err := svc.MarkPaidBySlug(ctx, "no-such-slug", "card-provider", "cs_999")
	if err != nil || missing != nil || updated {
		t.Fatalf("unknown slug = (%v, %v, %v), want (nil, false, nil)", missing, updated, err)
	}
}

func TestListInvoicesInsertionOrder(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, _ := svc.CreateInvoice(ctx, createRequest("Alice", 10))
	b, _ := svc.CreateInvoice(ctx, createRequest("Bob", 20))

	invoices, err := svc.ListInvoices(ctx)
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(invoices) != 2 || invoices[0].ID != a.ID || invoices[1].ID != b.ID {
		t.Fatalf("unexpected order: %+v", invoices)
	}
}
