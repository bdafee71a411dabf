package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"paylink/internal/models/db_models"
	"paylink/pkg/utils"
)

func testInvoice(id, slug string) *db_models.Invoice {
	return &db_models.Invoice{
		ID:   id,
		Slug: slug,
		Client: db_models.Client{
			Name:  "John Smith",
			Email: "john@email.com",
		},
		Services: db_models.Services{
			{Description: "Consulting", Amount: decimal.NewFromInt(850)},
		},
		Total:     decimal.NewFromInt(850),
		Currency:  "USD",
		Status:    db_models.StatusPending,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// runRepositoryContract checks the behavior every backend must share.
func runRepositoryContract(t *testing.T, repo InvoiceRepositoryInterface) {
	t.Helper()
	ctx := context.Background()

	if err := repo.CreateInvoice(ctx, testInvoice("inv_1", "john-smith-feb2026")); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if err := repo.CreateInvoice(ctx, testInvoice("inv_2", "jane-doe-feb2026")); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	bySlug, err := repo.GetBySlug(ctx, "john-smith-feb2026")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if bySlug == nil || bySlug.ID != "inv_1" {
		t.Fatalf("GetBySlug = %+v, want inv_1", bySlug)
	}

	missing, err := repo.GetBySlug(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("GetBySlug unknown = (%v, %v), want (nil, nil)", missing, err)
	}

	byID, err := repo.GetByID(ctx, "inv_2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID == nil || byID.Slug != "jane-doe-feb2026" {
		t.Fatalf("GetByID = %+v", byID)
	}

	list, err := repo.ListInvoices(ctx)
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(list) != 2 || list[0].ID != "inv_1" || list[1].ID != "inv_2" {
		t.Fatalf("list order = %+v, want insertion order", list)
	}

	updated, err := repo.UpdateInvoice(ctx, "inv_1", func(inv *db_models.Invoice) error {
		now := time.Now().UTC()
		method := db_models.PaymentMethodManual
		inv.Status = db_models.StatusPaid
		inv.PaidAt = &now
		inv.PaymentMethod = &method
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}
	if updated.Status != db_models.StatusPaid || updated.PaidAt == nil {
		t.Fatalf("update not applied: %+v", updated)
	}

	reread, err := repo.GetByID(ctx, "inv_1")
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if reread.Status != db_models.StatusPaid {
		t.Fatalf("update not persisted: %+v", reread)
	}

	if _, err := repo.UpdateInvoice(ctx, "inv_missing", func(inv *db_models.Invoice) error { return nil }); !errors.Is(err, utils.ErrInvoiceNotFound) {
		t.Fatalf("update unknown id: err = %v, want ErrInvoiceNotFound", err)
	}

	// an error from mutate aborts the update
	sentinel := errors.New("abort")
	if _, err := repo.UpdateInvoice(ctx, "inv_2", func(inv *db_models.Invoice) error {
		inv.Status = db_models.StatusCancelled
		return sentinel
	}); !errors.Is(err, sentinel) {
		t.Fatalf("mutate error not propagated: %v", err)
	}
	untouched, _ := repo.GetByID(ctx, "inv_2")
	if untouched.Status != db_models.StatusPending {
		t.Fatalf("aborted update leaked: %+v", untouched)
	}

	deleted, err := repo.DeleteInvoice(ctx, "inv_missing")
	if err != nil || deleted {
		t.Fatalf("delete unknown = (%v, %v), want (false, nil)", deleted, err)
	}
	deleted, err = repo.DeleteInvoice(ctx, "inv_2")
	if err != nil || !deleted {
		t.Fatalf("delete known = (%v, %v), want (true, nil)", deleted, err)
	}
	gone, err := repo.GetByID(ctx, "inv_2")
	if err != nil || gone != nil {
		t.Fatalf("GetByID after delete = (%v, %v), want (nil, nil)", gone, err)
	}
}

func TestMemoryRepositoryContract(t *testing.T) {
	runRepositoryContract(t, NewMemoryInvoiceRepository())
}

func TestFileRepositoryContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.json")
	runRepositoryContract(t, NewFileInvoiceRepository(path))
}

func TestMemoryRepositoryReadsAreIsolated(t *testing.T) {
	repo := NewMemoryInvoiceRepository()
	ctx := context.Background()

	if err := repo.CreateInvoice(ctx, testInvoice("inv_1", "john-smith-feb2026")); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	inv, err := repo.GetByID(ctx, "inv_1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	inv.Status = db_models.StatusCancelled
	inv.Services[0].Description = "tampered"

	fresh, err := repo.GetByID(ctx, "inv_1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.Status != db_models.StatusPending || fresh.Services[0].Description != "Consulting" {
		t.Fatalf("mutation of a read copy leaked into the store: %+v", fresh)
	}
}

func TestFileRepositoryPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.json")
	ctx := context.Background()

	first := NewFileInvoiceRepository(path)
	if err := first.CreateInvoice(ctx, testInvoice("inv_1", "john-smith-feb2026")); err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	second := NewFileInvoiceRepository(path)
	inv, err := second.GetBySlug(ctx, "john-smith-feb2026")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if inv == nil || inv.ID != "inv_1" {
		t.Fatalf("reopened store lost the invoice: %+v", inv)
	}
	if !inv.Total.Equal(decimal.NewFromInt(850)) {
		t.Fatalf("total = %s, want 850", inv.Total)
	}
	if inv.CreatedAt.IsZero() {
		t.Fatal("created_at not round-tripped")
	}
}
