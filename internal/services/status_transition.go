package services

import (
	"fmt"
	"time"

	"paylink/internal/models/db_models"
	"paylink/pkg/utils"
)

// applyTransition enforces the invoice lifecycle on inv in place:
//
//	pending -> paid       stamps paid_at and the payment method
//	paid    -> pending    clears both (admin undo)
//	pending -> cancelled  status flip only
//	paid    -> cancelled  rejected, needs a refund workflow
//	cancelled -> *        rejected, terminal
//
// Re-applying paid with the same method is a no-op; with a different
// method only payment_method changes and paid_at is preserved. Returns
// whether the record actually changed.
func applyTransition(inv *db_models.Invoice, target db_models.InvoiceStatus, method string, now time.Time) (bool, error) {
	switch target {
	case db_models.StatusPending, db_models.StatusPaid, db_models.StatusCancelled:
	default:
		return false, fmt.Errorf("%w: unknown status %q", utils.ErrValidation, target)
	}

	if inv.Status == target {
		if target == db_models.StatusPaid && method != "" && (inv.PaymentMethod == nil || *inv.PaymentMethod != method) {
			m := method
			inv.PaymentMethod = &m
			return true, nil
		}
		return false, nil
	}

	switch {
	case inv.Status == db_models.StatusCancelled:
		return false, fmt.Errorf("%w: invoice is cancelled", utils.ErrInvalidTransition)

	case inv.Status == db_models.StatusPaid && target == db_models.StatusCancelled:
		return false, fmt.Errorf("%w: paid invoice cannot be cancelled", utils.ErrInvalidTransition)

	case target == db_models.StatusPaid:
		if method == "" {
			method = db_models.PaymentMethodManual
		}
		paidAt := now
		inv.Status = db_models.StatusPaid
		inv.PaidAt = &paidAt
		inv.PaymentMethod = &method
		return true, nil

	case target == db_models.StatusPending:
		inv.Status = db_models.StatusPending
		inv.PaidAt = nil
		inv.PaymentMethod = nil
		return true, nil

	default: // pending -> cancelled
		inv.Status = db_models.StatusCancelled
		return true, nil
	}
}
