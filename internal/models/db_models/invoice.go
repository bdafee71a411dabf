package db_models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// amounts serialize as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

type InvoiceStatus string

const (
	StatusPending   InvoiceStatus = "pending"
	StatusPaid      InvoiceStatus = "paid"
	StatusCancelled InvoiceStatus = "cancelled"
)

const (
	PaymentMethodManual = "manual"
	PaymentMethodStripe = "stripe"
)

type Client struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Service struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type Services []Service

func (s Services) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Services) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return errors.New("unsupported services column type")
	}
}

// Invoice is the canonical record. The JSON tags define the shape used on
// both the wire and the file-backed store.
type Invoice struct {
	ID            string          `gorm:"primaryKey;size:64" json:"id"`
	Slug          string          `gorm:"uniqueIndex;size:128" json:"slug"`
	Client        Client          `gorm:"embedded;embeddedPrefix:client_" json:"client"`
	Services      Services        `gorm:"type:jsonb" json:"services"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
	Currency      string          `gorm:"size:3" json:"currency"`
	Status        InvoiceStatus   `gorm:"size:16;index" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	PaidAt        *time.Time      `json:"paid_at"`
	PaymentMethod *string         `gorm:"size:32" json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`

	// Provider receipt snapshot, internal diagnostics only.
	Metadata datatypes.JSON `gorm:"type:jsonb" json:"-"`
}

// Clone returns a deep copy so read paths cannot leak mutable references
// into the store.
func (i *Invoice) Clone() *Invoice {
	out := *i
	if i.Services != nil {
		out.Services = make(Services, len(i.Services))
		copy(out.Services, i.Services)
	}
	if i.PaidAt != nil {
		t := *i.PaidAt
		out.PaidAt = &t
	}
	if i.PaymentMethod != nil {
		m := *i.PaymentMethod
		out.PaymentMethod = &m
	}
	if i.Metadata != nil {
		out.Metadata = append(datatypes.JSON(nil), i.Metadata...)
	}
	return &out
}
