package request_models

import "github.com/shopspring/decimal"

type ClientPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ServicePayload struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

type CreateInvoiceRequest struct {
	Client   ClientPayload    `json:"client" binding:"required"`
	Services []ServicePayload `json:"services" binding:"required,min=1,dive"`
	// When absent the total is derived from the service amounts; when
	// present it is taken as an explicit override.
	Total    *decimal.Decimal `json:"total"`
	Currency string           `json:"currency"`
	Slug     string           `json:"slug"`
	Notes    string           `json:"notes"`
}

type UpdateStatusRequest struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
	Method string `json:"method"`
}
