package utils

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyPaid       = errors.New("invoice already paid")
	ErrStorage           = errors.New("storage error")
	ErrUnauthorized      = errors.New("unauthorized")
)
