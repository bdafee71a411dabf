package invoices_fx

import (
	"go.uber.org/fx"
	"paylink/internal/repositories"
	"paylink/internal/services"
)

var Module = fx.Provide(
	provideInvoiceService, provideReceiptService)

func provideInvoiceService(invoiceRepo repositories.InvoiceRepositoryInterface) services.InvoiceServiceInterface {
	return services.NewInvoiceService(invoiceRepo)
}

func provideReceiptService(invoiceService services.InvoiceServiceInterface) services.ReceiptServiceInterface {
	return services.NewReceiptService(invoiceService)
}
