package payments_fx

import (
	"go.uber.org/fx"
	"paylink/internal/api/controllers"
	"paylink/internal/models/db_models"
	"paylink/internal/services"
	"paylink/pkg/config"
)

var Module = fx.Provide(
	provideCheckoutService, provideReconcileService, providePaymentController)

func provideCheckoutService(cfg *config.Config, invoiceService services.InvoiceServiceInterface) services.CheckoutServiceInterface {
	return services.NewCheckoutService(invoiceService, services.CheckoutConfig{
		SecretKey:    cfg.StripeSecretKey,
		AppBaseURL:   cfg.AppBaseURL,
		ProviderName: db_models.PaymentMethodStripe,
	})
}

func provideReconcileService(cfg *config.Config, invoiceService services.InvoiceServiceInterface, mailService services.IMailService) services.ReconcileServiceInterface {
	return services.NewReconcileService(invoiceService, mailService, services.ReconcileConfig{
		WebhookSecret: cfg.StripeWebhookSecret,
		ProviderName:  db_models.PaymentMethodStripe,
	})
}

func providePaymentController(cfg *config.Config, checkoutService services.CheckoutServiceInterface, reconcileService services.ReconcileServiceInterface) *controllers.PaymentController {
	return controllers.NewPaymentController(checkoutService, reconcileService, cfg.PaymentMethods)
}
