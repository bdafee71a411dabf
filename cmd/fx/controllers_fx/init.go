package controllers_fx

import (
	"go.uber.org/fx"
	"paylink/internal/api/controllers"
	"paylink/pkg/config"
)

var Module = fx.Options(
	fx.Provide(controllers.NewInvoiceController),
	fx.Provide(controllers.NewReceiptController),
	fx.Provide(provideAuthController))

func provideAuthController(cfg *config.Config) *controllers.AuthController {
	return controllers.NewAuthController(cfg.AdminPassword)
}
