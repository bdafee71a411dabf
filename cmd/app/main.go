package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"paylink/cmd/fx/config_fx"
	"paylink/cmd/fx/controllers_fx"
	"paylink/cmd/fx/invoices_fx"
	"paylink/cmd/fx/mail_fx"
	"paylink/cmd/fx/payments_fx"
	"paylink/cmd/fx/store_fx"
	"paylink/internal/api/controllers"
	"paylink/pkg/config"
	"paylink/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		store_fx.Module,
		invoices_fx.Module,
		mail_fx.Module,
		payments_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	invoiceController *controllers.InvoiceController,
	paymentController *controllers.PaymentController,
	receiptController *controllers.ReceiptController,
	authController *controllers.AuthController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, invoiceController, paymentController, receiptController, authController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	invoiceController *controllers.InvoiceController,
	paymentController *controllers.PaymentController,
	receiptController *controllers.ReceiptController,
	authController *controllers.AuthController) {

	r.POST("/admin/login", authController.LoginHandler)

	adminGroup := r.Group("/admin", middleware.AdminAuthMiddleware())
	adminGroup.POST("/invoices", invoiceController.CreateInvoiceHandler)
	adminGroup.GET("/invoices", invoiceController.ListInvoicesHandler)
	adminGroup.PATCH("/invoices", invoiceController.UpdateStatusHandler)
	adminGroup.DELETE("/invoices/:id", invoiceController.DeleteInvoiceHandler)

	r.GET("/invoices/:slug", invoiceController.GetInvoiceBySlugHandler)
	r.GET("/receipts/:id", receiptController.GetReceiptHandler)

	paymentsGroup := r.Group("/payments")
	paymentsGroup.POST("/checkout", paymentController.CreateCheckoutHandler)
	paymentsGroup.GET("/methods", paymentController.PaymentMethodsHandler)
	paymentsGroup.POST("/webhook", paymentController.HandleWebhook)
}
