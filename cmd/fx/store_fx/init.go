package store_fx

import (
	"context"
	"log"

	"go.uber.org/fx"
	"paylink/internal/infra"
	"paylink/internal/models/db_models"
	"paylink/internal/repositories"
	"paylink/pkg/config"
)

var Module = fx.Provide(provideInvoiceRepository)

// The backend is fixed once at process start; nothing selects a store at
// call time.
func provideInvoiceRepository(cfg *config.Config, lc fx.Lifecycle) repositories.InvoiceRepositoryInterface {
	switch cfg.StoreBackend {
	case "postgres":
		db := infra.InitPostgresql(cfg.PostgresURL)
		if err := db.AutoMigrate(&db_models.Invoice{}); err != nil {
			log.Fatalf("Failed to migrate invoices table: %v", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				infra.ClosePostgresql(db)
				return nil
			},
		})
		return repositories.NewPostgresInvoiceRepository(db)

	case "file":
		return repositories.NewFileInvoiceRepository(cfg.StorePath)

	default:
		return repositories.NewMemoryInvoiceRepository()
	}
}
