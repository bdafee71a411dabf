package mail_fx

import (
	"log"

	"go.uber.org/fx"
	"paylink/internal/services"
	"paylink/pkg/config"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config) services.IMailService {
	mailService, err := services.NewSMTPMailService(cfg.SMTP)
	if err != nil {
		log.Printf("Failed to initialize SMTP mail service: %v", err)
	}

	return mailService
}
