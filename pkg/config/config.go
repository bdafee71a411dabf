package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// WireDetails are the manual bank-transfer instructions shown on the
// payment page alongside the hosted checkout option.
type WireDetails struct {
	Beneficiary        string `json:"beneficiary"`
	BeneficiaryAddress string `json:"beneficiary_address"`
	Bank               string `json:"bank"`
	BankAddress        string `json:"bank_address"`
	Swift              string `json:"swift"`
	Clabe              string `json:"clabe"`
	Account            string `json:"account"`
	RFC                string `json:"rfc"`
}

type PaymentMethods struct {
	ZelleEmail  string      `json:"zelle_email"`
	VenmoHandle string      `json:"venmo_handle"`
	WiseEmail   string      `json:"wise_email"`
	PaypalEmail string      `json:"paypal_email"`
	Wire        WireDetails `json:"wire"`
	WhatsApp    string      `json:"whatsapp"`
}

type Config struct {
	Port string

	// memory | file | postgres, fixed at process start
	StoreBackend string
	StorePath    string
	PostgresURL  string

	AdminPassword string
	JWTSecret     string

	StripeSecretKey     string
	StripeWebhookSecret string
	AppBaseURL          string

	SMTP           SMTPSettings
	PaymentMethods PaymentMethods
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on process environment")
	}

	return &Config{
		Port:         envOr("PORT", "8080"),
		StoreBackend: envOr("STORE_BACKEND", "memory"),
		StorePath:    envOr("STORE_PATH", "invoices.json"),
		PostgresURL:  os.Getenv("POSTGRES_URL"),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AppBaseURL:          envOr("APP_BASE_URL", "http://localhost:8080"),

		SMTP: SMTPSettings{
			Host:     envOr("SMTP_HOST", "smtp.gmail.com"),
			Port:     587,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			FromName: envOr("SMTP_FROM_NAME", "Paylink"),
		},
		PaymentMethods: PaymentMethods{
			ZelleEmail:  os.Getenv("ZELLE_EMAIL"),
			VenmoHandle: os.Getenv("VENMO_HANDLE"),
			WiseEmail:   os.Getenv("WISE_EMAIL"),
			PaypalEmail: os.Getenv("PAYPAL_EMAIL"),
			Wire: WireDetails{
				Beneficiary:        os.Getenv("WIRE_BENEFICIARY"),
				BeneficiaryAddress: os.Getenv("WIRE_BENEFICIARY_ADDRESS"),
				Bank:               os.Getenv("WIRE_BANK"),
				BankAddress:        os.Getenv("WIRE_BANK_ADDRESS"),
				Swift:              os.Getenv("WIRE_SWIFT"),
				Clabe:              os.Getenv("WIRE_CLABE"),
				Account:            os.Getenv("WIRE_ACCOUNT"),
				RFC:                os.Getenv("WIRE_RFC"),
			},
			WhatsApp: os.Getenv("WHATSAPP_NUMBER"),
		},
	}
}

func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
