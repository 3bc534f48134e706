package config

import (
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

// Webhook signature policies. The hosted-payment-page integration uses the
// lenient policy (no inbound signature, field matching only); strict verifies
// an X-Signature header over the canonical merchant|order|amount|currency
// string before touching any order.
const (
	WebhookLenient = "lenient"
	WebhookStrict  = "strict"
)

type DB struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Schema   string
}

func (d DB) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		d.Username, d.Password, d.Host, d.Port, d.Database, d.Schema,
	)
}

type Config struct {
	Port           string
	Merchant       string
	HMACKey        string
	PaymentURL     string
	CtxMode        string
	ReturnURL      string
	AllowedOrigins []string
	WebhookMode    string
	DebugSignature bool
	DB             DB
}

func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		Merchant:       getEnv("IZIPAY_MERCHANT", "TEST_SITE"),
		HMACKey:        os.Getenv("IZIPAY_HMAC_KEY"),
		PaymentURL:     getEnv("IZIPAY_PAYMENT_URL", "https://secure.micuentaweb.pe/vads-payment/"),
		CtxMode:        getEnv("IZIPAY_CTX_MODE", "TEST"),
		ReturnURL:      getEnv("RETURN_URL", "http://localhost:5173/thank-you"),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		WebhookMode:    getEnv("WEBHOOK_SIGNATURE_MODE", WebhookLenient),
		DebugSignature: os.Getenv("DEBUG_SIGNATURE") == "1",
		DB: DB{
			Host:     getEnv("CHECKOUT_DB_HOST", "localhost"),
			Port:     getEnv("CHECKOUT_DB_PORT", "5432"),
			Username: getEnv("CHECKOUT_DB_USERNAME", "postgres"),
			Password: getEnv("CHECKOUT_DB_PASSWORD", "postgres"),
			Database: getEnv("CHECKOUT_DB_DATABASE", "checkout"),
			Schema:   getEnv("CHECKOUT_DB_SCHEMA", "public"),
		},
	}
}

// Production reports whether the gateway context mode is live. The dev-only
// simulate-webhook route is not registered when it is.
func (c Config) Production() bool {
	return strings.EqualFold(c.CtxMode, "PRODUCTION")
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
