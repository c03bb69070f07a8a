package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`

	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`

	// DOKU checkout credentials. Loaded once here so no component reads
	// the environment at call time. The API key is required to exist but
	// the HMAC scheme never transmits it; only Client-Id and the secret
	// reach the wire.
	DokuClientID  string `envconfig:"DOKU_CLIENT_ID" required:"true"`
	DokuAPIKey    string `envconfig:"DOKU_API_KEY" required:"true"`
	DokuSecretKey string `envconfig:"DOKU_SECRET_KEY" required:"true"`
	DokuBaseURL   string `envconfig:"DOKU_BASE_URL" default:"https://api-sandbox.doku.com"`

	// Base URL the customer is sent back to after checkout
	CallbackBaseURL string `envconfig:"CALLBACK_BASE_URL" required:"true"`

	// When set, webhook notifications never downgrade a booking that is
	// already in a terminal payment status.
	WebhookTerminalGuard bool `envconfig:"WEBHOOK_TERMINAL_GUARD" default:"true"`

	// RabbitMQ (optional; events are skipped when unset)
	RabbitURL      string `envconfig:"RABBIT_URL" default:""`
	EventExchange  string `envconfig:"EVENT_EXCHANGE" default:"venue.exchange"`
	NotifyQueue    string `envconfig:"NOTIFY_QUEUE" default:"venue.notify.q"`
	NotifyPrefetch int    `envconfig:"NOTIFY_PREFETCH" default:"8"`

	// Tracing
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:""`
	Env          string `envconfig:"ENV" default:"dev"`

	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
