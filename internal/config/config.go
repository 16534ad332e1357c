package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is assembled once at startup and passed down explicitly. Nothing in
// the application reads the environment after Load returns.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Xendit    XenditConfig
	Reconcile ReconcileConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port    string `envconfig:"PORT" default:"8080"`
	BaseURL string `envconfig:"APP_BASE_URL" default:"http://localhost:8080"`
}

type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL" required:"true"`
}

type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" required:"true"`
	TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

type XenditConfig struct {
	SecretKey       string        `envconfig:"XENDIT_SECRET_KEY" required:"true"`
	CallbackToken   string        `envconfig:"XENDIT_CALLBACK_TOKEN"`
	BaseURL         string        `envconfig:"XENDIT_BASE_URL" default:"https://api.xendit.co"`
	InvoiceDuration time.Duration `envconfig:"XENDIT_INVOICE_DURATION" default:"1h"`
	Timeout         time.Duration `envconfig:"XENDIT_TIMEOUT" default:"10s"`
}

type ReconcileConfig struct {
	Interval time.Duration `envconfig:"RECONCILE_INTERVAL" default:"5m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
