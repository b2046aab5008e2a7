package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AppVersion  string `env:"APP_VERSION" envDefault:"0.1.0"`

	// HTTP server
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"3000"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Remote services
	APIBaseURL        string `env:"API_URL" envDefault:"https://e-commerce-feltec.onrender.com/api"`
	CheckoutURL       string `env:"CHECKOUT_API_URL" envDefault:"https://e-commerce-feltec.onrender.com/api/Checkout"`
	CEPBaseURL        string `env:"CEP_API_URL" envDefault:"https://viacep.com.br/ws"`
	ShippingOriginCEP string `env:"SHIPPING_ORIGIN_CEP" envDefault:"01310100"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	for name, raw := range map[string]string{
		"API_URL":          c.APIBaseURL,
		"CHECKOUT_API_URL": c.CheckoutURL,
		"CEP_API_URL":      c.CEPBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s: %q", name, raw)
		}
	}
	if len(c.ShippingOriginCEP) != 8 {
		return fmt.Errorf("invalid SHIPPING_ORIGIN_CEP: %q", c.ShippingOriginCEP)
	}
	return nil
}
