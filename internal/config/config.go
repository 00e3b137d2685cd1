package config

import (
	"fmt"
	"net/netip"
	"time"

	pkgconfig "github.com/FItraRizky/fro/pkg/config"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort        int           `env:"FRO_HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"FRO_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	CORSOrigins     []string      `env:"FRO_CORS_ORIGINS" envDefault:"*" envSeparator:","`
	PprofCIDRs      []string      `env:"FRO_PPROF_CIDRS" envSeparator:","`
	RateLimitRPS    float64       `env:"FRO_RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst  int           `env:"FRO_RATE_LIMIT_BURST" envDefault:"40"`

	// Session state
	StorageBackend string        `env:"FRO_STORAGE" envDefault:"memory"`
	StateTTL       time.Duration `env:"FRO_STATE_TTL" envDefault:"168h"`
	SessionIdle    time.Duration `env:"FRO_SESSION_IDLE" envDefault:"30m"`
	SweepInterval  time.Duration `env:"FRO_SWEEP_INTERVAL" envDefault:"1m"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Notifications and simulated remote calls
	NotificationTTL  time.Duration `env:"FRO_NOTIFICATION_TTL" envDefault:"3s"`
	SubmitDelay      time.Duration `env:"FRO_CHECKOUT_DELAY" envDefault:"3s"`
	NewsletterDelay  time.Duration `env:"FRO_NEWSLETTER_DELAY" envDefault:"1s"`
	CheckoutFailRate float64       `env:"FRO_CHECKOUT_FAILURE_RATE" envDefault:"0"`

	// Catalog
	Locale string `env:"FRO_LOCALE" envDefault:"id"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	OTELEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELSampling float64 `env:"OTEL_SAMPLING_RATE" envDefault:"1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load fro config: %w", err)
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
	switch c.StorageBackend {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("invalid storage backend %q: want %s or %s", c.StorageBackend, StorageMemory, StorageRedis)
	}
	if c.CheckoutFailRate < 0 || c.CheckoutFailRate > 1 {
		return fmt.Errorf("invalid checkout failure rate: %v", c.CheckoutFailRate)
	}
	if c.OTELSampling < 0 || c.OTELSampling > 1 {
		return fmt.Errorf("invalid OTEL sampling rate: %v", c.OTELSampling)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("kafka enabled without brokers")
	}
	if c.NotificationTTL <= 0 {
		return fmt.Errorf("invalid notification TTL: %s", c.NotificationTTL)
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("invalid rate limit burst: %d", c.RateLimitBurst)
	}
	for _, cidr := range c.PprofCIDRs {
		if _, err := netip.ParsePrefix(cidr); err != nil {
			return fmt.Errorf("invalid pprof CIDR %q: %w", cidr, err)
		}
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
