package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration shared by the api, worker and consumer
// binaries.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`
	Port   string `envconfig:"PORT" default:"3000"`

	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`

	DBHost        string `envconfig:"DB_HOST" default:"localhost"`
	DBUser        string `envconfig:"DB_USER" default:"postgres"`
	DBPassword    string `envconfig:"DB_PASSWORD"`
	DBName        string `envconfig:"DB_NAME" default:"starhr"`
	DBPort        string `envconfig:"DB_PORT" default:"5432"`
	DBSSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	DBAutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	DBMaxRetries  int    `envconfig:"DB_MAX_RETRIES" default:"5"`

	RedisAddr      string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`

	KafkaBroker        string        `envconfig:"KAFKA_BROKER"`
	KafkaTrainingGroup string        `envconfig:"KAFKA_TRAINING_GROUP" default:"starhr-replacement-leave"`
	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"3s"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	RateLimitPerSecond float64 `envconfig:"RATE_LIMIT_PER_SECOND" default:"10"`
	RateLimitBurst     int     `envconfig:"RATE_LIMIT_BURST" default:"20"`

	LeaveTypeCacheTTL time.Duration `envconfig:"LEAVE_TYPE_CACHE_TTL" default:"10m"`
	CreditExpiryCron  string        `envconfig:"CREDIT_EXPIRY_CRON" default:"@daily"`
	AsynqConcurrency  int           `envconfig:"ASYNQ_CONCURRENCY" default:"2"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// RequireKafka fails fast for binaries that cannot run without a broker.
func (c *Config) RequireKafka() error {
	if c.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	return nil
}
