package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Notify  NotifyConfig
	Geo     GeoConfig
	Payment PaymentConfig
	Effects EffectsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=print_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// NotifyConfig points at the device bridge that relays ready alerts and
// chimes to customers.
type NotifyConfig struct {
	WebhookURL string        `env:"NOTIFY_WEBHOOK_URL, default=http://localhost:9090/notify"`
	Secret     string        `env:"NOTIFY_WEBHOOK_SECRET"`
	Timeout    time.Duration `env:"NOTIFY_TIMEOUT, default=10s"`
}

type GeoConfig struct {
	Endpoint string `env:"GEO_ENDPOINT, default=http://localhost:9091/places"`
	APIKey   string `env:"GEO_API_KEY"`
}

type PaymentConfig struct {
	ProcessingDelay time.Duration `env:"PAYMENT_PROCESSING_DELAY, default=1500ms"`
	VerifyingDelay  time.Duration `env:"PAYMENT_VERIFYING_DELAY,  default=2s"`
}

type EffectsConfig struct {
	Workers int `env:"EFFECT_WORKERS, default=8"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
