// Package config loads application configuration from environment variables.
// An optional .env file in the working directory is read first so local runs
// do not need exported variables.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config holds all runtime configuration values. It is built once at
// startup and passed by value to the components that need it.
type Config struct {
	Env  string `env:"APP_ENV" env-default:"dev"`   // local, dev or prod
	Port string `env:"APP_PORT" env-default:"8080"` // HTTP port to listen on

	StoreDriver      string `env:"STORE_DRIVER" env-default:"mongo"`
	MongoURI         string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDB          string `env:"MONGO_DB" env-default:"INVISIODb"`
	DenylistTTLIndex bool   `env:"DENYLIST_TTL_INDEX" env-default:"false"` // expire denylist entries after their token's exp

	JWTSecret   string        `env:"JWT_SECRET" env-required:"true"`
	JWTIssuer   string        `env:"JWT_ISSUER" env-default:"invisio"`
	JWTAudience string        `env:"JWT_AUDIENCE" env-default:"invisio-clients"`
	AccessTTL   time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"1h"`
	BcryptCost  int           `env:"BCRYPT_COST" env-default:"10"`

	OllamaURL     string        `env:"OLLAMA_URL" env-default:"http://localhost:11434/api/generate"`
	OllamaModel   string        `env:"OLLAMA_MODEL" env-default:"tinyllama:latest"`
	OllamaTimeout time.Duration `env:"OLLAMA_TIMEOUT" env-default:"5m"`

	RabbitURL       string `env:"RABBITMQ_URL"` // empty disables event publishing
	ConsumerEnabled bool   `env:"EVENT_CONSUMER_ENABLED" env-default:"false"`
	EventLogDir     string `env:"EVENT_LOG_DIR" env-default:"logs"`
}

// Read parses the environment into a Config without touching .env files.
func Read() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET is empty")
	}
	if cfg.StoreDriver != StoreMongo && cfg.StoreDriver != StoreMemory {
		return Config{}, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.AccessTTL <= 0 {
		return Config{}, fmt.Errorf("config: ACCESS_TOKEN_TTL must be positive")
	}
	return cfg, nil
}

// Load reads .env (if present) and the environment. Invalid or missing
// required values stop the process.
func Load() Config {
	_ = godotenv.Load()
	cfg, err := Read()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}
