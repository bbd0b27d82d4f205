package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// ServiceName is the public name reported by the health endpoint.
const ServiceName = "Crusher Material Sewa"

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs bearer tokens. A missing key is a fatal startup error.
	JWTSecret     string `env:"JWT_SECRET, required"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS, default=24"`

	UploadDir string `env:"UPLOAD_DIR, default=uploads/materials"`

	Mongo MongoConfig
	Redis RedisConfig
	Admin AdminConfig
}

type MongoConfig struct {
	// URI is required: the process must not start without a store.
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=crusher_material_sewa"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AdminConfig holds the reserved bootstrap admin account.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL,    default=admin@gmail.com"`
	Password string `env:"ADMIN_PASSWORD, default=Admin123"`
	Name     string `env:"ADMIN_NAME,     default=Admin"`
}

// Load reads configuration from environment variables using go-envconfig.
// Required variables (MONGO_URI, JWT_SECRET) abort startup when absent.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
