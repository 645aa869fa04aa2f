package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL     string        `envconfig:"DATABASE_URL"     required:"true"`
	HTTPPort        string        `envconfig:"HTTP_PORT"        default:":8081"`
	GrpcPort        string        `envconfig:"GRPC_PORT"        default:":50051"` // gRPC health
	LogLevel        string        `envconfig:"LOG_LEVEL"        default:"info"`
	GinMode         string        `envconfig:"GIN_MODE"         default:"release"`
	MigrateOnStart  bool          `envconfig:"MIGRATE_ON_START" default:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HealthInterval  time.Duration `envconfig:"HEALTH_INTERVAL"  default:"15s"`

	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS"    default:"10"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS"    default:"5"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`

	DBRetryMaxAttempts uint64        `envconfig:"DB_RETRY_MAX_ATTEMPTS" default:"5"`
	DBRetryBaseDelay   time.Duration `envconfig:"DB_RETRY_BASE_DELAY"   default:"100ms"`
	DBRetryMaxDelay    time.Duration `envconfig:"DB_RETRY_MAX_DELAY"    default:"2s"`
}

var (
	config Config
	once   sync.Once
)

// Process reads the environment into a new Config.
func Process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	return &cfg, nil
}

// LoadConfig loads .env (if present) and the environment once; invalid configuration is fatal.
func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		cfg, err := Process()
		if err != nil {
			logger.Fatalf("Configuration error: %v", err)
		}
		config = *cfg

		logger.Infof("Configuration loaded: HTTP Port=%s, GRPC Port=%s, LogLevel=%s", config.HTTPPort, config.GrpcPort, config.LogLevel)
	})
	return &config
}
