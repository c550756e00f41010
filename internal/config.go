package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config of the rpc-lab server.
type Config struct {
	Address         string        `env:"RPC_ADDRESS,default=[::1]:50051" validate:"required"`
	Identity        string        `env:"CHAT_IDENTITY,default=server" validate:"required"`
	ChatMode        string        `env:"CHAT_MODE,default=echo" validate:"oneof=echo console"`
	QueueCapacity   int           `env:"CHAT_QUEUE_CAPACITY,default=32" validate:"gt=0"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=30s" validate:"gt=0"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s" validate:"gt=0"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	Colours         bool          `env:"COLOURS,default=true"`
	// InspectorPort serves a read-only view of the ledger over HTTP, 0 disables it.
	InspectorPort int `env:"INSPECTOR_PORT,default=0" validate:"gte=0,lte=65535"`
}

// LoadConfig reads the environment, completed by a .env file when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}
