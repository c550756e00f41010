package main

import (
	"fmt"

	"rpc-lab/domain"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

type Config struct {
	ServerAddress string  `env:"RPC_SERVER_ADDRESS,default=[::1]:50051" validate:"required"`
	UserID        string  `env:"RPC_USER_ID,default=user_123" validate:"required"`
	Amount        float64 `env:"RPC_PAYMENT_AMOUNT,default=100" validate:"gt=0"`
	QueueCapacity int     `env:"CHAT_QUEUE_CAPACITY,default=32" validate:"gt=0"`
	LogLevel      string  `env:"LOG_LEVEL,default=WARN"`
	Colours       bool    `env:"COLOURS,default=true"`
	SkipChat      bool    `env:"SKIP_CHAT,default=false"`
}

// loadConfig reads the environment (and .env), then lets command-line flags override it.
func loadConfig(args []string) (Config, error) {
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}

	fs := flag.NewFlagSet("rpc-lab-client", flag.ContinueOnError)
	fs.StringVarP(&config.ServerAddress, "addr", "a", config.ServerAddress, "Server address")
	fs.StringVarP(&config.UserID, "user", "u", config.UserID, "User id, also the chat identity")
	fs.Float64Var(&config.Amount, "amount", config.Amount, "Amount of the initial payment")
	fs.IntVar(&config.QueueCapacity, "queue", config.QueueCapacity, "Outbound chat queue capacity")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "DEBUG, INFO, WARN or ERROR")
	fs.BoolVar(&config.Colours, "colours", config.Colours, "Colour the chat senders")
	fs.BoolVar(&config.SkipChat, "no-chat", config.SkipChat, "Stop after the transaction history")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) Payment() domain.Payment {
	return domain.Payment{UserID: c.UserID, Amount: c.Amount}
}
