package main

import (
	"os"
	"testing"

	"rpc-lab/domain"

	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, keys ...string) {
	for _, key := range keys {
		t.Setenv(key, "unset")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	unsetenv(t, "RPC_SERVER_ADDRESS", "RPC_USER_ID", "RPC_PAYMENT_AMOUNT", "SKIP_CHAT")

	config, err := loadConfig(nil)

	req.NoError(err)
	req.Equal("[::1]:50051", config.ServerAddress)
	req.Equal(domain.Payment{UserID: "user_123", Amount: 100.0}, config.Payment())
	req.False(config.SkipChat)
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	req := require.New(t)
	t.Setenv("RPC_USER_ID", "from_env")
	t.Setenv("RPC_SERVER_ADDRESS", "localhost:7000")

	config, err := loadConfig([]string{"--user", "from_flag", "--amount", "12.5", "--no-chat"})

	req.NoError(err)
	req.Equal("from_flag", config.UserID)
	req.Equal("localhost:7000", config.ServerAddress)
	req.Equal(12.5, config.Amount)
	req.True(config.SkipChat)
}

func TestLoadConfig_RejectsNonPositiveAmount(t *testing.T) {
	req := require.New(t)

	_, err := loadConfig([]string{"--amount", "-1"})

	req.Error(err)
}
