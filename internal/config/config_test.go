package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("DB_NAME", "datviz")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AUTH_TOKEN", "token")
	t.Setenv("ENCRYPTION_KEY", "enc-key")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "datviz", cfg.DB.Name)
	require.Equal(t, "app", cfg.DB.User)
	require.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	require.Equal(t, "token", cfg.Auth.Token)
	require.Equal(t, "enc-key", cfg.Encryption.Key)

	// Defaults.
	require.Equal(t, "localhost", cfg.DB.Host)
	require.Equal(t, 5432, cfg.DB.Port)
	require.Equal(t, "gpt-4o-2024-08-06", cfg.OpenAI.Model)
	require.Equal(t, float64(3000), cfg.FreePromptCredits)
}

func TestLoadRequiresEncryptionKey(t *testing.T) {
	viper.Reset()
	t.Setenv("DB_NAME", "datviz")
	t.Setenv("ENCRYPTION_KEY", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ENCRYPTION_KEY")
}

func TestConnString(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: 5433, Name: "datviz", User: "app", Password: "pw"}
	require.Equal(t, "postgres://app:pw@db:5433/datviz", cfg.ConnString())

	cfg.Source = "postgres://elsewhere/other"
	require.Equal(t, "postgres://elsewhere/other", cfg.ConnString())
}
