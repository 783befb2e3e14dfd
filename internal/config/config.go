package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DB         DBConfig     `mapstructure:"db"`
	OpenAI     OpenAIConfig `mapstructure:"openai"`
	Auth       AuthConfig   `mapstructure:"auth"`
	Encryption EncConfig    `mapstructure:"encryption"`
	Upload     UploadConfig `mapstructure:"upload"`

	FreePromptCredits float64 `mapstructure:"free_prompt_credits"`
	SecretKey         string  `mapstructure:"secret_key"`
	AppHost           string  `mapstructure:"host"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Port     int    `mapstructure:"port"`
	Source   string `mapstructure:"source"`
}

type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	OrganizationID string `mapstructure:"organization_id"`
	Model          string `mapstructure:"model"`
}

type AuthConfig struct {
	Token string `mapstructure:"token"`
}

type EncConfig struct {
	Key string `mapstructure:"key"`
}

type UploadConfig struct {
	Folder string `mapstructure:"folder"`
}

// ConnString returns the pgx connection string. An explicit db.source wins
// over the individual host/name/user/password/port fields.
func (c DBConfig) ConnString() string {
	if c.Source != "" {
		return c.Source
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", c.User, c.Password, c.Host, c.Port, c.Name)
}

func Load() (*Config, error) {
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/configs")
	viper.SetConfigName("settings")
	viper.SetConfigType("yml")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("openai.model", "gpt-4o-2024-08-06")
	viper.SetDefault("free_prompt_credits", 3000)
	viper.SetDefault("upload.folder", "uploads")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Viper only resolves env-backed keys that were bound or defaulted.
	for _, key := range []string{
		"db.name", "db.user", "db.password", "db.source",
		"openai.api_key", "openai.organization_id",
		"auth.token", "encryption.key", "secret_key",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Encryption.Key == "" {
		return nil, errors.New("ENCRYPTION_KEY is required")
	}

	return &cfg, nil
}
