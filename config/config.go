package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Daily    DailyConfig    `mapstructure:"daily"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Summary  SummaryConfig  `mapstructure:"summary"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	// APIAuthRequired puts the /api/* session endpoints behind the JWT
	// middleware. The deployed variant leaves them open.
	APIAuthRequired bool `mapstructure:"api_auth_required"`
}

type PostgresConfig struct {
	URI string `mapstructure:"uri"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

// DailyConfig configures the video-room provider. With an empty APIKey the
// client runs in fallback mode and synthesizes placeholder rooms.
type DailyConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Domain  string `mapstructure:"domain"`
	BaseURL string `mapstructure:"base_url"`
}

type StorageConfig struct {
	Bucket string `mapstructure:"bucket"`
	// LocalDir, when set, swaps in the local-filesystem uploader instead of
	// GCS. Used for degraded operation and local development.
	LocalDir string `mapstructure:"local_dir"`
}

type SpeechConfig struct {
	Language          string   `mapstructure:"language"`
	AlternateLangs    []string `mapstructure:"alternate_langs"`
	OperationTimeoutS int      `mapstructure:"operation_timeout_s"`
}

// SummaryConfig selects the generative-text backend. Backend is one of
// "vertex", "openai" or "" (degraded templated summaries only).
type SummaryConfig struct {
	Backend       string `mapstructure:"backend"`
	VertexProject string `mapstructure:"vertex_project"`
	VertexRegion  string `mapstructure:"vertex_region"`
	Model         string `mapstructure:"model"`
	OpenAIKey     string `mapstructure:"openai_key"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("skillbridge")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.api_auth_required", false)
	v.SetDefault("daily.domain", "skillbridge.daily.co")
	v.SetDefault("daily.base_url", "https://api.daily.co/v1")
	v.SetDefault("speech.language", "hi-IN")
	v.SetDefault("speech.alternate_langs", []string{"en-IN", "en-US"})
	v.SetDefault("speech.operation_timeout_s", 600)
	v.SetDefault("summary.vertex_region", "asia-south1")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// env-only configuration is fine
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
