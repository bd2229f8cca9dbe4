package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the gateway. Values come from an
// optional config.yaml plus environment variables; constructors receive them
// explicitly so business logic never reads ambient process state.
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Server   ServerConfig  `mapstructure:"server"`
	YouTube  YouTubeConfig `mapstructure:"youtube"`
	OpenAI   OpenAIConfig  `mapstructure:"openai"`
	Storage  StorageConfig `mapstructure:"storage"`
	Redis    RedisConfig   `mapstructure:"redis"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// YouTubeConfig configures the metadata and transcript providers.
type YouTubeConfig struct {
	APIKey             string        `mapstructure:"api_key"`
	SearchAPIKey       string        `mapstructure:"search_api_key"`
	TranscriptProvider string        `mapstructure:"transcript_provider"` // searchapi or timedtext
	Language           string        `mapstructure:"language"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// OpenAIConfig configures the LLM capability.
type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	MaxContextChars int           `mapstructure:"max_context_chars"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// StorageConfig selects the transcript store backend.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"` // memory or supabase
	SupabaseURL string `mapstructure:"supabase_url"`
	SupabaseKey string `mapstructure:"supabase_key"`
}

// RedisConfig enables the redis summary cache when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Load reads configuration from path (or the working directory when empty)
// and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("log_level", "info")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("youtube.transcript_provider", "searchapi")
	v.SetDefault("youtube.timeout", 30*time.Second)
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.timeout", 60*time.Second)
	v.SetDefault("storage.backend", "memory")

	if path == "" {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The provider credentials keep their conventional unprefixed names.
	_ = v.BindEnv("youtube.api_key", "YOUTUBE_API_KEY")
	_ = v.BindEnv("youtube.search_api_key", "SEARCH_API_KEY")
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("storage.supabase_url", "SUPABASE_URL")
	_ = v.BindEnv("storage.supabase_key", "SUPABASE_SERVICE_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
