package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Chat provider names accepted by chat.provider.
const (
	ProviderGateway   = "gateway"
	ProviderAnthropic = "anthropic"
)

// Config holds the full application configuration.
type Config struct {
	Data       DataConfig       `yaml:"data" mapstructure:"data"`
	Chat       ChatConfig       `yaml:"chat" mapstructure:"chat"`
	Gateway    GatewayConfig    `yaml:"gateway" mapstructure:"gateway"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Resilience ResilienceConfig `yaml:"resilience" mapstructure:"resilience"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the three input tables and tunes how they are fetched.
// Locations may be local paths or http(s)/ftp/file URLs.
type DataConfig struct {
	FeatureLocation string  `yaml:"feature_location" mapstructure:"feature_location"`
	MLLocation      string  `yaml:"ml_location" mapstructure:"ml_location"`
	ClusterLocation string  `yaml:"cluster_location" mapstructure:"cluster_location"`
	BaseDir         string  `yaml:"base_dir" mapstructure:"base_dir"`
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries      int     `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent       string  `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSec      float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// ChatConfig selects the chat provider.
type ChatConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// GatewayConfig configures the OpenAI-compatible AI gateway.
type GatewayConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Model       string `yaml:"model" mapstructure:"model"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AnthropicConfig configures the Anthropic provider.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// ResilienceConfig tunes upstream retry and the chat circuit breaker.
type ResilienceConfig struct {
	Retry   RetrySettings   `yaml:"retry" mapstructure:"retry"`
	Circuit CircuitSettings `yaml:"circuit" mapstructure:"circuit"`
}

// RetrySettings configures retry with exponential backoff.
type RetrySettings struct {
	MaxAttempts      int `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
}

// CircuitSettings configures the circuit breaker.
type CircuitSettings struct {
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EVDSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Every key is registered so AutomaticEnv can override it.
	v.SetDefault("data.feature_location", "data/EV_ICE_FEATURE_ENGINEERED.csv")
	v.SetDefault("data.ml_location", "data/EV_ICE_ML_READY.csv")
	v.SetDefault("data.cluster_location", "data/CITY_CLUSTERS.csv")
	v.SetDefault("data.base_dir", "")
	v.SetDefault("data.timeout_secs", 30)
	v.SetDefault("data.max_retries", 3)
	v.SetDefault("data.user_agent", "ev-dss/1.0")
	v.SetDefault("data.rate_per_sec", 20)
	v.SetDefault("chat.provider", ProviderGateway)
	v.SetDefault("gateway.key", "")
	v.SetDefault("gateway.base_url", "https://ai.gateway.dss.dev/v1")
	v.SetDefault("gateway.model", "google/gemini-2.5-flash")
	v.SetDefault("gateway.timeout_secs", 120)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("resilience.retry.max_attempts", 3)
	v.SetDefault("resilience.retry.initial_backoff_ms", 500)
	v.SetDefault("resilience.retry.max_backoff_ms", 5000)
	v.SetDefault("resilience.circuit.failure_threshold", 5)
	v.SetDefault("resilience.circuit.reset_timeout_secs", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes: "serve"
// runs the API, "chat" talks to the provider, "data" renders dataset views.
func (c *Config) Validate(mode string) error {
	var errs []string

	checkData := func() {
		if strings.TrimSpace(c.Data.FeatureLocation) == "" {
			errs = append(errs, "data.feature_location is required")
		}
		if strings.TrimSpace(c.Data.MLLocation) == "" {
			errs = append(errs, "data.ml_location is required")
		}
		if c.Data.RatePerSec < 0 {
			errs = append(errs, "data.rate_per_sec must be >= 0")
		}
	}

	checkProvider := func() bool {
		if c.Chat.Provider == ProviderGateway || c.Chat.Provider == ProviderAnthropic {
			return true
		}
		errs = append(errs, fmt.Sprintf("chat.provider %q must be %q or %q", c.Chat.Provider, ProviderGateway, ProviderAnthropic))
		return false
	}

	switch mode {
	case "serve":
		checkData()
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		// Missing chat credentials only disable /api/chat.
		checkProvider()
	case "chat":
		if checkProvider() {
			switch c.Chat.Provider {
			case ProviderGateway:
				if c.Gateway.Key == "" {
					errs = append(errs, "gateway.key is required")
				}
				if c.Gateway.BaseURL == "" {
					errs = append(errs, "gateway.base_url is required")
				}
			case ProviderAnthropic:
				if c.Anthropic.Key == "" {
					errs = append(errs, "anthropic.key is required")
				}
				if c.Anthropic.MaxTokens <= 0 {
					errs = append(errs, "anthropic.max_tokens must be > 0")
				}
			}
		}
	case "data":
		checkData()
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Resilience.Retry.MaxAttempts < 0 {
		errs = append(errs, "resilience.retry.max_attempts must be >= 0")
	}
	if c.Resilience.Circuit.FailureThreshold < 0 {
		errs = append(errs, "resilience.circuit.failure_threshold must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ChatConfigured reports whether the selected chat provider has credentials.
func (c *Config) ChatConfigured() bool {
	switch c.Chat.Provider {
	case ProviderGateway:
		return c.Gateway.Key != ""
	case ProviderAnthropic:
		return c.Anthropic.Key != ""
	default:
		return false
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
