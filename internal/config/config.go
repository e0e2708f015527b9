package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SERVERLESS_TOOLS"

type Config struct {
	Server struct {
		Addr         string        `mapstructure:"addr"`
		Mode         string        `mapstructure:"mode"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	} `mapstructure:"server"`

	Functions struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"functions"`

	Auth struct {
		Firebase struct {
			ProjectID string        `mapstructure:"project_id"`
			JWKSURL   string        `mapstructure:"jwks_url"`
			ClockSkew time.Duration `mapstructure:"clock_skew"`
		} `mapstructure:"firebase"`
		// ResourcePrefix is prepended to "<METHOD><path>" to form the resource
		// the gate asks the authorizer about.
		ResourcePrefix string `mapstructure:"resource_prefix"`
	} `mapstructure:"auth"`

	CORS struct {
		AllowedOrigin    string   `mapstructure:"allowed_origin"`
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   string   `mapstructure:"allowed_methods"`
		AllowedHeaders   string   `mapstructure:"allowed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
	} `mapstructure:"cors"`

	Registry struct {
		Backend           string `mapstructure:"backend"`
		SampleFunctionURL string `mapstructure:"sample_function_url"`
	} `mapstructure:"registry"`

	Redis struct {
		URL      string `mapstructure:"url"`
		PoolSize int    `mapstructure:"pool_size"`
	} `mapstructure:"redis"`

	Observability struct {
		TraceEnabled       bool   `mapstructure:"trace_enabled"`
		TracingEndpointURL string `mapstructure:"tracing_endpoint_url"`
		LogLevel           string `mapstructure:"log_level"`
		Format             string `mapstructure:"log_format"`
		LogSource          bool   `mapstructure:"log_source"`
	} `mapstructure:"observability"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8123")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)

	v.SetDefault("functions.addr", ":7071")

	v.SetDefault("auth.firebase.jwks_url",
		"https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com")
	v.SetDefault("auth.firebase.clock_skew", 0)
	v.SetDefault("auth.resource_prefix", "arn:aws:execute-api:local:000000000000:authdemo/dev")

	v.SetDefault("cors.allowed_origin", "http://localhost:8000")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", "GET, OPTIONS")
	v.SetDefault("cors.allowed_headers", "Content-Type, Authorization, Origin, Accept")
	v.SetDefault("cors.allow_credentials", true)

	v.SetDefault("registry.backend", "stub")

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.log_format", "json")
}

// Load reads config.yaml from ./config or the working directory, overlays
// config.<APP_ENV>.yaml when APP_ENV is set, then applies environment
// variables. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	logger := slog.Default()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unprefixed names kept for existing deployments.
	if err := v.BindEnv("auth.firebase.project_id", envPrefix+"_AUTH_FIREBASE_PROJECT_ID", "FIREBASE_PROJECT_ID"); err != nil {
		return nil, fmt.Errorf("bind firebase project env: %w", err)
	}
	if err := v.BindEnv("registry.sample_function_url", envPrefix+"_REGISTRY_SAMPLE_FUNCTION_URL", "SAMPLE_FUNCTION_URL"); err != nil {
		return nil, fmt.Errorf("bind sample function env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logger.Info("No config file found, using defaults and environment")
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		v.SetConfigName(fmt.Sprintf("config.%s", env))
		if err := v.MergeInConfig(); err != nil {
			logger.Info("No environment-specific config (optional)", slog.String("env", env))
		} else {
			logger.Info("Environment-specific config loaded", slog.String("env", env))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Default().Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}
