package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"volaryddns/internal/logger"
	"volaryddns/internal/validator"

	"github.com/spf13/viper"
)

// AppName is used for config search paths and env variable prefixes.
const AppName = "volaryddns"

// Config represents the update client configuration
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	State    StateConfig    `mapstructure:"state"`
	Log      logger.Config  `mapstructure:"log"`
}

// APIConfig represents the update API endpoint and credential.
// The token is a deployment-time secret and must never be logged.
type APIConfig struct {
	URL     string        `mapstructure:"url" validate:"required,url"`
	Token   string        `mapstructure:"token" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ResolverConfig represents public-IP discovery configuration
type ResolverConfig struct {
	Provider      string        `mapstructure:"provider" validate:"required,url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Attempts      int           `mapstructure:"attempts" validate:"min=1"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// StateConfig represents last-known-IP persistence configuration
type StateConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// LoadConfig loads configuration from an optional YAML file and the
// environment. Every key can be overridden via VOLARYDDNS_* variables
// (e.g. VOLARYDDNS_API_TOKEN), so a config file is not required when the
// credential is baked into the service environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/" + AppName)
		v.AddConfigPath("$HOME/." + AppName)
		v.AddConfigPath("/etc/" + AppName)
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine when searching default locations;
		// the environment may carry everything required.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	expandPaths(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults registers defaults for every key so that environment
// overrides are visible to Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", "")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", 30*time.Second)

	v.SetDefault("resolver.provider", "https://api.ipify.org")
	v.SetDefault("resolver.timeout", 30*time.Second)
	v.SetDefault("resolver.attempts", 3)
	v.SetDefault("resolver.retry_interval", 5*time.Second)

	v.SetDefault("state.file", "~/."+AppName+"/last_ip")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "~/."+AppName+"/update.log")
	v.SetDefault("log.max_size", 1)
	v.SetDefault("log.max_backups", 1)
}

// expandPaths expands a leading ~ in file paths
func expandPaths(config *Config) {
	config.State.File = expandHome(config.State.File)
	config.Log.File = expandHome(config.Log.File)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	if config.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if config.Resolver.Timeout <= 0 {
		return fmt.Errorf("resolver.timeout must be positive")
	}
	if config.Resolver.RetryInterval < 0 {
		return fmt.Errorf("resolver.retry_interval cannot be negative")
	}

	return config.Log.Validate()
}
