package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = ".nlufn"
	envPrefix  = "NLUFN"
)

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("model.path", "models/")
	v.SetDefault("model.backend", BackendLocal)
	v.SetDefault("model.endpoint", "http://localhost:5005")
	v.SetDefault("model.healthTimeout", 30*time.Second)
	v.SetDefault("gateway.port", "8080")
	v.SetDefault("gateway.stage", "v1")
	v.SetDefault("gateway.functionName", "nlufn")
	v.SetDefault("server.name", "nlufn-server")
	v.SetDefault("server.image", "rasa/rasa:3.6.20-full")
	v.SetDefault("server.architecture", "amd64")
	v.SetDefault("server.port", "5005")
	v.SetDefault("server.cmd", []string{"run", "--enable-api", "--model", "/app/models"})
}

// Load reads .nlufn.yaml from the given search paths, applies NLUFN_* environment
// overrides and returns the resulting configuration. A missing config file is not an error.
func Load(v *viper.Viper, paths ...string) (*Config, error) {
	SetDefaults(v)

	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Model.Backend {
	case BackendLocal:
		if strings.TrimSpace(c.Model.Path) == "" {
			return fmt.Errorf("model.path must be set for the %s backend", BackendLocal)
		}
	case BackendRemote:
		if strings.TrimSpace(c.Model.Endpoint) == "" {
			return fmt.Errorf("model.endpoint must be set for the %s backend", BackendRemote)
		}
	default:
		return fmt.Errorf("unknown model backend %q", c.Model.Backend)
	}
	return nil
}
