// Package config loads application configuration with viper: built-in
// defaults, an optional paydoc.yaml, and PAYDOC_* environment overrides, in
// increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime settings shared by the server and the CLI.
type Config struct {
	// DataDir is where the per-kind template collection files live.
	DataDir string `mapstructure:"data_dir"`

	// ListenAddr is the HTTP listen address for cmd/server.
	ListenAddr string `mapstructure:"listen_addr"`

	// RegistryFile optionally extends the built-in system-field catalog.
	RegistryFile string `mapstructure:"registry_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration. path may name a specific config file; when
// empty, a paydoc.yaml in the working directory is used if present.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", ".paydoc_data")
	v.SetDefault("listen_addr", ":8081")
	v.SetDefault("registry_file", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("PAYDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("paydoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// A missing default config file is fine; anything else is not.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
