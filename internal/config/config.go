// Package config manages the rig CLI's own settings using Viper.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/thoreinstein/rig/internal/errors"
)

// AppName is the application name used for config file naming and the env prefix.
const AppName = "rig"

// Output formats for descriptor output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputTOML = "toml"
)

// Config is the rig CLI settings file.
type Config struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	Output    string `mapstructure:"output" yaml:"output"`
}

// Dir returns the directory holding the user-level settings file.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// New returns a Viper instance with rig defaults, search paths, and RIG_
// environment overrides.
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".rig")
	v.AddConfigPath(Dir())

	v.SetEnvPrefix("RIG")
	v.AutomaticEnv()

	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("output", OutputText)

	return v
}

// Load reads settings into cfg. If path is set that file must exist;
// otherwise a missing file means defaults.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}
