// Package config handles the rig CLI's own settings file.
//
// Settings are read from ./.rig/config.yaml or $XDG_CONFIG_HOME/rig/config.yaml,
// and each key may be overridden by a RIG_ environment variable:
//
//	log_level: debug   # RIG_LOG_LEVEL
//	log_format: json   # RIG_LOG_FORMAT
//	output: yaml       # RIG_OUTPUT; text, json, yaml or toml
//
// These settings only affect the CLI. They are unrelated to a project's
// config/rig.json, which is handled by pkg/rigconfig.
package config
