// Package config provides application configuration for wakehub.
//
// Configuration lives in a YAML file at a platform-appropriate location:
//   - Linux: $XDG_CONFIG_HOME/wakehub/config.yaml or $HOME/.config/wakehub/config.yaml
//   - macOS: $HOME/.config/wakehub/config.yaml
//   - Windows: %LOCALAPPDATA%\wakehub\config.yaml
//
// The device registry file defaults to devices.json in the same directory.
// All settings have working defaults, so running without a config file is
// fully supported:
//
//	listen: ":5050"
//	wake_port: 9
//	probe:
//	  port: 3389
//	  timeout_seconds: 1.0
//	  concurrency: 20
package config
