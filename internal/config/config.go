package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "wakehub"
	configFile = "config.yaml"
	storeFile  = "devices.json"
)

// Config holds the application settings loaded from the YAML config file.
// Every field has a working default, so a missing file is not an error.
type Config struct {
	// Listen is the HTTP server bind address.
	Listen string `yaml:"listen"`

	// StorePath is the device registry file. Empty selects
	// <config dir>/devices.json.
	StorePath string `yaml:"store_path,omitempty"`

	// WakePort is the default UDP port for magic packets.
	WakePort int `yaml:"wake_port"`

	Probe ProbeConfig `yaml:"probe"`
}

// ProbeConfig holds liveness probing settings.
type ProbeConfig struct {
	// Port is the TCP port probed on every device.
	Port int `yaml:"port"`

	// TimeoutSeconds bounds a single connection attempt.
	TimeoutSeconds float64 `yaml:"timeout_seconds"`

	// Concurrency caps in-flight probes during a bulk refresh.
	Concurrency int `yaml:"concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:   ":5050",
		WakePort: 9,
		Probe: ProbeConfig{
			Port:           3389,
			TimeoutSeconds: 1.0,
			Concurrency:    20,
		},
	}
}

// Timeout returns the probe timeout as a duration.
func (p ProbeConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds * float64(time.Second))
}

// GetConfigDir returns the OS-appropriate configuration directory for the
// application. This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/wakehub or $HOME/.config/wakehub
//   - macOS: $HOME/.config/wakehub (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\wakehub
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		// Linux and other Unix-like systems
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// DefaultStorePath returns the default device registry file location.
func DefaultStorePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, storeFile), nil
}

// Load reads the configuration file, falling back to defaults when the file
// does not exist. Fields missing from the file keep their default values.
// An unparseable config file is an error: unlike the device store, the config
// is operator-written, so a typo should fail loudly rather than silently
// reset settings.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ResolveStorePath returns the configured device store path, or the default
// location when unset.
func (c *Config) ResolveStorePath() (string, error) {
	if c.StorePath != "" {
		return c.StorePath, nil
	}
	return DefaultStorePath()
}
