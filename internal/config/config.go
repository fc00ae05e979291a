package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// DefaultPassword is the word typed to confirm a reshuffle
const DefaultPassword = "SHUFFLE"

// Config represents the application configuration
type Config struct {
	ConfirmPassword string `toml:"confirm_password"`
	ConfirmAttempts int    `toml:"confirm_attempts"`
	CardSize        string `toml:"card_size"`
	SecureShuffle   bool   `toml:"secure_shuffle"`
	ValidateRestore bool   `toml:"validate_restore"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ConfirmPassword: DefaultPassword,
		ConfirmAttempts: 3,
		CardSize:        "medium",
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGRuntimeDir returns XDG_RUNTIME_DIR or a per-user directory under the
// system temp dir
func GetXDGRuntimeDir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return xdgRuntime
	}
	return filepath.Join(os.TempDir(), "shuffler-"+strconv.Itoa(os.Getuid()))
}

// GetSessionRoot returns the directory holding all sessions
func GetSessionRoot() string {
	if os.Getenv("XDG_RUNTIME_DIR") == "" {
		return GetXDGRuntimeDir()
	}
	return filepath.Join(GetXDGRuntimeDir(), "shuffler")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "shuffler", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if missing
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.normalize()

	return config, nil
}

// normalize fills zero values left by a partial config file
func (c *Config) normalize() {
	if c.ConfirmPassword == "" {
		c.ConfirmPassword = DefaultPassword
	}
	if c.ConfirmAttempts <= 0 {
		c.ConfirmAttempts = 3
	}
	if c.CardSize == "" {
		c.CardSize = "medium"
	}
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes config to the config file
func SaveConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}
