// Package config loads the minepad server configuration from a JSON file,
// applying defaults and environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

var (
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultPath is where the server looks for configuration when no explicit
// path is given.
const DefaultPath = "config.json"

// Config holds everything the server needs to start. InterfacePort serves
// the web pad UI and REST API; SocketPort serves the websocket the pad
// streams over. The pairing URL handed to players points at InterfacePort.
type Config struct {
	Hostname      string `json:"hostname"`
	InterfacePort int    `json:"interface_port"`
	SocketPort    int    `json:"socket_port"`
	StaticDir     string `json:"static_dir"`
	LogLevel      string `json:"log_level"`
	TickRate      int    `json:"tick_rate"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Hostname:      "localhost",
		InterfacePort: 8080,
		SocketPort:    8081,
		StaticDir:     "web",
		LogLevel:      "info",
		TickRate:      20,
	}
}

// Load reads and validates the configuration file at path. Fields omitted
// from the file keep their defaults; MINEPAD_* environment variables win
// over both. A missing file is reported as ErrConfigNotFound so callers can
// decide whether that is fatal.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv returns the defaults with environment overrides applied, for
// running without a config file.
func FromEnv() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MINEPAD_HOSTNAME"); v != "" {
		c.Hostname = v
	}
	if v := os.Getenv("MINEPAD_INTERFACE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.InterfacePort = port
		}
	}
	if v := os.Getenv("MINEPAD_SOCKET_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.SocketPort = port
		}
	}
}

// Validate checks the configuration for values the server cannot start with.
func (c Config) Validate() error {
	if c.Hostname == "" {
		return fmt.Errorf("%w: hostname is required", ErrInvalidConfig)
	}
	if c.InterfacePort <= 0 || c.InterfacePort > 65535 {
		return fmt.Errorf("%w: interface_port %d out of range", ErrInvalidConfig, c.InterfacePort)
	}
	if c.SocketPort <= 0 || c.SocketPort > 65535 {
		return fmt.Errorf("%w: socket_port %d out of range", ErrInvalidConfig, c.SocketPort)
	}
	if c.InterfacePort == c.SocketPort {
		return fmt.Errorf("%w: interface_port and socket_port must differ", ErrInvalidConfig)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalidConfig)
	}
	return nil
}

// InterfaceAddr is the listen address for the web UI and REST API.
func (c Config) InterfaceAddr() string {
	return fmt.Sprintf(":%d", c.InterfacePort)
}

// SocketAddr is the listen address for the websocket server.
func (c Config) SocketAddr() string {
	return fmt.Sprintf(":%d", c.SocketPort)
}

// PairURL builds the URL a player opens to claim the controller session
// holding code.
func (c Config) PairURL(code string) string {
	return fmt.Sprintf("http://%s:%d/?code=%s", c.Hostname, c.InterfacePort, code)
}
