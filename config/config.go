// Package config provides runtime configuration values read from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// EnvPort selects the listening port of the HTTP surface
	EnvPort = "PORT"
	// EnvDebug enables debug logging when set to any non-empty value
	EnvDebug = "ECDEMO_DEBUG"
	// EnvServer is the base URL the terminal shop talks to
	EnvServer = "ECDEMO_SERVER"

	DefaultPort = 3000
)

// Config holds the settings shared by the subcommands
type Config struct {
	Port      int
	Debug     bool
	ServerURL string
}

// Load collects configuration from environment with defaults.
// An unparsable PORT falls back to DefaultPort.
func Load() Config {
	port := atoienv(EnvPort, DefaultPort)
	return Config{
		Port:      port,
		Debug:     os.Getenv(EnvDebug) != "",
		ServerURL: getenv(EnvServer, fmt.Sprintf("http://localhost:%d", port)),
	}
}

// Addr returns the listen address for the HTTP surface
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > 65535 {
		return def
	}
	return n
}
