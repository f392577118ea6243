package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the config file is absent or silent.
const (
	DefaultUsername       = "Admin"
	DefaultTimeoutSeconds = 30
)

// Environment variables honored by the CLI. Flags beat environment,
// environment beats the config file.
const (
	EnvServer   = "ZSCREEN_SERVER"
	EnvUsername = "ZSCREEN_USERNAME"
	EnvPassword = "ZSCREEN_PASSWORD"
	EnvToken    = "ZSCREEN_TOKEN"
	EnvTimeout  = "ZSCREEN_TIMEOUT"
	EnvInsecure = "ZSCREEN_INSECURE"
)

// Settings is the persisted configuration file.
// Passwords and session tokens are never part of it.
type Settings struct {
	Version        int    `yaml:"version"`
	Server         string `yaml:"server,omitempty"`          // Zabbix frontend URL
	Username       string `yaml:"username,omitempty"`        // API login name
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"` // HTTP request timeout
	Insecure       bool   `yaml:"insecure,omitempty"`        // skip TLS certificate verification
}

// NewSettings returns settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:        1,
		Username:       DefaultUsername,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout returns the request timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ApplyEnvironment overlays ZSCREEN_* variables onto the settings.
// Unset or malformed variables leave the current value in place.
func (s *Settings) ApplyEnvironment() {
	if v := os.Getenv(EnvServer); v != "" {
		s.Server = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		s.Username = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			s.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv(EnvInsecure); v != "" {
		s.Insecure = parseBool(v)
	}
}

// PasswordFromEnv returns the API password from the environment.
// Passwords only ever live in the environment or an interactive prompt.
func PasswordFromEnv() (string, bool) {
	return os.LookupEnv(EnvPassword)
}

// TokenFromEnv returns a pre-established session token from the
// environment.
func TokenFromEnv() (string, bool) {
	return os.LookupEnv(EnvToken)
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
