package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "zscreen") {
		t.Errorf("GetConfigDir() = %v, should contain 'zscreen'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") && os.Getenv("XDG_CONFIG_HOME") == "" {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewSettings(t *testing.T) {
	s := NewSettings()

	if s.Version != 1 {
		t.Errorf("Version = %d, want 1", s.Version)
	}

	if s.Username != DefaultUsername {
		t.Errorf("Username = %s, want %s", s.Username, DefaultUsername)
	}

	if s.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", s.TimeoutSeconds, DefaultTimeoutSeconds)
	}

	if s.Insecure {
		t.Error("Insecure should default to false")
	}
}

func TestTimeout(t *testing.T) {
	s := NewSettings()
	s.TimeoutSeconds = 5

	if s.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", s.Timeout())
	}

	// Zero or negative fall back to the default
	s.TimeoutSeconds = 0
	if s.Timeout() != DefaultTimeoutSeconds*time.Second {
		t.Errorf("Timeout() = %v, want %ds", s.Timeout(), DefaultTimeoutSeconds)
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvServer, "https://zabbix.example.com")
	t.Setenv(EnvUsername, "automation")
	t.Setenv(EnvTimeout, "45")
	t.Setenv(EnvInsecure, "true")

	s := NewSettings()
	s.ApplyEnvironment()

	if s.Server != "https://zabbix.example.com" {
		t.Errorf("Server = %s, want https://zabbix.example.com", s.Server)
	}

	if s.Username != "automation" {
		t.Errorf("Username = %s, want automation", s.Username)
	}

	if s.TimeoutSeconds != 45 {
		t.Errorf("TimeoutSeconds = %d, want 45", s.TimeoutSeconds)
	}

	if !s.Insecure {
		t.Error("Insecure should be true")
	}
}

func TestApplyEnvironmentIgnoresUnsetAndMalformed(t *testing.T) {
	t.Setenv(EnvTimeout, "not-a-number")

	s := NewSettings()
	s.Server = "https://from-file.example.com"
	s.ApplyEnvironment()

	if s.Server != "https://from-file.example.com" {
		t.Errorf("Server = %s, unset env should not override", s.Server)
	}

	if s.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, malformed env should not override", s.TimeoutSeconds)
	}
}

func TestPasswordFromEnv(t *testing.T) {
	if _, ok := PasswordFromEnv(); ok {
		t.Skip("ZSCREEN_PASSWORD set in test environment")
	}

	t.Setenv(EnvPassword, "secret")

	password, ok := PasswordFromEnv()
	if !ok || password != "secret" {
		t.Errorf("PasswordFromEnv() = %q, %v, want secret, true", password, ok)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	s := NewSettings()
	s.Server = "https://zabbix.example.com"
	s.Username = "automation"
	s.TimeoutSeconds = 10
	s.Insecure = true

	if err := s.saveTo(path); err != nil {
		t.Fatalf("saveTo() error = %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if loaded.Server != s.Server {
		t.Errorf("Server = %s, want %s", loaded.Server, s.Server)
	}

	if loaded.Username != s.Username {
		t.Errorf("Username = %s, want %s", loaded.Username, s.Username)
	}

	if loaded.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", loaded.TimeoutSeconds)
	}

	if !loaded.Insecure {
		t.Error("Insecure should survive the round trip")
	}

	// The saved file carries the security header
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if !strings.Contains(string(data), "NEVER stored") {
		t.Error("saved config should carry the credentials warning header")
	}
	if strings.Contains(string(data), "password:") {
		t.Error("saved config must not contain a password field")
	}
}

func TestLoadFromFileRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 2\nserver: https://x\n"), 0600); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() should reject unsupported versions")
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"banana", false},
	}

	for _, tt := range tests {
		if got := parseBool(tt.in); got != tt.want {
			t.Errorf("parseBool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
