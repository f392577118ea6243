// Package config provides persistent settings for the zscreen CLI.
//
// This package manages a small YAML file holding connection defaults for
// the Zabbix server (URL, username, timeout, TLS mode), plus the
// environment variable overrides layered on top of it. Resolution order
// is: command-line flags, then ZSCREEN_* environment variables, then the
// config file, then built-in defaults.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/zscreen/config.yaml or $HOME/.config/zscreen/config.yaml
//   - macOS: $HOME/.config/zscreen/config.yaml
//   - Windows: %LOCALAPPDATA%\zscreen\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores the Zabbix password or session
// token. Credentials come from an interactive prompt or from the
// ZSCREEN_PASSWORD / ZSCREEN_TOKEN environment variables, per run.
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings.ApplyEnvironment()
//
//	client := zabbix.NewClient(settings.Server)
//	client.SetTimeout(settings.Timeout())
//
// # Thread Safety
//
// The global settings instance uses sync.Once for safe initialization.
// File writes are atomic (temp file + rename) and mutex-protected.
package config
