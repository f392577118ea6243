// Package logging provides structured diagnostics for the zscreen tool.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the tool. Logging is strictly diagnostic; user
// facing output is printed by the commands themselves, never through here.
//
// # Silent by Default
//
// CLI tools should not emit log noise, so the logger is a no-op unless the
// ZSCREEN_LOG_LEVEL environment variable selects a level:
//
//	ZSCREEN_LOG_LEVEL=debug zscreen apply -f screens.yaml
//
// Valid levels are "debug", "info", "warn", and "error". Debug level traces
// every Zabbix API call with its method, request id, and duration.
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Reconciled screen",
//	    zap.String("screen", "Network Overview"),
//	    zap.String("action", "updated"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogSession(server, username, "login")
//	logging.LogReconcile(screenName, "created", dryRun)
//
// Session tokens and passwords are never written to the log.
//
// # Configuration
//
// Initialize logging at command startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
