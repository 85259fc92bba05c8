// Package config loads runtime configuration for the cotrip CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. COTRIP_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the trip API
//	-i string   base URL of the identity service
//	-k string   identity service API key
//	-d string   path of the local database
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Timeouts are timex.Duration values, so either "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.cotrip.example/api",
//	  "identity_url": "https://auth.cotrip.example",
//	  "identity_api_key": "public-anon-key",
//	  "db_path": "/home/me/.cotrip.db",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "breaker_enabled": true
//	}
//
// # Environment
//
//	COTRIP_API_URL, COTRIP_IDENTITY_URL, COTRIP_IDENTITY_API_KEY,
//	COTRIP_DB_PATH, COTRIP_REQUEST_TIMEOUT ("10s"), COTRIP_LOG_LEVEL,
//	COTRIP_BREAKER_ENABLED
package config
