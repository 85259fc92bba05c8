package config

import "time"

// Config holds runtime settings for the cotrip CLI.
//
// Fields:
//   - APIBaseURL: base URL of the trip/activity API (paths /trips... are appended).
//   - IdentityURL: base URL of the identity service (paths /auth/v1/... are appended).
//   - IdentityAPIKey: public key sent as the "apikey" header to the identity service.
//   - DBPath: local SQLite file holding the session; ":memory:" keeps nothing.
//   - RequestTimeout: per-request timeout of every remote call.
//   - LogLevel: debug, info, warn or error.
//   - BreakerEnabled: wrap remote calls in a circuit breaker.
type Config struct {
	APIBaseURL     string        `env:"API_URL"`
	IdentityURL    string        `env:"IDENTITY_URL"`
	IdentityAPIKey string        `env:"IDENTITY_API_KEY"`
	DBPath         string        `env:"DB_PATH"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	LogLevel       string        `env:"LOG_LEVEL"`
	BreakerEnabled bool          `env:"BREAKER_ENABLED"`
}

// LoadDefaults populates c with defaults suitable for a local stack.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000/api"
	c.IdentityURL = "http://localhost:54321"
	c.IdentityAPIKey = ""
	c.DBPath = "cotrip.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.BreakerEnabled = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. Invalid input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
