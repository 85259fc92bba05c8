package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name, e.g. COTRIP_API_URL.
const EnvPrefix = "COTRIP_"

// parseEnv overlays Config with COTRIP_* environment variables. Unset
// variables leave the current value alone. Durations use Go syntax ("10s").
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
