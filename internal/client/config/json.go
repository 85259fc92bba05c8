package config

import (
	"encoding/json"
	"os"

	"github.com/cotrip/cotrip/internal/flagx"
	"github.com/cotrip/cotrip/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero values mean "not set" so a partial file only overrides what it names.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	IdentityURL    string         `json:"identity_url"`
	IdentityAPIKey string         `json:"identity_api_key"`
	DBPath         string         `json:"db_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
	BreakerEnabled *bool          `json:"breaker_enabled"`
}

// parseJson overlays Config with values loaded from the JSON file given
// with -c or -config. Without the flag nothing happens. Read or decode
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.IdentityURL, jc.IdentityURL)
	setString(&cfg.IdentityAPIKey, jc.IdentityAPIKey)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.BreakerEnabled != nil {
		cfg.BreakerEnabled = *jc.BreakerEnabled
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
