package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/pinauth/internal/flagx"
	"github.com/dmitrijs2005/pinauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations can
// be given either as strings like "500ms" or as integer nanoseconds. Pointer
// fields distinguish "absent" from zero values, so a partial config file
// overrides only what it mentions.
type JsonConfig struct {
	DatabaseDriver *string         `json:"database_driver"`
	DatabaseDSN    *string         `json:"database_dsn"`
	APIDelay       *timex.Duration `json:"api_delay"`
	TestPin        *string         `json:"test_pin"`
	AcceptTestPin  *bool           `json:"accept_test_pin"`
	PinTTL         *timex.Duration `json:"pin_ttl"`
	SecretKey      *string         `json:"secret_key"`
	TokenValidity  *timex.Duration `json:"token_validity"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when neither is given, nothing is
// loaded. Read or unmarshal errors panic, as a broken explicit config file
// should not be silently ignored.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}
	overlayJsonFile(cfg, jsonConfigFile)
}

func overlayJsonFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDriver != nil {
		cfg.DatabaseDriver = *jc.DatabaseDriver
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.APIDelay != nil {
		cfg.APIDelay = time.Duration(jc.APIDelay.Duration)
	}
	if jc.TestPin != nil {
		cfg.TestPin = *jc.TestPin
	}
	if jc.AcceptTestPin != nil {
		cfg.AcceptTestPin = *jc.AcceptTestPin
	}
	if jc.PinTTL != nil {
		cfg.PinTTL = time.Duration(jc.PinTTL.Duration)
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.TokenValidity != nil {
		cfg.TokenValidity = time.Duration(jc.TokenValidity.Duration)
	}
}
