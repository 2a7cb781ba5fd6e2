// Package config holds runtime settings for the pinauth client and loads
// them with defaults -> JSON file -> command-line flags precedence, later
// sources overriding earlier ones.
package config

import "time"

// Config holds runtime settings for the auth client.
//
// Fields:
//   - DatabaseDriver: "sqlite" (default, local file) or "pgx" (Postgres).
//   - DatabaseDSN: path or DSN of the auth database.
//   - APIDelay: simulated network round-trip applied to every auth operation.
//   - TestPin: the fixed PIN accepted in demo mode.
//   - AcceptTestPin: whether TestPin is accepted in addition to issued PINs.
//   - PinTTL: validity window of an issued PIN.
//   - SecretKey: HMAC key for minted access tokens.
//   - TokenValidity: lifetime of a minted access token.
type Config struct {
	DatabaseDriver string
	DatabaseDSN    string
	APIDelay       time.Duration
	TestPin        string
	AcceptTestPin  bool
	PinTTL         time.Duration
	SecretKey      string
	TokenValidity  time.Duration
}

// LoadDefaults populates c with sensible defaults for the local demo.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "pinauth.db"
	c.APIDelay = 500 * time.Millisecond
	c.TestPin = "123456"
	c.AcceptTestPin = true
	c.PinTTL = 5 * time.Minute
	c.SecretKey = "local-dev-secret"
	c.TokenValidity = 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
