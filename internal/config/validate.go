package config

import (
	"fmt"
	"slices"
)

const minJWTSecretLen = 32

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	if err := c.Lexicon.validate(c.Database); err != nil {
		return fmt.Errorf("lexicon: %w", err)
	}

	if c.Engine.CacheSize < 0 {
		return fmt.Errorf("engine.cache_size must be >= 0 (got %d)", c.Engine.CacheSize)
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers must be >= 0 (got %d)", c.Engine.Workers)
	}

	if c.Auth.Enabled() {
		if len(c.Auth.JWTSecret) < minJWTSecretLen {
			return fmt.Errorf("auth.jwt_secret must be at least %d characters (got %d)", minJWTSecretLen, len(c.Auth.JWTSecret))
		}
		if c.Auth.TokenTTL <= 0 {
			return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
		}
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	return nil
}

func (l LexiconConfig) validate(db DatabaseConfig) error {
	switch l.Source {
	case LexiconSourceCELEX:
		if l.CELEXPath == "" {
			return fmt.Errorf("celex_path is required for source %q", l.Source)
		}
	case LexiconSourcePostgres:
		if db.DSN == "" {
			return fmt.Errorf("database.dsn is required for source %q", l.Source)
		}
	default:
		return fmt.Errorf("source must be %q or %q (got %q)", LexiconSourceCELEX, LexiconSourcePostgres, l.Source)
	}
	return nil
}
