package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Paths.validate(); err != nil {
		return fmt.Errorf("paths: %w", err)
	}

	if err := validateSources(c.Sources); err != nil {
		return fmt.Errorf("sources: %w", err)
	}

	if _, err := language.Parse(c.Lexicon.Lang); err != nil {
		return fmt.Errorf("lexicon.lang %q: %w", c.Lexicon.Lang, err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Server.RateLimitPerMinute <= 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be > 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	if c.Database.BatchSize <= 0 {
		return fmt.Errorf("database.batch_size must be > 0 (got %d)", c.Database.BatchSize)
	}

	return nil
}

// RequireDatabase reports an error when no DSN is configured.
// Commands that publish to PostgreSQL call it after Load.
func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required (set DATABASE_DSN)")
	}
	return nil
}

func (p PathsConfig) validate() error {
	required := map[string]string{
		"root":            p.Root,
		"dictionary_csv":  p.DictionaryCSV,
		"dictionary_json": p.DictionaryJSON,
		"lexicon":         p.Lexicon,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

func validateSources(sources []Source) error {
	seen := make(map[string]bool, len(sources))
	for i, s := range sources {
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("[%d]: path must not be empty", i)
		}
		if strings.TrimSpace(s.Domain) == "" {
			return fmt.Errorf("[%d] %s: domain must not be empty", i, s.Path)
		}
		if seen[s.Path] {
			return fmt.Errorf("[%d] %s: duplicate source", i, s.Path)
		}
		seen[s.Path] = true
	}
	return nil
}
