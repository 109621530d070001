package config

import (
	"path/filepath"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Sources  []Source       `yaml:"sources"`
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Database DatabaseConfig `yaml:"database"`
}

// PathsConfig holds artifact locations. Relative paths resolve against Root.
type PathsConfig struct {
	Root           string `yaml:"root"            env:"NINOLEX_ROOT"            env-default:"."`
	DictionaryCSV  string `yaml:"dictionary_csv"  env:"NINOLEX_DICTIONARY_CSV"  env-default:"dist/dictionary/ninolex_gh_dictionary.csv"`
	DictionaryJSON string `yaml:"dictionary_json" env:"NINOLEX_DICTIONARY_JSON" env-default:"dist/dictionary/ninolex_gh_dictionary.json"`
	PackageJSON    string `yaml:"package_json"    env:"NINOLEX_PACKAGE_JSON"`
	Lexicon        string `yaml:"lexicon"         env:"NINOLEX_LEXICON_PATH"    env-default:"exports/ninolex_gh_core.pls"`
}

// Resolve returns path joined to Root unless it is already absolute.
// An empty path stays empty.
func (p PathsConfig) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

// Source is one domain CSV table feeding the unified dictionary.
// Path is stored verbatim as the entries' source_file.
type Source struct {
	Path   string `yaml:"path"`
	Domain string `yaml:"domain"`
}

// LexiconConfig holds PLS export settings.
type LexiconConfig struct {
	Lang string `yaml:"lang" env:"NINOLEX_LEXICON_LANG" env-default:"en-GH"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// ServerConfig holds HTTP lookup server settings.
type ServerConfig struct {
	Host               string        `yaml:"host"                  env:"SERVER_HOST"                  env-default:"0.0.0.0"`
	Port               int           `yaml:"port"                  env:"SERVER_PORT"                  env-default:"8080"`
	ReadTimeout        time.Duration `yaml:"read_timeout"          env:"SERVER_READ_TIMEOUT"          env-default:"10s"`
	WriteTimeout       time.Duration `yaml:"write_timeout"         env:"SERVER_WRITE_TIMEOUT"         env-default:"30s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"          env:"SERVER_IDLE_TIMEOUT"          env-default:"60s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"      env:"SERVER_SHUTDOWN_TIMEOUT"      env-default:"10s"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"600"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// DatabaseConfig holds PostgreSQL connection settings for the publisher.
// DSN is only required by commands that talk to the database.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	BatchSize       int           `yaml:"batch_size"         env:"DATABASE_BATCH_SIZE"         env-default:"500"`
}

// DefaultSources is the canonical source list, in build order.
func DefaultSources() []Source {
	return []Source{
		{Path: "data/core/core_terms.csv", Domain: "core"},
		{Path: "data/places/regions.csv", Domain: "places"},
		{Path: "data/places/towns.csv", Domain: "places"},
		{Path: "data/places/constituencies.csv", Domain: "places"},
		{Path: "data/sports/football_clubs.csv", Domain: "sports"},
		{Path: "data/people/public_figures.csv", Domain: "people"},
		{Path: "data/people/complex_names.csv", Domain: "people"},
		{Path: "data/education/shs.csv", Domain: "education"},
	}
}
