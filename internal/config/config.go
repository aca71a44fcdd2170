package config

import (
	"fmt"
	"strings"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultJSONPath   = "data/users.json"
	DefaultSQLitePath = "data/users.db"
)

// Config holds runtime settings. The yaml/json/toml tags describe the config
// file, env tags the environment overlay.
type Config struct {
	StoreBackend   string `json:"store_backend" yaml:"store_backend" toml:"store_backend" env:"CARDBANK_STORE_BACKEND"`
	StorePath      string `json:"store_path" yaml:"store_path" toml:"store_path" env:"CARDBANK_STORE_PATH"`
	PasswordHasher string `json:"password_hasher" yaml:"password_hasher" toml:"password_hasher" env:"CARDBANK_PASSWORD_HASHER"`
	LogLevel       string `json:"log_level" yaml:"log_level" toml:"log_level" env:"CARDBANK_LOG_LEVEL"`
	LogFormat      string `json:"log_format" yaml:"log_format" toml:"log_format" env:"CARDBANK_LOG_FORMAT"`
}

// LoadDefaults populates c with defaults. StorePath is left empty so that it
// can follow the backend chosen by later layers.
func (c *Config) LoadDefaults() {
	c.StoreBackend = BackendJSON
	c.StorePath = ""
	c.PasswordHasher = "argon2id"
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, the config file and environment,
// then the flags found in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	cfg.normalize()
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath(cfg.StoreBackend)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultStorePath(backend string) string {
	if backend == BackendSQLite {
		return DefaultSQLitePath
	}
	return DefaultJSONPath
}

// normalize lowercases the names matched by other packages, so "-H Argon2id"
// and "-s SQLite" are accepted.
func (c *Config) normalize() {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	c.PasswordHasher = strings.ToLower(strings.TrimSpace(c.PasswordHasher))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// Validate rejects values no component understands. Log level and format are
// checked when the logger is built.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.StoreBackend)
	}
	switch c.PasswordHasher {
	case "", "argon2id", "bcrypt", "sha256":
	default:
		return fmt.Errorf("config: unknown password hasher %q", c.PasswordHasher)
	}
	if c.StorePath == "" {
		return fmt.Errorf("config: empty store path")
	}
	return nil
}
