// Package config loads runtime configuration for the cardbank CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c / -config, or CARDBANK_CONFIG.
//     The format follows the extension (.json, .yaml, .yml, .toml).
//  3. CARDBANK_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-s string   store backend: json or sqlite
//	-p string   path of the record store
//	-H string   password hasher: argon2id, bcrypt or sha256
//	-l string   log level: debug, info, warn, error
//
// Example file
//
//	{
//	  "store_backend": "sqlite",
//	  "store_path": "data/users.db",
//	  "password_hasher": "argon2id",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
package config
