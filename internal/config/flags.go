package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/cardbank/internal/flagx"
)

// parseFlags populates cfg from the flags it owns. Other flags in args are
// ignored via flagx.FilterArgs.
//
//	-s string   store backend
//	-p string   store path
//	-H string   password hasher
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-s", "-p", "-H", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "store backend (json or sqlite)")
	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "path of the record store")
	fs.StringVar(&cfg.PasswordHasher, "H", cfg.PasswordHasher, "password hasher (argon2id, bcrypt, sha256)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
