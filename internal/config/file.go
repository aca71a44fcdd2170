package config

import (
	"fmt"

	"github.com/dmitrijs2005/cardbank/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
)

// parseFile overlays cfg with the config file named by -c/-config (or
// CARDBANK_CONFIG) and then with CARDBANK_* environment variables. Keys
// missing from the file and unset variables leave cfg untouched.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("config: read env: %w", err)
		}
		return nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}
