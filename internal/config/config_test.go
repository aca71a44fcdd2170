package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/cardbank/internal/flagx"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes sure the developer's environment does not leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		flagx.ConfigPathEnv,
		"CARDBANK_STORE_BACKEND",
		"CARDBANK_STORE_PATH",
		"CARDBANK_PASSWORD_HASHER",
		"CARDBANK_LOG_LEVEL",
		"CARDBANK_LOG_FORMAT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, BackendJSON, c.StoreBackend)
	assert.Equal(t, "argon2id", c.PasswordHasher)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoadConfig_NoSources(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	want := &Config{
		StoreBackend:   BackendJSON,
		StorePath:      DefaultJSONPath,
		PasswordHasher: "argon2id",
		LogLevel:       "warn",
		LogFormat:      "text",
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_SQLiteGetsItsOwnDefaultPath(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig([]string{"-s", "sqlite"})
	require.NoError(t, err)
	assert.Equal(t, DefaultSQLitePath, cfg.StorePath)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{name: "all flags", args: []string{"-s", "sqlite", "-p", "/tmp/x.db", "-H", "bcrypt", "-l", "debug"},
			expected: &Config{StoreBackend: "sqlite", StorePath: "/tmp/x.db", PasswordHasher: "bcrypt", LogLevel: "debug"}},
		{name: "foreign flags ignored", args: []string{"-c", "cfg.json", "-p=a.json", "-x", "1"},
			expected: &Config{StorePath: "a.json"}},
		{name: "missing value", args: []string{"-p"}, wantErr: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoadConfig_FileThenEnvThenFlags(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "cfg.json", `{
  "store_backend": "sqlite",
  "store_path": "from-file.db",
  "log_level": "info",
  "log_format": "json"
}`)
	t.Setenv("CARDBANK_LOG_LEVEL", "error")

	cfg, err := LoadConfig([]string{"-c", path, "-p", "from-flag.db"})
	require.NoError(t, err)

	want := &Config{
		StoreBackend:   BackendSQLite,
		StorePath:      "from-flag.db",
		PasswordHasher: "argon2id",
		LogLevel:       "error",
		LogFormat:      "json",
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_YAMLFileFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "cfg.yaml", "password_hasher: sha256\nstore_path: y.json\n")
	t.Setenv(flagx.ConfigPathEnv, path)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "sha256", cfg.PasswordHasher)
	assert.Equal(t, "y.json", cfg.StorePath)
	assert.Equal(t, BackendJSON, cfg.StoreBackend)
}

func TestLoadConfig_EnvWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CARDBANK_STORE_BACKEND", "sqlite")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, DefaultSQLitePath, cfg.StorePath)
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	bad := writeFile(t, "bad.json", `{ this is not valid json`)
	_, err = LoadConfig([]string{"-c", bad})
	require.Error(t, err)

	_, err = LoadConfig([]string{"-s", "postgres"})
	require.ErrorContains(t, err, "store backend")

	_, err = LoadConfig([]string{"-H", "md5"})
	require.ErrorContains(t, err, "password hasher")
}

func TestLoadConfig_NamesAreCaseInsensitive(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig([]string{"-H", "Argon2id", "-s", "SQLite", "-l", "DEBUG"})
	require.NoError(t, err)
	assert.Equal(t, "argon2id", cfg.PasswordHasher)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, DefaultSQLitePath, cfg.StorePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}
