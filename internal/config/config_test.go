package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDB, EnvUser, EnvLogLevel, EnvCatalog} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Flags{}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "codeleveling", "codeleveling.db"), cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.User)
}

func TestLoadFlagBeatsEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvDB, filepath.Join(dir, "env.db"))
	t.Setenv(EnvUser, "envuser")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(Flags{DB: filepath.Join(dir, "sub", "flag.db"), User: "flaguser", LogLevel: "DEBUG"}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub", "flag.db"), cfg.DBPath)
	assert.Equal(t, "flaguser", cfg.User)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.DirExists(t, filepath.Join(dir, "sub"))

	cfg, err = Load(Flags{}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env.db"), cfg.DBPath)
	assert.Equal(t, "envuser", cfg.User)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvUser)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvUser+"=dotenv\n"), 0o644))

	cfg, err := Load(Flags{}, envFile)
	require.NoError(t, err)
	assert.Equal(t, "dotenv", cfg.User)
}

func TestLoadMissingEnvFileIsFine(t *testing.T) {
	clearEnv(t)
	_, err := Load(Flags{}, filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}

func TestLoadValidation(t *testing.T) {
	clearEnv(t)

	_, err := Load(Flags{LogLevel: "chatty"}, "")
	assert.Error(t, err)

	t.Setenv(EnvCatalog, filepath.Join(t.TempDir(), "missing.json"))
	_, err = Load(Flags{}, "")
	assert.Error(t, err)
}
