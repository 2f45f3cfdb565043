package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"casenara/internal/config"
	"casenara/options"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	diags := cfg.Validate()
	assert.False(t, diags.HasErrors())
	assert.Empty(t, diags.Warnings)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casenara.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
clone:
  tiers: json+walk
  max_depth: 64
guard:
  public_paths: [/login, /register, /help]
lookup:
  cache_size: 16
  normalize: false
`), 0o600))

	cfg, err := config.Load(config.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json+walk", cfg.Clone.Tiers)
	assert.Equal(t, 64, cfg.Clone.MaxDepth)
	assert.Equal(t, []string{"/login", "/register", "/help"}, cfg.Guard.PublicPaths)
	assert.Equal(t, "/login", cfg.Guard.LoginPath, "unset keys keep defaults")
	assert.Equal(t, 16, cfg.Lookup.CacheSize)
	assert.False(t, cfg.Lookup.Normalize)

	assert.NoError(t, cfg.Validate().Err())
	assert.Len(t, cfg.CloneOptions(), 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CASENARA_LOG_LEVEL", "warn")
	t.Setenv("CASENARA_CLONE_MAX_DEPTH", "12")

	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 12, cfg.Clone.MaxDepth)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Log.Level = "loud"
	cfg.Clone.Tiers = "native"
	cfg.Clone.MaxDepth = 0
	cfg.Guard.LoginPath = "/signin"
	cfg.Guard.PublicPaths = []string{"login"}
	cfg.Lookup.CacheSize = 0

	diags := cfg.Validate()

	var errKeys []string
	for _, d := range diags.Errors {
		errKeys = append(errKeys, d.Key)
	}

	assert.Equal(t, []string{"log.level", "clone.tiers", "clone.max_depth", "guard.public_paths"}, errKeys)

	var warnCodes []string
	for _, d := range diags.Warnings {
		warnCodes = append(warnCodes, d.Code)
	}

	assert.Equal(t, []string{"login_not_public", "cache_disabled"}, warnCodes)
	assert.Error(t, diags.Err())
}

func TestValidateNoTiers(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Clone.Tiers = options.TierEnum(options.TierNone).String()

	diags := cfg.Validate()
	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "clone.tiers", diags.Warnings[0].Key)
}

func TestGuardConfig(t *testing.T) {
	t.Parallel()

	g := config.Default().GuardConfig()
	assert.Equal(t, "/login", g.LoginPath)
	assert.Equal(t, "/", g.HomePath)
	assert.Equal(t, []string{"/login", "/register"}, g.PublicPaths)
}
