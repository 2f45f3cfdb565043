// Package config loads the casenara settings from an optional YAML file and
// CASENARA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"casenara/clone"
	"casenara/internal/diagnostic"
	"casenara/internal/guard"
	"casenara/internal/lookup"
	"casenara/options"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment override, e.g. CASENARA_LOG_LEVEL.
const EnvPrefix = "CASENARA"

// Config is the full set of settings.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Clone  CloneConfig  `mapstructure:"clone"`
	Guard  GuardConfig  `mapstructure:"guard"`
	Lookup LookupConfig `mapstructure:"lookup"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CloneConfig struct {
	Tiers    string `mapstructure:"tiers"`
	MaxDepth int    `mapstructure:"max_depth"`
}

type GuardConfig struct {
	PublicPaths []string `mapstructure:"public_paths"`
	LoginPath   string   `mapstructure:"login_path"`
	HomePath    string   `mapstructure:"home_path"`
}

type LookupConfig struct {
	CacheSize int  `mapstructure:"cache_size"`
	Normalize bool `mapstructure:"normalize"`
}

// Default returns the built-in settings.
func Default() Config {
	g := guard.DefaultConfig()

	return Config{
		Log:   LogConfig{Level: "info"},
		Clone: CloneConfig{Tiers: options.TierEnum(options.TierAll).String(), MaxDepth: clone.DefaultMaxDepth},
		Guard: GuardConfig{
			PublicPaths: g.PublicPaths,
			LoginPath:   g.LoginPath,
			HomePath:    g.HomePath,
		},
		Lookup: LookupConfig{CacheSize: 128, Normalize: true},
	}
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("clone.tiers", d.Clone.Tiers)
	v.SetDefault("clone.max_depth", d.Clone.MaxDepth)
	v.SetDefault("guard.public_paths", d.Guard.PublicPaths)
	v.SetDefault("guard.login_path", d.Guard.LoginPath)
	v.SetDefault("guard.home_path", d.Guard.HomePath)
	v.SetDefault("lookup.cache_size", d.Lookup.CacheSize)
	v.SetDefault("lookup.normalize", d.Lookup.Normalize)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path (when non-empty) into v and decodes the result. Without a
// path, casenara.yaml is looked up in the working directory and silently
// skipped when absent.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("casenara")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// Validate checks every setting and reports problems as diagnostics.
func (c Config) Validate() diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		diags.AddError("bad_level", "log.level", "unknown level %q", c.Log.Level)
	}

	tiers, err := options.ParseTiers(c.Clone.Tiers)
	switch {
	case err != nil:
		diags.AddError("bad_tiers", "clone.tiers", "%v", err)
	case tiers == options.TierNone:
		diags.AddWarning("no_tiers", "clone.tiers", "no tier enabled, clones fall back to zero values")
	}

	if c.Clone.MaxDepth <= 0 {
		diags.AddError("bad_depth", "clone.max_depth", "must be positive, got %d", c.Clone.MaxDepth)
	}

	if c.Guard.LoginPath == "" {
		diags.AddError("missing_path", "guard.login_path", "must not be empty")
	}

	if c.Guard.HomePath == "" {
		diags.AddError("missing_path", "guard.home_path", "must not be empty")
	}

	for _, p := range c.Guard.PublicPaths {
		if !strings.HasPrefix(p, "/") {
			diags.AddError("bad_path", "guard.public_paths", "%q must start with /", p)
		}
	}

	if !contains(c.Guard.PublicPaths, c.Guard.LoginPath) {
		diags.AddWarning("login_not_public", "guard.login_path",
			"%q is not public, anonymous users will be redirected in a loop", c.Guard.LoginPath)
	}

	switch {
	case c.Lookup.CacheSize < 0:
		diags.AddError("bad_cache_size", "lookup.cache_size", "must not be negative, got %d", c.Lookup.CacheSize)
	case c.Lookup.CacheSize == 0:
		diags.AddWarning("cache_disabled", "lookup.cache_size", "query cache disabled")
	case c.Lookup.CacheSize > lookup.MaxCacheSize:
		diags.AddWarning("cache_clamped", "lookup.cache_size", "clamped to %d", lookup.MaxCacheSize)
	}

	return diags
}

// CloneOptions converts the clone settings. Call Validate first.
func (c Config) CloneOptions() []clone.Option {
	tiers, err := options.ParseTiers(c.Clone.Tiers)
	if err != nil {
		tiers = options.TierAll
	}

	return []clone.Option{
		clone.WithTiers(tiers),
		clone.WithMaxDepth(c.Clone.MaxDepth),
	}
}

// LookupOptions converts the lookup settings.
func (c Config) LookupOptions() []lookup.Option {
	return []lookup.Option{
		lookup.WithCacheSize(c.Lookup.CacheSize),
		lookup.WithNormalize(c.Lookup.Normalize),
	}
}

// GuardConfig converts the guard settings.
func (c Config) GuardConfig() guard.Config {
	return guard.Config{
		PublicPaths: c.Guard.PublicPaths,
		LoginPath:   c.Guard.LoginPath,
		HomePath:    c.Guard.HomePath,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
