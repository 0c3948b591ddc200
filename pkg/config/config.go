// Package config resolves where and how moodlog stores its data.
//
// Values come from, in increasing priority: defaults, a .moodlog.{yaml,json,toml}
// file, MOODLOG_* environment variables (a .env file in the working directory
// is loaded first), and explicit overrides such as command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/unowned-ai/moodlog/pkg/kv"
	"github.com/unowned-ai/moodlog/pkg/utils"
)

const (
	keyBackend    = "backend"
	keyPath       = "path"
	keySQLiteWAL  = "sqlite.wal"
	keySQLiteSync = "sqlite.sync"

	envPrefix      = "MOODLOG"
	configName     = ".moodlog"
	configPathEnv  = "MOODLOG_CONFIG_PATH"
	defaultSyncArg = "NORMAL"
)

// Config is the resolved storage configuration.
type Config struct {
	Backend    string
	Path       string
	SQLiteWAL  bool
	SQLiteSync string
	// File is the config file that was read, empty if none.
	File string
}

// Options are explicit overrides. Empty fields fall through to the config
// file and environment.
type Options struct {
	File    string
	Backend string
	Path    string
}

// Load resolves the configuration. A missing config file is not an error; an
// unreadable or malformed one is.
func Load(opts Options) (Config, error) {
	// Optional; most installs have no .env.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(keyBackend, kv.BackendDiskv)
	v.SetDefault(keyPath, "")
	v.SetDefault(keySQLiteWAL, true)
	v.SetDefault(keySQLiteSync, defaultSyncArg)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(configName) // extension is implicit
		if override := os.Getenv(configPathEnv); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("$HOME")
		v.AddConfigPath("./")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Config{
		Backend:    strings.ToLower(v.GetString(keyBackend)),
		Path:       v.GetString(keyPath),
		SQLiteWAL:  v.GetBool(keySQLiteWAL),
		SQLiteSync: v.GetString(keySQLiteSync),
		File:       v.ConfigFileUsed(),
	}
	if opts.Backend != "" {
		cfg.Backend = strings.ToLower(opts.Backend)
	}
	if opts.Path != "" {
		cfg.Path = opts.Path
	}

	if err := cfg.resolvePath(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolvePath() error {
	var fallback string
	switch c.Backend {
	case kv.BackendDiskv:
		fallback = utils.DefaultDiskvPath()
	case kv.BackendSQLite:
		if c.Path == ":memory:" {
			return nil
		}
		fallback = utils.DefaultSQLitePath()
	case kv.BackendMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q (expected one of %v)", c.Backend, kv.Backends())
	}

	resolved, err := utils.ResolvePath(c.Path, fallback)
	if err != nil {
		return err
	}
	c.Path = resolved
	return nil
}

// KVOptions describes the backend to open.
func (c Config) KVOptions() kv.Options {
	return kv.Options{
		Backend: c.Backend,
		Path:    c.Path,
		WAL:     c.SQLiteWAL,
		Sync:    c.SQLiteSync,
	}
}

// OpenStore opens the configured backend, creating its directory if needed.
func (c Config) OpenStore() (kv.Store, error) {
	switch c.Backend {
	case kv.BackendDiskv:
		if err := utils.EnsureDir(c.Path); err != nil {
			return nil, err
		}
	case kv.BackendSQLite:
		if c.Path != ":memory:" {
			if err := utils.EnsureDir(filepath.Dir(c.Path)); err != nil {
				return nil, err
			}
		}
	}
	return kv.Open(c.KVOptions())
}
