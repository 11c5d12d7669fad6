// Package config loads the closed configuration envelope for the
// compression pipeline (Batcher + ObjectStore). It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.1.0
package config

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/yousif123412321/pod-protocol/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

const (
	maxAllowedBatchSize   = 10_000
	maxAllowedFlushMillis = 3_600_000
)

// StorageConfig is the storage.* section of the configuration envelope,
// per spec §6.
type StorageConfig struct {
	Kind       string `mapstructure:"kind" json:"kind"`
	GatewayURL string `mapstructure:"gateway_url" json:"gateway_url"`
	Disabled   bool   `mapstructure:"disabled" json:"disabled"`
}

// Config is the closed configuration record for the Batcher and
// ObjectStore. Unlike the teacher's dynamically-typed YAML blob, this
// record enumerates exactly the option set of spec §6 and rejects
// unknown keys (spec §9: "replace dynamic typed configuration with a
// closed configuration record... reject unknown keys").
type Config struct {
	MaxBatchSize    int           `mapstructure:"max_batch_size" json:"max_batch_size"`
	FlushIntervalMS int           `mapstructure:"flush_interval_ms" json:"flush_interval_ms"`
	BatchingEnabled bool          `mapstructure:"batching_enabled" json:"batching_enabled"`
	Storage         StorageConfig `mapstructure:"storage" json:"storage"`
}

// Load reads configFile (a YAML/JSON/TOML file recognized by viper) and,
// if env is non-empty, merges a same-named override file. It returns a
// freshly constructed Config — there is no package-level singleton, per
// spec §9's injected-handle guidance. Unknown keys are rejected.
func Load(configFile string, env string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	// batching_enabled defaults to true per spec; SetDefault only
	// applies when the key is absent from configFile, so an explicit
	// "batching_enabled: false" in the file still wins.
	v.SetDefault("batching_enabled", true)
	if err := v.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		v.AddConfigPath(filepath.Dir(configFile))
		v.SetConfigName(env)
		if err := v.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	v.SetEnvPrefix("POD")
	v.AutomaticEnv()

	var cfg Config
	decodeOpt := func(dc *mapstructure.DecoderConfig) { dc.ErrorUnused = true }
	if err := v.Unmarshal(&cfg, decodeOpt); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	if err := cfg.applyDefaults().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configFile and merges the environment named by the
// POD_ENV environment variable, if set.
func LoadFromEnv(configFile string) (*Config, error) {
	return Load(configFile, utils.EnvOrDefault("POD_ENV", ""))
}

// LoadDotEnv overlays a .env file (as the teacher's cmd/cli/ipfs.go does
// via godotenv.Load) before environment variables are read. Missing
// files are not an error — .env is optional in every deployment.
func LoadDotEnv(path string) {
	_ = godotenv.Load(path)
}

// applyDefaults fills the zero-valued fields that are unambiguous at the
// zero value. batching_enabled's default lives in Load's
// v.SetDefault call instead: unlike these fields, false is a valid,
// deliberate setting for it, so it cannot be defaulted from a bare
// Config value the way MaxBatchSize/FlushIntervalMS/Storage.Kind are.
func (c Config) applyDefaults() Config {
	if c.MaxBatchSize == 0 {
		c.MaxBatchSize = 100
	}
	if c.FlushIntervalMS == 0 {
		c.FlushIntervalMS = 5000
	}
	if c.Storage.Kind == "" {
		c.Storage.Kind = "in_memory"
	}
	return c
}

// Validate enforces the ranges and required fields of spec §6.
func (c Config) Validate() error {
	if c.MaxBatchSize < 1 || c.MaxBatchSize > maxAllowedBatchSize {
		return fmt.Errorf("config: max_batch_size must be in [1, %d], got %d", maxAllowedBatchSize, c.MaxBatchSize)
	}
	if c.FlushIntervalMS < 1 || c.FlushIntervalMS > maxAllowedFlushMillis {
		return fmt.Errorf("config: flush_interval_ms must be in [1, %d], got %d", maxAllowedFlushMillis, c.FlushIntervalMS)
	}
	switch c.Storage.Kind {
	case "in_memory":
	case "remote":
		if c.Storage.GatewayURL == "" {
			return fmt.Errorf("config: storage.gateway_url is required when storage.kind is \"remote\"")
		}
	default:
		return fmt.Errorf("config: storage.kind must be \"in_memory\" or \"remote\", got %q", c.Storage.Kind)
	}
	return nil
}
