// Package config loads the optional vega.toml file that overrides a
// table's growth limits and the CLI's default output behavior.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"vega/internal/types"
)

const noConfigMessage = "no vega.toml found, using default limits"

// Config is the decoded contents of vega.toml.
type Config struct {
	Path string

	Limits limitsConfig `toml:"limits"`
	Output outputConfig `toml:"output"`
}

type limitsConfig struct {
	MaxTypes        uint32 `toml:"max_types"`
	MaxBVWidth      uint32 `toml:"max_bv_width"`
	MaxArity        uint32 `toml:"max_arity"`
	InitialCapacity uint32 `toml:"initial_capacity"`
}

type outputConfig struct {
	Color string `toml:"color"`
	Quiet bool   `toml:"quiet"`
}

// TableLimits converts the decoded [limits] section into types.Limits,
// leaving unset fields at zero so types.Init falls back to its own
// defaults.
func (c Config) TableLimits() types.Limits {
	return types.Limits{
		MaxTypes:        c.Limits.MaxTypes,
		MaxBVWidth:      c.Limits.MaxBVWidth,
		MaxArity:        c.Limits.MaxArity,
		InitialCapacity: c.Limits.InitialCapacity,
	}
}

// Find walks up from startDir looking for vega.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "vega.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes vega.toml starting from startDir. If no file is
// found, it returns the zero Config (all-default limits) and false,
// which callers treat as "use types.DefaultLimits()".
func Load(startDir string) (Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Config{}, false, err
	}
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, false, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("limits", "max_bv_width") && cfg.Limits.MaxBVWidth == 0 {
		return Config{}, false, fmt.Errorf("%s: [limits].max_bv_width must be nonzero", path)
	}
	cfg.Path = path
	return cfg, true, nil
}

// Message describes the outcome of Load for CLI banners.
func Message(path string, found bool) string {
	if !found {
		return noConfigMessage
	}
	return fmt.Sprintf("using limits from %s", path)
}
