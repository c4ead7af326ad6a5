// Package config loads wingman-memory settings.
//
// Sources are layered with koanf, later ones winning:
// struct defaults, YAML file, CRUSHABLE_WINGMAN_* environment variables.
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rcliao/wingman-memory/internal/model"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CRUSHABLE_WINGMAN_"

// EnvConfigFile names the YAML config file when --config is not given.
const EnvConfigFile = EnvPrefix + "CONFIG"

// Config is the resolved configuration for one invocation.
type Config struct {
	StateDir     string       `koanf:"state_dir"`
	MemoryDir    string       `koanf:"memory_dir"`
	TemplatesDir string       `koanf:"templates_dir"`
	LogLevel     string       `koanf:"log_level"`
	Limits       model.Limits `koanf:"limits"`
}

// Default returns the built-in configuration. home is the user's home
// directory. MemoryDir is left empty so it follows StateDir; see CaseDir.
func Default(home string) Config {
	return Config{
		StateDir: filepath.Join(home, ".codex", "state", "crushable-wingman"),
		LogLevel: "warn",
		Limits:   model.DefaultLimits(),
	}
}

// CaseDir is MemoryDir, or <StateDir>/case-files when unset.
func (c *Config) CaseDir() string {
	if c.MemoryDir != "" {
		return c.MemoryDir
	}
	return filepath.Join(c.StateDir, "case-files")
}

// Override applies command-line directory flags. Empty arguments leave the
// current value alone.
func (c *Config) Override(stateDir, memoryDir, templatesDir string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("home dir: %w", err)
	}
	if stateDir != "" {
		c.StateDir = ExpandPath(stateDir, home)
	}
	if memoryDir != "" {
		c.MemoryDir = ExpandPath(memoryDir, home)
	}
	if templatesDir != "" {
		c.TemplatesDir = ExpandPath(templatesDir, home)
	}
	return nil
}

// Load resolves configuration from defaults, the optional YAML file at path
// and the environment. A path that does not exist is ignored.
func Load(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home dir: %w", err)
	}
	cfg := Default(home)
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		path = ExpandPath(path, home)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.StateDir = ExpandPath(cfg.StateDir, home)
	cfg.MemoryDir = ExpandPath(cfg.MemoryDir, home)
	cfg.TemplatesDir = ExpandPath(cfg.TemplatesDir, home)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envValue maps CRUSHABLE_WINGMAN_STATE_DIR to state_dir and
// CRUSHABLE_WINGMAN_LIMITS_MAX_CHARS to limits.max_chars. Blank values and
// the config file variable are skipped.
func envValue(key, value string) (string, interface{}) {
	value = strings.TrimSpace(value)
	if value == "" || key == EnvConfigFile {
		return "", nil
	}
	k := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if rest, ok := strings.CutPrefix(k, "limits_"); ok {
		return "limits." + rest, value
	}
	return k, value
}

// ExpandPath expands a leading ~ and makes p absolute. Empty stays empty.
func ExpandPath(p, home string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if p == "~" {
		p = home
	} else if rest, ok := strings.CutPrefix(p, "~/"); ok {
		p = filepath.Join(home, rest)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Validate rejects limits that could never be satisfied.
func (c *Config) Validate() error {
	l := c.Limits
	if l.MaxChars < 0 || l.MaxKeyMemories < 0 || l.MaxOpenLoops < 0 || l.MaxNextSteps < 0 {
		return fmt.Errorf("snapshot limits must not be negative: %+v", l)
	}
	if c.StateDir == "" {
		return fmt.Errorf("state_dir must not be empty")
	}
	return nil
}
