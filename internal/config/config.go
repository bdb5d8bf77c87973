package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ashwch/nmenu/internal/appdirs"
	"github.com/ashwch/nmenu/internal/generate"
	"github.com/ashwch/nmenu/internal/runtime"
)

const (
	EnvRules    = "NMENU_RULES"
	EnvUI       = "NMENU_UI"
	EnvLogLevel = "NMENU_LOG_LEVEL"
)

type UIConfig struct {
	Backend string `toml:"backend" json:"backend"`
	Lines   int    `toml:"lines" json:"lines"`
}

type ExecConfig struct {
	Mode string `toml:"mode" json:"mode"`
}

type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}

type GeneratorsConfig struct {
	Cache bool `toml:"cache" json:"cache"`
}

type Config struct {
	Version    int              `toml:"version" json:"version"`
	Rules      string           `toml:"rules" json:"rules"`
	UI         UIConfig         `toml:"ui" json:"ui"`
	Exec       ExecConfig       `toml:"exec" json:"exec"`
	Log        LogConfig        `toml:"log" json:"log"`
	Generators GeneratorsConfig `toml:"generators" json:"generators"`
}

// Keys lists every dotted key accepted by Get and Set.
var Keys = []string{
	"rules",
	"ui.backend",
	"ui.lines",
	"exec.mode",
	"log.level",
	"log.file",
	"generators.cache",
}

func Default() Config {
	return Config{
		Version: 1,
		UI: UIConfig{
			Backend: "bubbletea",
			Lines:   10,
		},
		Exec:       ExecConfig{Mode: runtime.ModeRun},
		Log:        LogConfig{Level: "info"},
		Generators: GeneratorsConfig{Cache: true},
	}
}

// LoadOrCreate reads the config file from the user config dir, writing the
// defaults there on first run.
func LoadOrCreate() (Config, string, error) {
	path, err := appdirs.ConfigFilePath()
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

// Load reads path, creating it with defaults when it does not exist.
func Load(path string) (Config, error) {
	cfg := Default()
	bytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := Save(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}

	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config file: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg to path through a private temp file and an atomic rename.
func Save(path string, cfg Config) error {
	cfg.normalize()
	payload, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not serialize config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}
	tempFile, err := os.CreateTemp(dir, ".nmenu-config-*.toml")
	if err != nil {
		return fmt.Errorf("could not create temp config file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp config file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp config file permissions: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp config file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not atomically replace config file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("could not secure config file permissions: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	defaults := Default()
	if c.Version == 0 {
		c.Version = defaults.Version
	}
	c.Rules = strings.TrimSpace(c.Rules)
	c.UI.Backend = normalizeUIBackend(c.UI.Backend, defaults.UI.Backend)
	if c.UI.Lines <= 0 {
		c.UI.Lines = defaults.UI.Lines
	}
	c.Exec.Mode = normalizeChoice(c.Exec.Mode, defaults.Exec.Mode, runtime.Modes())
	c.Log.Level = normalizeChoice(c.Log.Level, defaults.Log.Level, logLevels)
	c.Log.File = strings.TrimSpace(c.Log.File)
}

// ApplyEnv overrides file settings with NMENU_* environment variables.
func (c *Config) ApplyEnv() error {
	overrides := []struct {
		env string
		key string
	}{
		{env: EnvRules, key: "rules"},
		{env: EnvUI, key: "ui.backend"},
		{env: EnvLogLevel, key: "log.level"},
	}
	for _, o := range overrides {
		value, ok := os.LookupEnv(o.env)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := c.Set(o.key, value); err != nil {
			return fmt.Errorf("invalid %s: %w", o.env, err)
		}
	}
	return nil
}

func (c *Config) Set(key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)

	switch key {
	case "rules":
		c.Rules = value
	case "ui.backend":
		c.UI.Backend = normalizeUIBackend(value, "")
		if c.UI.Backend == "" {
			return fmt.Errorf("ui.backend must be one of auto|bubbletea|huh|tview|plain")
		}
	case "ui.lines":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("ui.lines must be a positive number")
		}
		c.UI.Lines = n
	case "exec.mode":
		c.Exec.Mode = normalizeChoice(value, "", runtime.Modes())
		if c.Exec.Mode == "" {
			return fmt.Errorf("exec.mode must be one of %s", strings.Join(runtime.Modes(), "|"))
		}
	case "log.level":
		c.Log.Level = normalizeChoice(value, "", logLevels)
		if c.Log.Level == "" {
			return fmt.Errorf("log.level must be one of %s", strings.Join(logLevels, "|"))
		}
	case "log.file":
		c.Log.File = value
	case "generators.cache":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("generators.cache must be boolean")
		}
		c.Generators.Cache = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	c.normalize()
	return nil
}

func (c Config) Get(key string) (string, error) {
	switch strings.TrimSpace(strings.ToLower(key)) {
	case "rules":
		return c.Rules, nil
	case "ui.backend":
		return c.UI.Backend, nil
	case "ui.lines":
		return strconv.Itoa(c.UI.Lines), nil
	case "exec.mode":
		return c.Exec.Mode, nil
	case "log.level":
		return c.Log.Level, nil
	case "log.file":
		return c.Log.File, nil
	case "generators.cache":
		return strconv.FormatBool(c.Generators.Cache), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// RulesPath is the configured rules file with ~ expanded, or the default
// location in the config dir.
func (c Config) RulesPath() (string, error) {
	if c.Rules == "" {
		return appdirs.RulesFilePath()
	}
	return generate.ResolveHome(c.Rules)
}

// LogPath is the configured log file, or the default location in the state dir.
func (c Config) LogPath() (string, error) {
	if c.Log.File == "" {
		if _, err := appdirs.EnsureStateDir(); err != nil {
			return "", err
		}
		return appdirs.LogFilePath()
	}
	return generate.ResolveHome(c.Log.File)
}

var logLevels = []string{"debug", "info", "warn", "error", "off"}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool: %s", value)
	}
}

func normalizeUIBackend(value string, fallback string) string {
	return normalizeChoice(value, fallback, []string{"auto", "bubbletea", "huh", "tview", "plain"})
}

func normalizeChoice(value, fallback string, allowed []string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, choice := range allowed {
		if normalized == choice {
			return normalized
		}
	}
	return strings.ToLower(strings.TrimSpace(fallback))
}
