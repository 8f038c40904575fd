package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPrimaryPath  = "contacts.csv"
	DefaultMirrorPath   = "contacts.json"
	DefaultFaultLogPath = "error_log.txt"
)

// Config locates the three files the contact book touches. Relative paths
// are resolved against DataDir.
type Config struct {
	DataDir      string        `yaml:"data_dir"`
	PrimaryPath  string        `yaml:"primary_path"`
	MirrorPath   string        `yaml:"mirror_path"`
	FaultLogPath string        `yaml:"fault_log_path"`
	Logging      LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures operational logging. It is separate from the
// fault log, whose format is fixed.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:      ".",
		PrimaryPath:  DefaultPrimaryPath,
		MirrorPath:   DefaultMirrorPath,
		FaultLogPath: DefaultFaultLogPath,
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// ForDir returns the default layout rooted at dir.
func ForDir(dir string) *Config {
	cfg := DefaultConfig()
	cfg.DataDir = dir
	return cfg
}

// Load reads a YAML config file over the defaults, then applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("CONTACTBOOK_DIR"); dir != "" {
		c.DataDir = dir
	}
	if path := os.Getenv("CONTACTBOOK_CSV"); path != "" {
		c.PrimaryPath = path
	}
	if path := os.Getenv("CONTACTBOOK_JSON"); path != "" {
		c.MirrorPath = path
	}
	if path := os.Getenv("CONTACTBOOK_ERROR_LOG"); path != "" {
		c.FaultLogPath = path
	}
	if level := os.Getenv("CONTACTBOOK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if IsDebugEnabled() {
		c.Logging.Level = "debug"
	}
}

func (c *Config) Validate() error {
	if c.PrimaryPath == "" {
		return fmt.Errorf("primary_path must not be empty")
	}
	if c.MirrorPath == "" {
		return fmt.Errorf("mirror_path must not be empty")
	}
	if c.FaultLogPath == "" {
		return fmt.Errorf("fault_log_path must not be empty")
	}

	seen := make(map[string]string, 3)
	for _, p := range []struct{ name, path string }{
		{"primary_path", c.Primary()},
		{"mirror_path", c.Mirror()},
		{"fault_log_path", c.FaultLog()},
	} {
		clean := filepath.Clean(p.path)
		if other, dup := seen[clean]; dup {
			return fmt.Errorf("%s and %s point at the same file: %s", other, p.name, clean)
		}
		seen[clean] = p.name
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

func (c *Config) Primary() string {
	return c.resolve(c.PrimaryPath)
}

func (c *Config) Mirror() string {
	return c.resolve(c.MirrorPath)
}

func (c *Config) FaultLog() string {
	return c.resolve(c.FaultLogPath)
}

// LogLevel parses Logging.Level; an empty level means warn.
func (c *Config) LogLevel() (zapcore.Level, error) {
	if c.Logging.Level == "" {
		return zapcore.WarnLevel, nil
	}
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return level, nil
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.DataDir == "" {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

func IsDebugEnabled() bool {
	return os.Getenv("CONTACTBOOK_DEBUG") == "true" || os.Getenv("CONTACTBOOK_DEBUG") == "1"
}
