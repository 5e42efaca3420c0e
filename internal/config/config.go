// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > defaults.
// Every binary works with no config file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Temperature sources.
const (
	SourceSensors  = "sensors"
	SourceGopsutil = "gopsutil"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "15s", "30s", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds the settings shared by all sensor binaries.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Exec        ExecConfig        `yaml:"exec"`
	Temperature TemperatureConfig `yaml:"temperature"`
	ZFS         ZFSConfig         `yaml:"zfs"`
	Drives      DrivesConfig      `yaml:"drives"`
}

// LoggingConfig holds logging settings. Logs never go to stdout.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ExecConfig controls external command execution.
type ExecConfig struct {
	// Timeout per command; 0 waits indefinitely.
	Timeout Duration `yaml:"timeout"`
}

// TemperatureConfig selects where hardware temperatures come from.
type TemperatureConfig struct {
	Source  string   `yaml:"source"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// ZFSConfig holds the ZFS sensor settings.
type ZFSConfig struct {
	ZpoolCommand string `yaml:"zpool_command"`
	ArcstatsPath string `yaml:"arcstats_path"`
	Text         string `yaml:"text"`
}

// DrivesConfig holds the drive temperature sensor settings.
type DrivesConfig struct {
	LsblkCommand    string `yaml:"lsblk_command"`
	SmartctlCommand string `yaml:"smartctl_command"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "warn",
		},
		Temperature: TemperatureConfig{
			Source:  SourceSensors,
			Command: "sensors",
			Args:    []string{"-f"},
		},
		ZFS: ZFSConfig{
			ZpoolCommand: "zpool",
			ArcstatsPath: "/proc/spl/kstat/zfs/arcstats",
			Text:         "ZFS Pool Metrics and ARC Stats",
		},
		Drives: DrivesConfig{
			LsblkCommand:    "lsblk",
			SmartctlCommand: "smartctl",
		},
	}
}

// CLIOverrides holds values from command-line flags.
// Empty strings are treated as "not set" and skipped.
type CLIOverrides struct {
	LogLevel string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > YAML file > defaults.
//
// An optional configPath argument controls file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value → use that path ("" means no file)
//
// An explicitly named file that does not exist is an error; a missing
// auto-discovered file is not.
func LoadLayered(cli CLIOverrides, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	var filePath string
	explicit := len(configPath) > 0
	if explicit {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		case explicit || !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("PRTG_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("PRTG_LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}
	if timeout := os.Getenv("PRTG_EXEC_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Exec.Timeout = Duration{d}
		}
	}
	if source := os.Getenv("PRTG_TEMPERATURE_SOURCE"); source != "" {
		cfg.Temperature.Source = source
	}
	if path := os.Getenv("PRTG_ARCSTATS_PATH"); path != "" {
		cfg.ZFS.ArcstatsPath = path
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if c.Exec.Timeout.Duration < 0 {
		return fmt.Errorf("exec timeout must not be negative (got: %s)", c.Exec.Timeout.Duration)
	}
	switch c.Temperature.Source {
	case SourceSensors:
		if c.Temperature.Command == "" {
			return fmt.Errorf("temperature command is required for source %q", SourceSensors)
		}
	case SourceGopsutil:
	default:
		return fmt.Errorf("unknown temperature source %q (expected %q or %q)",
			c.Temperature.Source, SourceSensors, SourceGopsutil)
	}
	if c.ZFS.ZpoolCommand == "" {
		return fmt.Errorf("zpool command is required")
	}
	if c.ZFS.ArcstatsPath == "" {
		return fmt.Errorf("arcstats path is required")
	}
	if c.Drives.LsblkCommand == "" || c.Drives.SmartctlCommand == "" {
		return fmt.Errorf("lsblk and smartctl commands are required")
	}
	return nil
}
