// Package app holds the startup sequence shared by the sensor binaries:
// flags, layered configuration, logger and signal handling.
package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Guliveer/prtg-sensors/internal/collector"
	"github.com/Guliveer/prtg-sensors/internal/config"
	"github.com/Guliveer/prtg-sensors/internal/logging"
	"github.com/Guliveer/prtg-sensors/internal/runner"
)

// Flags are the optional command-line flags every binary accepts.
type Flags struct {
	ConfigPath  string
	LogLevel    string
	ShowVersion bool
}

// RegisterFlags binds the common flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to configuration file (default: search standard locations)")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&f.ShowVersion, "version", false, "Show version and exit")
	return f
}

// Env is everything a binary needs to run its pipeline.
type Env struct {
	Config *config.Config
	Logger *zap.Logger
	Runner runner.Runner
}

// Setup loads and validates configuration and builds the logger and the
// command runner.
func Setup(name string, f *Flags) (*Env, error) {
	cli := config.CLIOverrides{LogLevel: f.LogLevel}

	var (
		cfg *config.Config
		err error
	)
	if f.ConfigPath != "" {
		cfg, err = config.LoadLayered(cli, f.ConfigPath)
	} else {
		cfg, err = config.LoadLayered(cli)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(cfg.Logging).Named(name)
	return &Env{
		Config: cfg,
		Logger: logger,
		Runner: runner.New(cfg.Exec.Timeout.Duration),
	}, nil
}

// CheckAvailable logs collectors whose command or file is missing. The
// collectors still run so the failure is reported through the normal path.
func (e *Env) CheckAvailable(collectors ...collector.Collector) {
	for _, c := range collectors {
		if c.IsAvailable() {
			e.Logger.Debug("Collector available", zap.String("name", c.Name()))
		} else {
			e.Logger.Warn("Collector not available", zap.String("name", c.Name()))
		}
	}
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
