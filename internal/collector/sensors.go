// lm-sensors collector: runs `sensors -f` and parses its text output.
package collector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Guliveer/prtg-sensors/internal/models"
	"github.com/Guliveer/prtg-sensors/internal/runner"
)

const (
	adapterMarker    = "Adapter:"
	fahrenheitMarker = "°F"
)

// SensorsCollector collects temperatures from the lm-sensors CLI.
// Collect returns models.SensorData.
type SensorsCollector struct {
	runner  runner.Runner
	command string
	args    []string
	logger  *zap.Logger
}

// NewSensorsCollector creates a collector that runs command with args
// (normally "sensors" and ["-f"]).
func NewSensorsCollector(r runner.Runner, command string, args []string, logger *zap.Logger) *SensorsCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SensorsCollector{
		runner:  r,
		command: command,
		args:    args,
		logger:  logger,
	}
}

// Name returns the collector identifier.
func (c *SensorsCollector) Name() string { return "sensors" }

// Collect runs the sensors command and parses its standard output.
// A missing command or a non-zero exit is returned as an error and no
// partial data is produced.
func (c *SensorsCollector) Collect(ctx context.Context) (interface{}, error) {
	out, err := c.runner.Run(ctx, c.command, c.args...)
	if err != nil {
		return nil, fmt.Errorf("fetching sensors data: %w", err)
	}
	return ParseSensorsOutput(string(out.Stdout), c.logger), nil
}

// IsAvailable reports whether the sensors command is installed.
func (c *SensorsCollector) IsAvailable() bool { return runner.Available(c.command) }

// ParseSensorsOutput extracts Fahrenheit readings from `sensors -f` output.
//
// The line preceding each "Adapter:" line names the adapter (hyphens become
// underscores); following lines containing °F are "label: value°F ..." pairs
// attributed to that adapter. Lines before the first adapter are ignored.
// Lines whose value is not a number are logged and skipped.
func ParseSensorsOutput(output string, logger *zap.Logger) models.SensorData {
	if logger == nil {
		logger = zap.NewNop()
	}

	var data models.SensorData
	current := ""

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, adapterMarker) {
			prev := ""
			if i > 0 {
				prev = lines[i-1]
			}
			current = strings.ReplaceAll(strings.TrimSpace(prev), "-", "_")
			data.StartAdapter(current)
			continue
		}

		if current == "" || !strings.Contains(line, fahrenheitMarker) {
			continue
		}

		label, value, err := parseReading(trimmed)
		if err != nil {
			logger.Warn("Unable to convert value to float",
				zap.String("adapter", current),
				zap.String("line", line),
				zap.Error(err))
			continue
		}
		data.Set(current, label, value)
	}

	return data
}

// parseReading splits "Core 0:  +102.0°F  (high = +176.0°F)" into its
// label and the value before the first °F.
func parseReading(line string) (string, float64, error) {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return "", 0, errors.New("missing ':' separator")
	}

	label := strings.TrimSpace(parts[0])
	raw, _, _ := strings.Cut(parts[1], fahrenheitMarker)
	raw = strings.TrimSpace(raw)

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("value %q is not a number", raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", 0, fmt.Errorf("value %q is not finite", raw)
	}
	return label, value, nil
}
