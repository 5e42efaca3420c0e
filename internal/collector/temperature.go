// Host sensor temperature collector: reads thermal sensors through gopsutil
// instead of the lm-sensors CLI. Readings are grouped by chip the same way
// ParseSensorsOutput groups them, and converted to Fahrenheit.
package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"

	"github.com/Guliveer/prtg-sensors/internal/models"
)

// minValidTemp is the minimum temperature (°C) considered valid.
const minValidTemp = 0.0

// maxValidTemp is the maximum temperature (°C) considered valid.
// Readings above this are likely sensor errors.
const maxValidTemp = 150.0

// HostSensorsCollector collects temperatures via gopsutil host sensors.
// Collect returns models.SensorData.
type HostSensorsCollector struct {
	logger *zap.Logger
}

// NewHostSensorsCollector creates a new gopsutil-backed temperature collector.
// Pass nil for no logging.
func NewHostSensorsCollector(logger *zap.Logger) *HostSensorsCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HostSensorsCollector{logger: logger}
}

// Name returns the collector identifier.
func (c *HostSensorsCollector) Name() string { return "host-sensors" }

// Collect reads all host temperature sensors. gopsutil may return partial
// results together with an error; those are kept and the error is only
// fatal when nothing could be read.
func (c *HostSensorsCollector) Collect(ctx context.Context) (interface{}, error) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil {
		if len(temps) == 0 {
			return nil, fmt.Errorf("reading host sensors: %w", err)
		}
		c.logger.Debug("Some host sensors could not be read", zap.Error(err))
	}
	return hostSensorData(temps, c.logger), nil
}

// IsAvailable returns true; gopsutil degrades to an error when the
// platform exposes no sensors.
func (c *HostSensorsCollector) IsAvailable() bool { return true }

func hostSensorData(temps []host.TemperatureStat, logger *zap.Logger) models.SensorData {
	var data models.SensorData
	for _, t := range temps {
		if !isValidTemperature(t.Temperature) {
			logger.Debug("Skipping implausible sensor reading",
				zap.String("sensor", t.SensorKey),
				zap.Float64("temp_c", t.Temperature))
			continue
		}
		adapter, label := splitSensorKey(t.SensorKey)
		data.Set(adapter, label, celsiusToFahrenheit(t.Temperature))
	}
	return data
}

// splitSensorKey splits a gopsutil key such as "coretemp_core_0_input" at
// the first underscore into chip and label.
func splitSensorKey(key string) (adapter, label string) {
	adapter, label, ok := strings.Cut(key, "_")
	if !ok || label == "" {
		label = "temp"
	}
	return strings.ReplaceAll(adapter, "-", "_"), label
}

func celsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// isValidTemperature returns true if the temperature is within a plausible range.
func isValidTemperature(temp float64) bool {
	return temp > minValidTemp && temp <= maxValidTemp
}
