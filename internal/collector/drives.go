// SMART drive temperature collector: lists whole disks with lsblk and
// reads each drive's temperature from `smartctl -a`.
package collector

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Guliveer/prtg-sensors/internal/models"
	"github.com/Guliveer/prtg-sensors/internal/runner"
)

const (
	nvmeTemperatureKey = "Temperature Sensor 1:"
	ataTemperatureKey  = "Temperature_Celsius"

	// ataRawValueField is the RAW_VALUE column of a SMART attribute row.
	ataRawValueField = 9

	// smartctlFatalBits are the exit status bits meaning the device could
	// not be queried at all (command line parse error, device open failed).
	smartctlFatalBits = 0x03
)

var nvmeCelsius = regexp.MustCompile(`(\d+)\sCelsius`)

var (
	errTemperatureLine  = errors.New("temperature information not found")
	errTemperatureValue = errors.New("temperature value not found")
)

// DriveCollector collects SMART temperatures. Collect returns
// []models.DriveTemperature.
type DriveCollector struct {
	runner   runner.Runner
	lsblk    string
	smartctl string
	logger   *zap.Logger
}

// NewDriveCollector creates a drive collector using the given lsblk and
// smartctl binaries.
func NewDriveCollector(r runner.Runner, lsblk, smartctl string, logger *zap.Logger) *DriveCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DriveCollector{
		runner:   r,
		lsblk:    lsblk,
		smartctl: smartctl,
		logger:   logger,
	}
}

// Name returns the collector identifier.
func (c *DriveCollector) Name() string { return "drives" }

// IsAvailable reports whether both lsblk and smartctl are installed.
func (c *DriveCollector) IsAvailable() bool {
	return runner.Available(c.lsblk) && runner.Available(c.smartctl)
}

// ListDrives returns the whole disks reported by lsblk. Any output on
// stderr is treated as a failure.
func (c *DriveCollector) ListDrives(ctx context.Context) ([]models.Drive, error) {
	out, err := c.runner.Run(ctx, c.lsblk, "-d", "-n", "-o", "NAME,MODEL")
	if err != nil {
		return nil, fmt.Errorf("executing lsblk: %w", err)
	}
	if stderr := strings.TrimSpace(string(out.Stderr)); stderr != "" {
		return nil, fmt.Errorf("lsblk returned an error: %s", stderr)
	}
	return ParseLsblk(string(out.Stdout)), nil
}

// Collect lists the drives and reads a temperature for each of them.
// A drive that cannot be queried yields a nil temperature instead of
// failing the whole collection.
func (c *DriveCollector) Collect(ctx context.Context) (interface{}, error) {
	if !runningAsRoot() {
		c.logger.Warn("Not running as root, SMART data may be unavailable")
	}

	drives, err := c.ListDrives(ctx)
	if err != nil {
		return nil, err
	}

	temps := make([]models.DriveTemperature, 0, len(drives))
	for _, d := range drives {
		temps = append(temps, c.Temperature(ctx, d))
	}
	return temps, nil
}

// Temperature queries smartctl for one drive.
func (c *DriveCollector) Temperature(ctx context.Context, d models.Drive) models.DriveTemperature {
	result := models.DriveTemperature{Drive: d}
	logger := c.logger.With(zap.String("drive", d.Name))

	out, err := c.runner.Run(ctx, c.smartctl, "-a", "/dev/"+d.Name)
	if err != nil {
		if code := runner.ExitCode(err); code < 0 || code&smartctlFatalBits != 0 {
			logger.Warn("Error executing smartctl", zap.Error(err))
			return result
		}
		logger.Debug("smartctl reported non-fatal status", zap.Int("exit_code", runner.ExitCode(err)))
	}
	if stderr := strings.TrimSpace(string(out.Stderr)); stderr != "" {
		logger.Warn("smartctl returned a non-fatal error", zap.String("stderr", stderr))
	}

	celsius, err := ParseSmartctl(string(out.Stdout))
	if err != nil {
		logger.Warn("Drive temperature unavailable", zap.Error(err))
		return result
	}

	fahrenheit := celsiusToFahrenheit(celsius)
	result.Fahrenheit = &fahrenheit
	return result
}

// ParseLsblk parses `lsblk -d -n -o NAME,MODEL` output. The model may
// contain spaces and may be empty.
func ParseLsblk(output string) []models.Drive {
	var drives []models.Drive
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		drives = append(drives, models.Drive{
			Name:  fields[0],
			Model: strings.Join(fields[1:], " "),
		})
	}
	return drives
}

// ParseSmartctl extracts the drive temperature in Celsius from
// `smartctl -a` output. NVMe drives report "Temperature Sensor 1: NN Celsius";
// ATA drives report it in the raw value of the Temperature_Celsius attribute.
func ParseSmartctl(output string) (float64, error) {
	lines := strings.Split(output, "\n")

	isNVMe := false
	for _, line := range lines {
		if strings.Contains(line, "NVMe") {
			isNVMe = true
			break
		}
	}

	key := ataTemperatureKey
	if isNVMe {
		key = nvmeTemperatureKey
	}

	for _, line := range lines {
		if !strings.Contains(line, key) {
			continue
		}

		var raw string
		if isNVMe {
			m := nvmeCelsius.FindStringSubmatch(line)
			if m == nil {
				return 0, errTemperatureValue
			}
			raw = m[1]
		} else {
			fields := strings.Fields(line)
			if len(fields) <= ataRawValueField {
				return 0, errTemperatureValue
			}
			raw = fields[ataRawValueField]
		}

		celsius, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errTemperatureValue, raw)
		}
		return float64(celsius), nil
	}

	return 0, errTemperatureLine
}
