// Package pipeline runs one collection cycle per sensor binary: collect,
// parse, and format into a PRTG response. Each function is a single
// synchronous pass and applies its sensor's failure policy.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Guliveer/prtg-sensors/internal/collector"
	"github.com/Guliveer/prtg-sensors/internal/models"
	"github.com/Guliveer/prtg-sensors/internal/prtg"
	"github.com/Guliveer/prtg-sensors/internal/runner"
)

// ErrNoSensorData is returned when the temperature source ran but no
// adapter could be found in its output.
var ErrNoSensorData = errors.New("no valid sensor data found")

// Temperature collects readings from src (lm-sensors or gopsutil) and
// formats one channel per reading. A collector failure is returned as-is
// and nothing is formatted.
func Temperature(ctx context.Context, src collector.Collector) (*prtg.Response, error) {
	res, err := src.Collect(ctx)
	if err != nil {
		return nil, err
	}
	data, ok := res.(models.SensorData)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", src.Name(), res)
	}
	if data.Empty() {
		return nil, ErrNoSensorData
	}
	return prtg.FormatTemperatures(data), nil
}

// ZFS collects pool data and ARC counters. Pool collection failures abort
// the run; unreadable ARC stats fall back to zero counters with a warning.
func ZFS(ctx context.Context, pools, arc collector.Collector, text string, logger *zap.Logger) (*prtg.Response, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	poolRes, poolErr := pools.Collect(ctx)
	stats := collectARC(ctx, arc, logger)
	if poolErr != nil {
		return nil, poolErr
	}

	zr, ok := poolRes.(models.ZpoolResult)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", pools.Name(), poolRes)
	}
	logger.Debug("Collected pools",
		zap.Int("pools", len(zr.Pools)),
		zap.Int("status_bytes", len(zr.Status)))

	return prtg.FormatZFS(zr.Pools, stats, text), nil
}

func collectARC(ctx context.Context, arc collector.Collector, logger *zap.Logger) models.ArcStats {
	res, err := arc.Collect(ctx)
	if err != nil {
		logger.Warn("arcstats not found. Make sure ZFS is properly configured.", zap.Error(err))
		return models.ArcStats{}
	}
	stats, ok := res.(models.ArcStats)
	if !ok {
		logger.Warn("Unexpected arcstats result", zap.String("type", fmt.Sprintf("%T", res)))
		return models.ArcStats{}
	}
	return stats
}

// Drives collects SMART temperatures and formats one channel per drive.
func Drives(ctx context.Context, drives collector.Collector) (*prtg.Response, error) {
	res, err := drives.Collect(ctx)
	if err != nil {
		return nil, err
	}
	temps, ok := res.([]models.DriveTemperature)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", drives.Name(), res)
	}
	return prtg.FormatDriveTemperatures(temps), nil
}

// FailureDetail returns the most useful text for a failed collection:
// the command's stderr when there is one, otherwise the error message.
func FailureDetail(err error) string {
	var cmdErr *runner.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Stderr != "" {
		return cmdErr.Stderr
	}
	return err.Error()
}
