// ZFS ARC statistics collector: reads the kstat pseudo-file exposed by
// the ZFS kernel module (/proc/spl/kstat/zfs/arcstats on Linux).
package collector

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Guliveer/prtg-sensors/internal/models"
)

// ARCCollector reads ARC hit and miss counters. Collect returns
// models.ArcStats; on error the zero-valued defaults are returned alongside it.
type ARCCollector struct {
	path   string
	logger *zap.Logger
}

// NewARCCollector creates a collector reading the kstat file at path.
func NewARCCollector(path string, logger *zap.Logger) *ARCCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ARCCollector{path: path, logger: logger}
}

// Name returns the collector identifier.
func (c *ARCCollector) Name() string { return "arcstats" }

// Collect reads and parses the arcstats file.
func (c *ARCCollector) Collect(ctx context.Context) (interface{}, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return models.ArcStats{}, fmt.Errorf("opening arcstats: %w", err)
	}
	defer f.Close()

	stats, err := ParseARCStats(f, c.logger)
	if err != nil {
		return models.ArcStats{}, fmt.Errorf("reading arcstats: %w", err)
	}
	return stats, nil
}

// IsAvailable reports whether the arcstats file exists.
func (c *ARCCollector) IsAvailable() bool {
	_, err := os.Stat(c.path)
	return err == nil
}

// ParseARCStats scans kstat "name type data" lines. Any line containing
// "hits" sets Hits from its third column; otherwise any line containing
// "misses" sets Misses. Later matches win, so compound counters such as
// "l2_hits" can override the plain ones.
func ParseARCStats(r io.Reader, logger *zap.Logger) (models.ArcStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var stats models.ArcStats
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		var target *uint64
		switch {
		case strings.Contains(line, "hits"):
			target = &stats.Hits
		case strings.Contains(line, "misses"):
			target = &stats.Misses
		default:
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			logger.Warn("Unexpected arcstats line", zap.String("line", line))
			continue
		}
		value, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			logger.Warn("Unable to parse arcstats counter",
				zap.String("line", line),
				zap.Error(err))
			continue
		}
		*target = value
	}

	return stats, scanner.Err()
}
