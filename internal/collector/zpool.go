// ZFS pool collector: runs `zpool list` for free space and health and
// `zpool status` for the full status report.
package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Guliveer/prtg-sensors/internal/models"
	"github.com/Guliveer/prtg-sensors/internal/runner"
)

// zpoolListArgs asks for tab-separated, byte-exact name/free/health columns.
var zpoolListArgs = []string{"list", "-Hp", "-o", "name,free,health"}

// ZpoolCollector collects pool information. Collect returns models.ZpoolResult.
type ZpoolCollector struct {
	runner  runner.Runner
	command string
	logger  *zap.Logger
}

// NewZpoolCollector creates a collector that runs the given zpool binary.
func NewZpoolCollector(r runner.Runner, command string, logger *zap.Logger) *ZpoolCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZpoolCollector{
		runner:  r,
		command: command,
		logger:  logger,
	}
}

// Name returns the collector identifier.
func (c *ZpoolCollector) Name() string { return "zpool" }

// Collect runs the pool listing and the pool status commands. If either
// fails, both outputs are discarded and the error carries the command's
// stderr.
func (c *ZpoolCollector) Collect(ctx context.Context) (interface{}, error) {
	list, err := c.runner.Run(ctx, c.command, zpoolListArgs...)
	if err != nil {
		return nil, fmt.Errorf("listing pools: %w", err)
	}

	status, err := c.runner.Run(ctx, c.command, "status")
	if err != nil {
		return nil, fmt.Errorf("reading pool status: %w", err)
	}

	return models.ZpoolResult{
		Pools:  ParseZpoolList(string(list.Stdout), c.logger),
		Status: string(status.Stdout),
	}, nil
}

// IsAvailable reports whether the zpool command is installed.
func (c *ZpoolCollector) IsAvailable() bool { return runner.Available(c.command) }

// ParseZpoolList parses `zpool list -Hp -o name,free,health` output.
// Blank lines are skipped; lines that do not have exactly three fields or
// whose free column is not an unsigned integer are logged and skipped.
func ParseZpoolList(output string, logger *zap.Logger) []models.PoolInfo {
	if logger == nil {
		logger = zap.NewNop()
	}

	var pools []models.PoolInfo
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			logger.Warn("Unexpected zpool list line",
				zap.String("line", line),
				zap.Int("fields", len(fields)))
			continue
		}

		free, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			logger.Warn("Unable to parse pool free space",
				zap.String("pool", fields[0]),
				zap.String("value", fields[1]),
				zap.Error(err))
			continue
		}

		pools = append(pools, models.PoolInfo{
			Name:   fields[0],
			Free:   free,
			Health: fields[2],
		})
	}
	return pools
}
