// Package collector defines the Collector interface and the collectors that
// feed the PRTG sensors: lm-sensors and gopsutil temperatures, ZFS pools,
// ARC kstats and SMART drive temperatures.
package collector

import "context"

// Collector is the interface that all collectors implement.
// Each collector gathers one kind of telemetry in a single synchronous call.
type Collector interface {
	// Name returns the unique identifier for this collector.
	Name() string

	// Collect gathers the data and returns it. The concrete result type is
	// documented on each collector.
	Collect(ctx context.Context) (interface{}, error)

	// IsAvailable checks whether the collector's command or file exists on
	// this host. Collect may still be called when it returns false.
	IsAvailable() bool
}
