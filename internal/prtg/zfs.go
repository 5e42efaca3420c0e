package prtg

import (
	"fmt"

	"github.com/Guliveer/prtg-sensors/internal/models"
)

// DefaultZFSText is the envelope text of the ZFS sensor.
const DefaultZFSText = "ZFS Pool Metrics and ARC Stats"

// healthStatus maps `zpool list` health strings to the integers shown by
// the zfs.health lookup in PRTG.
var healthStatus = map[string]int{
	"ONLINE":   1,
	"DEGRADED": 2,
	"FAULTED":  3,
	"OFFLINE":  4,
	"REMOVED":  5,
	"UNAVAIL":  6,
}

// HealthToStatus converts a pool health string to its status code.
// Unknown states map to 0.
func HealthToStatus(health string) int {
	return healthStatus[health]
}

// FormatZFS emits a free-space and a health channel per pool followed by
// the global ARC hit and miss counters.
func FormatZFS(pools []models.PoolInfo, arc models.ArcStats, text string) *Response {
	resp := NewResponse(text)
	for _, p := range pools {
		resp.Add(
			Channel{
				Channel: fmt.Sprintf("Pool %s Free", p.Name),
				Value:   Uint(p.Free),
				Unit:    UnitBytes,
			},
			Channel{
				Channel: fmt.Sprintf("Pool %s Health", p.Name),
				Value:   Int(int64(HealthToStatus(p.Health))),
				Unit:    UnitZFSHealth,
			},
		)
	}
	resp.Add(
		Channel{Channel: "ARC Hits", Value: Uint(arc.Hits), Unit: UnitCount},
		Channel{Channel: "ARC Misses", Value: Uint(arc.Misses), Unit: UnitCount},
	)
	return resp
}
