// Package models defines the telemetry structures passed from collectors
// to the PRTG formatters. Everything here lives for a single run.
package models

// SensorReading is one temperature value reported by a hardware adapter.
// Value is in degrees Fahrenheit.
type SensorReading struct {
	Adapter string  `json:"adapter"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
}

// AdapterReadings groups the readings of one adapter in the order they were seen.
type AdapterReadings struct {
	Name     string          `json:"name"`
	Readings []SensorReading `json:"readings"`
}

// SensorData is the parsed output of a temperature source, ordered by the
// first appearance of each adapter.
type SensorData struct {
	Adapters []AdapterReadings `json:"adapters"`
}

// StartAdapter makes name the adapter that subsequent readings belong to.
// A name seen before has its readings discarded but keeps its position.
func (d *SensorData) StartAdapter(name string) {
	for i := range d.Adapters {
		if d.Adapters[i].Name == name {
			d.Adapters[i].Readings = nil
			return
		}
	}
	d.Adapters = append(d.Adapters, AdapterReadings{Name: name})
}

// Set records label=value under adapter, overwriting an existing label in place.
// The adapter is created if it has not been started.
func (d *SensorData) Set(adapter, label string, value float64) {
	idx := -1
	for i := range d.Adapters {
		if d.Adapters[i].Name == adapter {
			idx = i
			break
		}
	}
	if idx < 0 {
		d.Adapters = append(d.Adapters, AdapterReadings{Name: adapter})
		idx = len(d.Adapters) - 1
	}

	group := &d.Adapters[idx]
	for i := range group.Readings {
		if group.Readings[i].Label == label {
			group.Readings[i].Value = value
			return
		}
	}
	group.Readings = append(group.Readings, SensorReading{Adapter: adapter, Label: label, Value: value})
}

// Readings returns all readings flattened in adapter order.
func (d SensorData) Readings() []SensorReading {
	var out []SensorReading
	for _, a := range d.Adapters {
		out = append(out, a.Readings...)
	}
	return out
}

// Empty reports whether no adapter was found.
func (d SensorData) Empty() bool { return len(d.Adapters) == 0 }

// PoolInfo describes one ZFS pool as reported by `zpool list -Hp`.
type PoolInfo struct {
	Name   string `json:"name"`
	Free   uint64 `json:"free"`
	Health string `json:"health"`
}

// ZpoolResult holds the outputs of the pool listing and the pool status commands.
// Status is kept verbatim and is not interpreted.
type ZpoolResult struct {
	Pools  []PoolInfo `json:"pools"`
	Status string     `json:"status"`
}

// ArcStats holds the ZFS ARC counters. Zero values mean "unavailable".
type ArcStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// Drive is a whole block device as listed by lsblk.
type Drive struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

// DriveTemperature is the SMART temperature of a drive.
// Fahrenheit is nil when the drive did not report a temperature.
type DriveTemperature struct {
	Drive      Drive    `json:"drive"`
	Fahrenheit *float64 `json:"fahrenheit"`
}
