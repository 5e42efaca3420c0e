package prtg

import "github.com/Guliveer/prtg-sensors/internal/models"

// FormatTemperatures flattens sensor readings into one channel per
// (adapter, label) pair named "<adapter>_<label>".
func FormatTemperatures(data models.SensorData) *Response {
	resp := NewResponse("")
	for _, r := range data.Readings() {
		resp.Add(Channel{
			Channel:    r.Adapter + "_" + r.Label,
			Value:      Float(r.Value),
			Unit:       UnitCustom,
			CustomUnit: CustomUnitFahrenheit,
			Float:      1,
		})
	}
	return resp
}
