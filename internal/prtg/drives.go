package prtg

import (
	"fmt"

	"github.com/Guliveer/prtg-sensors/internal/models"
)

// FormatDriveTemperatures emits one channel per drive named "<model> (<name>)".
// Drives without a temperature get a null value.
func FormatDriveTemperatures(temps []models.DriveTemperature) *Response {
	resp := NewResponse("")
	for _, t := range temps {
		value := Null()
		if t.Fahrenheit != nil {
			value = Float(*t.Fahrenheit)
		}
		resp.Add(Channel{
			Channel:    fmt.Sprintf("%s (%s)", t.Drive.Model, t.Drive.Name),
			Value:      value,
			Unit:       UnitCustom,
			CustomUnit: CustomUnitFahrenheit,
			Float:      1,
		})
	}
	return resp
}
