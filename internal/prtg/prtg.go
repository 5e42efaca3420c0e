// Package prtg builds the JSON document expected by PRTG custom sensors
// (EXE/Script Advanced, SSH Script Advanced):
//
//	{"prtg": {"result": [{"channel": ..., "value": ..., "unit": ...}], "text": ...}}
package prtg

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
)

// Units used by the formatters.
const (
	UnitCustom    = "Custom"
	UnitBytes     = "bytes"
	UnitCount     = "count"
	UnitZFSHealth = "zfs.health"

	CustomUnitFahrenheit = "°F"
)

// Value is a pre-encoded JSON number (or null) for a channel.
// The zero Value encodes as null.
type Value struct {
	raw string
}

// Int returns an integer Value.
func Int(v int64) Value { return Value{raw: strconv.FormatInt(v, 10)} }

// Uint returns an unsigned integer Value.
func Uint(v uint64) Value { return Value{raw: strconv.FormatUint(v, 10)} }

// Float returns a Value that always carries a decimal point, so 102 is
// written as 102.0. Non-finite numbers encode as null.
func Float(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return Value{raw: s}
}

// Null returns a Value that encodes as null.
func Null() Value { return Value{} }

// IsNull reports whether v encodes as null.
func (v Value) IsNull() bool { return v.raw == "" }

// String returns the JSON encoding of v.
func (v Value) String() string {
	if v.raw == "" {
		return "null"
	}
	return v.raw
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// Channel is one entry of the result array.
type Channel struct {
	Channel    string `json:"channel"`
	Value      Value  `json:"value"`
	Unit       string `json:"unit"`
	CustomUnit string `json:"customunit,omitempty"`
	Float      int    `json:"float,omitempty"`
}

// Body is the object under the top-level "prtg" key.
type Body struct {
	Result []Channel `json:"result"`
	Text   string    `json:"text,omitempty"`
}

// Response is the complete document printed by a sensor.
type Response struct {
	PRTG Body `json:"prtg"`
}

// NewResponse creates an empty response. Result is never nil so an empty
// run still encodes as "result": [].
func NewResponse(text string) *Response {
	return &Response{PRTG: Body{Result: make([]Channel, 0), Text: text}}
}

// Add appends channels to the result array.
func (r *Response) Add(channels ...Channel) {
	r.PRTG.Result = append(r.PRTG.Result, channels...)
}

// Channels returns the result array.
func (r *Response) Channels() []Channel { return r.PRTG.Result }

// Write encodes r to w followed by a newline. An empty indent writes a
// single compact line.
func (r *Response) Write(w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(r)
}
