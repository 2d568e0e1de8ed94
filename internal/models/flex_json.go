package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that also accepts string-encoded numbers.
// League spreadsheets and form posts frequently send "250" instead of 250;
// anything that is not a finite number after trimming is rejected.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	// Fast path: native JSON number
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}

	// Slow path: quoted number
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flex float: expected number, got %s", string(data))
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return fmt.Errorf("flex float: empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("flex float: %q is not a finite number", s)
	}
	*f = FlexFloat(v)
	return nil
}

// MarshalJSON always writes a native number.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}
