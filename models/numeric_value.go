package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumericValue is a form value coerced to a number when it parses as one.
// It marshals to a JSON number, or to the cleaned string when parsing failed.
type NumericValue struct {
	Number   float64
	Text     string
	IsNumber bool
}

// ParseNumericValue strips thousands separators and surrounding space and tries
// to read a finite number. Empty input yields nil so the field is omitted.
func ParseNumericValue(raw string) *NumericValue {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return nil
	}

	if n, err := strconv.ParseFloat(cleaned, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return &NumericValue{Number: n, IsNumber: true}
	}
	return &NumericValue{Text: cleaned}
}

// MarshalJSON implements json.Marshaler
func (v NumericValue) MarshalJSON() ([]byte, error) {
	if v.IsNumber {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *NumericValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumericValue{Number: n, IsNumber: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = NumericValue{Text: s}
	return nil
}

// String returns the value as it would be shown to a person.
func (v NumericValue) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}
