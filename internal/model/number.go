package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexNumber accepts a JSON number or a numeric string. Input that cannot be
// coerced is not an unmarshal error; it decodes with Valid=false so the
// caller can fall back to a previous value.
type FlexNumber struct {
	Value float64
	Valid bool
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = FlexNumber{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*n = FlexNumber{}
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*n = FlexNumber{}
			return nil
		}
		*n = FlexNumber{Value: f, Valid: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = FlexNumber{}
		return nil
	}
	*n = FlexNumber{Value: f, Valid: true}
	return nil
}
