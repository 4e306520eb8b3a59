package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumberUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		value float64
		valid bool
	}{
		{"number", `42`, 42, true},
		{"float", `12.5`, 12.5, true},
		{"numeric string", `"150"`, 150, true},
		{"numeric string with spaces", `" 7 "`, 7, true},
		{"negative", `-5`, -5, true},
		{"null", `null`, 0, false},
		{"non-numeric string", `"abc"`, 0, false},
		{"object", `{"x":1}`, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n FlexNumber
			err := json.Unmarshal([]byte(tc.input), &n)
			require.NoError(t, err)
			assert.Equal(t, tc.valid, n.Valid)
			assert.Equal(t, tc.value, n.Value)
		})
	}
}

func TestFlexNumberInsideStruct(t *testing.T) {
	var payload struct {
		Value FlexNumber `json:"value"`
	}
	// coercion failure must not abort decoding of the whole body
	err := json.Unmarshal([]byte(`{"value":"not a number"}`), &payload)
	require.NoError(t, err)
	assert.False(t, payload.Value.Valid)
}
