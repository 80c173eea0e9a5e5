package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumericValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantNil  bool
		isNumber bool
		number   float64
		text     string
	}{
		{name: "Empty", raw: "", wantNil: true},
		{name: "Whitespace", raw: "   ", wantNil: true},
		{name: "Separators only", raw: " , ", wantNil: true},
		{name: "Plain integer", raw: "5000", isNumber: true, number: 5000},
		{name: "Thousands separators", raw: " 12,500 ", isNumber: true, number: 12500},
		{name: "Decimal", raw: "1,234.5", isNumber: true, number: 1234.5},
		{name: "Range stays text", raw: "5,000-10,000", text: "5000-10000"},
		{name: "Words stay text", raw: "about 10k", text: "about 10k"},
		{name: "Infinity stays text", raw: "Infinity", text: "Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseNumericValue(tt.raw)
			if tt.wantNil {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			assert.Equal(t, tt.isNumber, v.IsNumber)
			if tt.isNumber {
				assert.Equal(t, tt.number, v.Number)
			} else {
				assert.Equal(t, tt.text, v.Text)
			}
		})
	}
}

func TestNumericValueJSON(t *testing.T) {
	raw, err := json.Marshal(ParseNumericValue("25,000"))
	require.NoError(t, err)
	assert.Equal(t, "25000", string(raw))

	raw, err = json.Marshal(ParseNumericValue("flexible"))
	require.NoError(t, err)
	assert.Equal(t, `"flexible"`, string(raw))

	var v NumericValue
	require.NoError(t, json.Unmarshal([]byte("42.5"), &v))
	assert.True(t, v.IsNumber)
	assert.Equal(t, "42.5", v.String())

	require.NoError(t, json.Unmarshal([]byte(`"n/a"`), &v))
	assert.False(t, v.IsNumber)
	assert.Equal(t, "n/a", v.String())
}
