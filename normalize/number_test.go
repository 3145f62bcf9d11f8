package normalize

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber_StringShapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"european grouped", "1.234,56", 1234.56},
		{"european grouped large", "12.345.678,90", 12345678.90},
		{"us grouped", "1,234.56", 1234.56},
		{"us grouped no decimals", "1,299", 1299},
		{"bare comma decimal", "29,99", 29.99},
		{"plain decimal", "29.99", 29.99},
		{"plain integer", "42", 42},
		{"euro symbol", "€29.99", 29.99},
		{"dollar symbol with grouping", "$1,299.00", 1299},
		{"pound symbol", "£15.50", 15.50},
		{"currency code suffix", "49,95 EUR", 49.95},
		{"currency code prefix", "USD 19.99", 19.99},
		{"surrounding whitespace", "  12.34  ", 12.34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParseNumber(tt.input), 1e-9)
		})
	}
}

func TestParseNumber_Unparseable(t *testing.T) {
	for _, input := range []string{"", "abc", "price on request", "€", "12,34,56.78.90"} {
		assert.True(t, math.IsNaN(ParseNumber(input)), "input %q should yield NaN", input)
	}
}

func TestParseNumber_NonStringTypes(t *testing.T) {
	assert.True(t, math.IsNaN(ParseNumber(nil)))
	assert.Equal(t, 12.5, ParseNumber(12.5))
	assert.Equal(t, float64(42), ParseNumber(42))
	assert.Equal(t, float64(7), ParseNumber(int64(7)))
	assert.InDelta(t, 19.99, ParseNumber(json.Number("19.99")), 1e-9)
	assert.True(t, math.IsNaN(ParseNumber(json.Number("not a number"))))
	assert.True(t, math.IsNaN(ParseNumber([]string{"29.99"})))
}

func TestPriceOrZero(t *testing.T) {
	assert.Equal(t, 29.99, priceOrZero("29,99"))
	assert.Equal(t, 0.0, priceOrZero("garbage"))
	assert.Equal(t, 0.0, priceOrZero(nil))
	assert.Equal(t, 0.0, priceOrZero(-5.0))
	assert.Equal(t, 0.0, priceOrZero(math.Inf(1)))
}
