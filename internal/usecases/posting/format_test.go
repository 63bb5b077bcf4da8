package posting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRevenueValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero", 0, "Rs0"},
		{"below a thousand", 999, "Rs999"},
		{"exactly a thousand", 1_000, "Rs1K"},
		{"rounded up to next K", 1_500, "Rs2K"},
		{"typical afternoon figure", 583_000, "Rs583K"},
		{"just under a million stays K", 999_999, "Rs1000K"},
		{"exactly a million", 1_000_000, "Rs1.0M"},
		{"one decimal above a million", 1_200_000, "Rs1.2M"},
		{"two and a half million", 2_500_000, "Rs2.5M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRevenueValue(tt.value))
		})
	}
}

func TestParseRevenueValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"plain integer", "Rs999", 999, false},
		{"K suffix", "Rs583K", 583_000, false},
		{"M suffix", "Rs1.2M", 1_200_000, false},
		{"lowercase suffix", "Rs2k", 2_000, false},
		{"thousands separators", "Rs1,250K", 1_250_000, false},
		{"no currency prefix", "450", 450, false},
		{"empty", "", 0, true},
		{"garbage", "Rs", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRevenueValue(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

// Formatting then parsing must reproduce the value to the precision the
// format preserves.
func TestRevenueValueRoundTrip(t *testing.T) {
	values := []float64{0, 999, 1_000, 999_999, 1_000_000, 2_500_000}

	for _, value := range values {
		formatted := FormatRevenueValue(value)
		parsed, err := ParseRevenueValue(formatted)
		require.NoError(t, err, "value %v formatted as %q", value, formatted)

		// K precision is a thousand, M precision a hundred thousand.
		tolerance := 0.5
		if value >= 1_000_000 {
			tolerance = 50_000
		} else if value >= 1_000 {
			tolerance = 500
		}
		assert.InDelta(t, value, parsed, tolerance, "round trip of %v via %q", value, formatted)
	}
}
