package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommaDecimal(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1,20", want: "1.20"},
		{input: "12,05", want: "12.05"},
		{input: " 3,00 ", want: "3.00"},
		{input: "2.40", want: "2.40"},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommaDecimal(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "2.40", FormatAmount(decimal.RequireFromString("2.4")))
	assert.Equal(t, "1.50", FormatAmount(decimal.RequireFromString("1.5")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}

func TestPrice_MarshalCSV_KeepsTrailingZeros(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "2.4", want: "2.40"},
		{value: "1.2", want: "1.20"},
		{value: "3", want: "3.00"},
	}

	for _, tt := range tests {
		got, err := NewPrice(decimal.RequireFromString(tt.value)).MarshalCSV()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestPrice_UnmarshalCSV(t *testing.T) {
	var p Price
	require.NoError(t, p.UnmarshalCSV("2.40"))
	assert.True(t, p.Equal(decimal.RequireFromString("2.40")))

	var empty Price
	require.NoError(t, empty.UnmarshalCSV(""))
	assert.True(t, empty.IsZero())

	var bad Price
	assert.Error(t, bad.UnmarshalCSV("abc"))
}
