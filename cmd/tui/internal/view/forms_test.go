package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1250.50", want: "1250.5"},
		{in: "1.250,50", want: "1250.5"},
		{in: "$ 1.250,50", want: "1250.5"},
		{in: " 80 ", want: "80"},
		{in: "0", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "doce", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("  ")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDate("2024-07-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", formatDate(d))

	_, err = parseDate("01/07/2024")
	assert.Error(t, err)
}
