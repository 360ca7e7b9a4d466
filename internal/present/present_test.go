package present_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1250000.5", "$ 1.250.000,50"},
		{"10", "$ 10,00"},
		{"0", "$ 0,00"},
		{"-92000.75", "-$ 92.000,75"},
		{"3.456", "$ 3,46"},
		{"999.5", "$ 999,50"},
		{"1000", "$ 1.000,00"},
		{"99999999999999.99", "$ 99.999.999.999.999,99"},
		{"-123456789012345678.05", "-$ 123.456.789.012.345.678,05"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, present.Money(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "42,5%", present.Percent(decimal.RequireFromString("42.46")))
	assert.Equal(t, "100%", present.Percent(decimal.NewFromInt(100)))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "03/07/2024", present.Date(civil.NewDate(2024, 7, 3)))
	assert.Equal(t, present.Empty, present.Date(civil.Date{}))
}

func TestText(t *testing.T) {
	assert.Equal(t, present.Empty, present.Text(""))
	assert.Equal(t, "x", present.Text("x"))
}

func TestRef(t *testing.T) {
	names := map[int64]string{1: "Banco Nación"}

	assert.Equal(t, "Banco Nación", present.Ref(names, new(int64(1))))
	assert.Equal(t, "#9", present.Ref(names, new(int64(9))))
	assert.Equal(t, present.Empty, present.Ref(names, nil))
}
