package money_test

import (
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-studio/internal/money"
)

func TestFromInt(t *testing.T) {
	d := money.FromInt(150)
	assert.True(t, d.Equal(dec.NewFromInt(150)))
}

func TestFromString(t *testing.T) {
	d, err := money.FromString("123456.78")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("123456.78")))

	_, err = money.FromString("not-a-number")
	require.Error(t, err)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		percentage string
		expected   string
	}{
		{"10% of 100", "100", "10", "10"},
		{"5% of 90", "90", "5", "4.5"},
		{"0% of 100", "100", "0", "0"},
		{"7.5% of 200", "200", "7.5", "15"},
		{"exact fraction", "99.99", "10", "9.999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := money.Percentage(
				dec.RequireFromString(tt.amount),
				dec.RequireFromString(tt.percentage),
			)
			expected := dec.RequireFromString(tt.expected)
			assert.True(t, result.Equal(expected),
				"%s%% of %s: got %s, want %s",
				tt.percentage, tt.amount, result.String(), tt.expected)
		})
	}
}

func TestSum(t *testing.T) {
	values := []dec.Decimal{
		dec.RequireFromString("33.33"),
		dec.RequireFromString("33.33"),
		dec.RequireFromString("33.33"),
	}
	result := money.Sum(values)
	// Exact arithmetic: no drift to 100.00
	assert.True(t, result.Equal(dec.RequireFromString("99.99")))
}

func TestSum_Empty(t *testing.T) {
	result := money.Sum([]dec.Decimal{})
	assert.True(t, result.IsZero())
}

func TestIsPositive(t *testing.T) {
	assert.True(t, money.IsPositive(dec.NewFromInt(1)))
	assert.False(t, money.IsPositive(dec.Zero))
	assert.False(t, money.IsPositive(dec.NewFromInt(-1)))
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, money.IsNonNegative(dec.Zero))
	assert.True(t, money.IsNonNegative(dec.NewFromInt(5)))
	assert.False(t, money.IsNonNegative(dec.NewFromInt(-5)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "100.00", money.Format(dec.NewFromInt(100)))
	assert.Equal(t, "4.50", money.Format(dec.RequireFromString("4.5")))
	assert.Equal(t, "10.00", money.Format(dec.RequireFromString("9.999")))
	assert.Equal(t, "0.00", money.Format(dec.Zero))
}
