package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rp-market/internal/domain"
)

func TestApplyDiscount(t *testing.T) {
	cases := []struct {
		name     string
		base, d  float64
		price    float64
		original *float64
	}{
		{"no discount", 200, 0, 200, nil},
		{"quarter off", 200, 25, 150, ptr(200.0)},
		{"full discount", 80, 100, 0, ptr(80.0)},
		{"ten off", 50, 10, 45, ptr(50.0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price, original, err := ApplyDiscount(tc.base, tc.d)
			require.NoError(t, err)
			assert.Equal(t, tc.price, price)
			assert.Equal(t, tc.original, original)
		})
	}
}

func TestApplyDiscount_Rejects(t *testing.T) {
	for _, in := range [][2]float64{{-1, 0}, {10, -5}, {10, 101}} {
		_, _, err := ApplyDiscount(in[0], in[1])
		assert.ErrorIs(t, err, domain.ErrValidation, "%v", in)
	}
}

func TestCalculate(t *testing.T) {
	m := Calculate([]float64{100, 50}, 25, 15)
	assert.Equal(t, Margin{TotalCost: 150, ProfitPrice: 187.5, Tax: 28.125, FinalPrice: 215.625}, m)

	assert.Equal(t, Margin{}, Calculate(nil, 25, 15))
	assert.Equal(t, Calculate([]float64{1.1, 2.2}, 33, 7), Calculate([]float64{1.1, 2.2}, 33, 7))
}

func ptr[T any](v T) *T { return &v }
