package emi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	t.Run("standard home loan", func(t *testing.T) {
		// 50 lakh at 9.5% over 20 years.
		calc, err := Compute(5000000, 9.5, 20)
		assert.NoError(t, err)
		assert.Equal(t, int64(46607), calc.MonthlyEMI)
		assert.Equal(t, float64(5000000), calc.LoanAmount)
		assert.Equal(t, 20, calc.TenureYears)
	})

	t.Run("zero interest degenerates to principal over months", func(t *testing.T) {
		calc, err := Compute(1000000, 0, 10)
		assert.NoError(t, err)
		assert.Equal(t, int64(8333), calc.MonthlyEMI)
		assert.Equal(t, int64(1000000), calc.TotalPayable)
		assert.Equal(t, int64(0), calc.TotalInterest)
	})

	t.Run("totals are consistent", func(t *testing.T) {
		calc, err := Compute(5000000, 9.5, 20)
		assert.NoError(t, err)

		// Total payable is the installment across all 240 months; the three
		// amounts are rounded independently, so allow rounding slack.
		months := float64(calc.TenureYears * 12)
		assert.InDelta(t, float64(calc.MonthlyEMI)*months, float64(calc.TotalPayable), months/2)
		assert.InDelta(t, calc.LoanAmount, float64(calc.TotalPayable-calc.TotalInterest), 1)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := Compute(2750000, 8.25, 15)
		assert.NoError(t, err)
		second, err := Compute(2750000, 8.25, 15)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("rejects invalid arguments", func(t *testing.T) {
		cases := []struct {
			name      string
			principal float64
			rate      float64
			tenure    int
		}{
			{"zero principal", 0, 9.5, 20},
			{"negative principal", -5000000, 9.5, 20},
			{"negative rate", 5000000, -1, 20},
			{"zero tenure", 5000000, 9.5, 0},
			{"negative tenure", 5000000, 9.5, -3},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := Compute(tc.principal, tc.rate, tc.tenure)
				assert.ErrorIs(t, err, ErrInvalidArgument)
			})
		}
	})
}
