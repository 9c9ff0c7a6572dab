// Package emi computes equated monthly installments for home loans using the
// standard amortization formula.
package emi

import (
	"errors"
	"math"
)

// ErrInvalidArgument is returned when a quote is requested with a
// non-positive principal or tenure, or a negative interest rate.
var ErrInvalidArgument = errors.New("loan amount and tenure must be positive and interest rate non-negative")

const monthsPerYear = 12

// Calculation is a loan quote. The three derived amounts are rounded to the
// nearest rupee, half away from zero.
type Calculation struct {
	LoanAmount    float64 `json:"loanAmount" example:"5000000"`
	InterestRate  float64 `json:"interestRate" example:"9.5"` // annual, percent
	TenureYears   int     `json:"tenure" example:"20"`
	MonthlyEMI    int64   `json:"emi" example:"46607"`
	TotalPayable  int64   `json:"totalAmount" example:"11185574"`
	TotalInterest int64   `json:"totalInterest" example:"6185574"`
}

// Compute derives the monthly installment, total payable, and total interest
// for a loan. Pure and deterministic: identical inputs always produce
// identical results.
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate and n the number of monthly payments. A zero
// interest rate degenerates to P / n.
func Compute(principal, annualRatePercent float64, tenureYears int) (Calculation, error) {
	if principal <= 0 || annualRatePercent < 0 || tenureYears <= 0 {
		return Calculation{}, ErrInvalidArgument
	}

	n := float64(tenureYears * monthsPerYear)

	var installment float64
	if annualRatePercent == 0 {
		installment = principal / n
	} else {
		r := (annualRatePercent / 100) / monthsPerYear
		power := math.Pow(1+r, n)
		installment = principal * r * power / (power - 1)
	}

	totalPayable := installment * n
	totalInterest := totalPayable - principal

	return Calculation{
		LoanAmount:    principal,
		InterestRate:  annualRatePercent,
		TenureYears:   tenureYears,
		MonthlyEMI:    roundRupee(installment),
		TotalPayable:  roundRupee(totalPayable),
		TotalInterest: roundRupee(totalInterest),
	}, nil
}

// roundRupee rounds half away from zero to a whole rupee.
func roundRupee(v float64) int64 {
	return int64(math.Round(v))
}
