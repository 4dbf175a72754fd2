// Package rates implements the interest-rate conversion calculator.
package rates

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Kind is the representation an interest rate is expressed in.
type Kind string

const (
	// EffectiveAnnual is the rate actually earned over a year.
	EffectiveAnnual Kind = "effective-annual"
	// NominalAnnual is the periodic rate scaled by the number of
	// compounding periods per year.
	NominalAnnual Kind = "nominal-annual"
	// EffectivePeriodic is the rate per compounding period.
	EffectivePeriodic Kind = "effective-periodic"
)

var (
	ErrUnknownKind      = errors.New("the rate kind must be effective-annual, nominal-annual or effective-periodic")
	ErrInvalidPeriods   = errors.New("the number of compounding periods per year must be positive")
	ErrRateOutOfRange   = errors.New("the rate must be greater than -100%")
	errNotRepresentable = errors.New("the conversion result is not representable")
)

// places is the rounding applied to conversion results. Eight decimal
// places matches the DECIMAL(20,8) storage used for amounts.
const places = 8

// Convert translates a rate, given as a decimal fraction (0.05 means
// 5%), from one representation to another for a compounding frequency
// of periodsPerYear.
func Convert(rate decimal.Decimal, from, to Kind, periodsPerYear int) (decimal.Decimal, error) {
	if periodsPerYear <= 0 {
		return decimal.Zero, ErrInvalidPeriods
	}
	if !isKind(from) || !isKind(to) {
		return decimal.Zero, ErrUnknownKind
	}

	r, _ := rate.Float64()
	if r <= -1 {
		return decimal.Zero, ErrRateOutOfRange
	}

	if from == to {
		return rate, nil
	}

	n := float64(periodsPerYear)

	// Normalize to the effective periodic rate first.
	var periodic float64
	switch from {
	case EffectivePeriodic:
		periodic = r
	case NominalAnnual:
		periodic = r / n
	case EffectiveAnnual:
		periodic = math.Pow(1+r, 1/n) - 1
	}

	var result float64
	switch to {
	case EffectivePeriodic:
		result = periodic
	case NominalAnnual:
		result = periodic * n
	case EffectiveAnnual:
		result = math.Pow(1+periodic, n) - 1
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return decimal.Zero, errNotRepresentable
	}

	return decimal.NewFromFloat(result).Round(places), nil
}

func isKind(k Kind) bool {
	return k == EffectiveAnnual || k == NominalAnnual || k == EffectivePeriodic
}
