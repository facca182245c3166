package calculation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finadvisor/retirement-engine/pkg/percent"
)

// Sentinel errors for the engine's failure taxonomy. All are invalid-argument
// or invariant failures: deterministic, synchronous and never retried.
var (
	ErrRetirementBeforeAge = errors.New("retirement age must be >= current age")
	ErrNegativeYears       = errors.New("years must be >= 0")
	ErrUnknownAssetType    = errors.New("unknown asset type")
)

var one = decimal.NewFromInt(1)

// YearsToRetirement returns the whole years remaining until retirement.
// Zero is valid (already at retirement age).
func YearsToRetirement(age, retirementAge int) (int, error) {
	if retirementAge < age {
		return 0, fmt.Errorf("%w: age %d, retirement age %d", ErrRetirementBeforeAge, age, retirementAge)
	}
	return retirementAge - age, nil
}

// GrowthBreakdown carries the intermediate terms of the future-value formula
// so the projector and the explainer narrate the same arithmetic instead of
// re-deriving it.
type GrowthBreakdown struct {
	GrowthFactor       decimal.Decimal // (1+r)^t; 1 when ZeroRate
	AnnuityFactor      decimal.Decimal // ((1+r)^t - 1) / r; t when ZeroRate
	PrincipalGrowth    decimal.Decimal // P * GrowthFactor
	ContributionGrowth decimal.Decimal // C * AnnuityFactor
	FutureValue        decimal.Decimal
	TotalContributions decimal.Decimal // C * t
	ZeroRate           bool
}

// BreakdownGrowth computes FV = P(1+r)^t + C[((1+r)^t - 1)/r] with
// contributions made at the end of each year (ordinary annuity). A rate of
// exactly zero collapses to P + C*t; the check is exact, not
// epsilon-tolerant, since r == 0 is a valid input rather than a numerical
// edge case.
func BreakdownGrowth(principal, annualContribution, ratePct decimal.Decimal, years int) (GrowthBreakdown, error) {
	if years < 0 {
		return GrowthBreakdown{}, fmt.Errorf("%w: got %d", ErrNegativeYears, years)
	}

	t := decimal.NewFromInt(int64(years))
	bd := GrowthBreakdown{TotalContributions: annualContribution.Mul(t)}

	r := percent.Fraction(ratePct)
	if r.IsZero() {
		bd.ZeroRate = true
		bd.GrowthFactor = one
		bd.AnnuityFactor = t
		bd.PrincipalGrowth = principal
		bd.ContributionGrowth = annualContribution.Mul(t)
		bd.FutureValue = principal.Add(bd.ContributionGrowth)
		return bd, nil
	}

	bd.GrowthFactor = one.Add(r).Pow(t)
	bd.AnnuityFactor = bd.GrowthFactor.Sub(one).Div(r)
	bd.PrincipalGrowth = principal.Mul(bd.GrowthFactor)
	bd.ContributionGrowth = annualContribution.Mul(bd.AnnuityFactor)
	bd.FutureValue = bd.PrincipalGrowth.Add(bd.ContributionGrowth)
	return bd, nil
}

// FutureValueWithContrib computes the future value of a balance with level
// end-of-year contributions compounding annually at ratePct percent.
func FutureValueWithContrib(principal, annualContribution, ratePct decimal.Decimal, years int) (decimal.Decimal, error) {
	bd, err := BreakdownGrowth(principal, annualContribution, ratePct, years)
	if err != nil {
		return decimal.Zero, err
	}
	return bd.FutureValue, nil
}
