package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finadvisor/retirement-engine/internal/domain"
	"github.com/finadvisor/retirement-engine/pkg/percent"
)

// TAX TREATMENT ASSUMPTIONS:
//
// 1. Federal brackets: 2024 single-filer table, held constant across all
//    projection years (no inflation indexing).
// 2. Pre-tax accounts: the full future value is taxed at the retirement
//    marginal rate on withdrawal.
// 3. Post-tax accounts: Roth withdrawals are tax-free; everything else is
//    treated as a brokerage account with only the gains taxed at the asset's
//    own capital-gains rate.
// 4. Tax-deferred accounts: HSAs assume 50% medical (tax-free) and 50%
//    non-medical taxed as ordinary income; annuities are taxed as ordinary
//    income on the full value.

// TaxBracket is one marginal bracket. MinIncome is inclusive, MaxIncome
// exclusive; a nil MaxIncome marks the unbounded top bracket.
type TaxBracket struct {
	MinIncome decimal.Decimal
	MaxIncome *decimal.Decimal
	RatePct   decimal.Decimal
}

func bracket(min, max int64, ratePct float64) TaxBracket {
	maxIncome := decimal.NewFromInt(max)
	return TaxBracket{
		MinIncome: decimal.NewFromInt(min),
		MaxIncome: &maxIncome,
		RatePct:   decimal.NewFromFloat(ratePct),
	}
}

// IRSTaxBrackets2024 returns the 2024 IRS single-filer bracket table, ordered
// ascending by lower bound. It is a constant reference table, not
// user-editable.
func IRSTaxBrackets2024() []TaxBracket {
	return []TaxBracket{
		bracket(0, 11000, 10.0),
		bracket(11000, 44725, 12.0),
		bracket(44725, 95375, 22.0),
		bracket(95375, 182050, 24.0),
		bracket(182050, 231250, 32.0),
		bracket(231250, 578125, 35.0),
		{MinIncome: decimal.NewFromInt(578125), MaxIncome: nil, RatePct: decimal.NewFromFloat(37.0)},
	}
}

// ProjectTaxRate returns the marginal rate of the bracket matching
// min <= income < max. Falls back to the top bracket's rate; unreachable for
// a well-formed table but kept as an invariant guard.
func ProjectTaxRate(income decimal.Decimal, brackets []TaxBracket) decimal.Decimal {
	for _, b := range brackets {
		if b.MinIncome.LessThanOrEqual(income) && (b.MaxIncome == nil || income.LessThan(*b.MaxIncome)) {
			return b.RatePct
		}
	}
	return brackets[len(brackets)-1].RatePct
}

// CalculateAssetGrowth projects one asset forward, returning its pre-tax
// future value and the total contributed over the horizon.
func CalculateAssetGrowth(asset domain.Asset, years int) (futureValue, totalContributions decimal.Decimal, err error) {
	bd, err := BreakdownGrowth(asset.CurrentBalance, asset.AnnualContribution, asset.GrowthRatePct, years)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("asset %q: %w", asset.Name, err)
	}
	return bd.FutureValue, bd.TotalContributions, nil
}

// ApplyTaxLogic applies the per-asset tax-treatment policy and returns the
// after-tax value and the tax liability. For every treatment,
// afterTax + liability == futureValue.
func ApplyTaxLogic(asset domain.Asset, futureValue, totalContributions, retirementTaxRatePct decimal.Decimal) (afterTax, liability decimal.Decimal, err error) {
	switch asset.Type {
	case domain.AssetTypePreTax:
		liability = percent.Of(futureValue, retirementTaxRatePct)

	case domain.AssetTypePostTax:
		if asset.EffectiveSubtype() == domain.TaxSubtypeRoth {
			liability = decimal.Zero
		} else {
			// Brokerage: only the gains are taxed, at the asset's own
			// capital-gains rate rather than the retirement marginal rate.
			gains := futureValue.Sub(totalContributions)
			liability = percent.Of(gains, asset.TaxRatePct)
		}

	case domain.AssetTypeTaxDeferred:
		if asset.EffectiveSubtype() == domain.TaxSubtypeHSA {
			// Half assumed spent on medical (tax-free), half taxed as
			// ordinary income.
			taxablePortion := futureValue.Mul(decimal.NewFromFloat(0.5))
			liability = percent.Of(taxablePortion, retirementTaxRatePct)
		} else {
			// Annuities: ordinary income on the full value.
			liability = percent.Of(futureValue, retirementTaxRatePct)
		}

	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: asset %q has type %q", ErrUnknownAssetType, asset.Name, asset.Type)
	}

	return futureValue.Sub(liability), liability, nil
}

// SimplePostTax is the legacy flat-tax helper retained for older call sites.
// The rate is clamped to [0, 100] before applying.
func SimplePostTax(balance, taxRatePct decimal.Decimal) decimal.Decimal {
	rate := percent.Clamp(taxRatePct, decimal.Zero, decimal.NewFromInt(100))
	return balance.Sub(percent.Of(balance, rate))
}
