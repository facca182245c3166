package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/finadvisor/retirement-engine/internal/calculation"
	"github.com/finadvisor/retirement-engine/internal/domain"
)

const explainRule = "--------------------------------------------------------------------------------"
const explainBanner = "================================================================================"

// ExplainProjection produces a multi-section derivation of the projection
// math: the core formula, the per-asset principal-growth and
// contribution-growth terms, and the tax-treatment rules as prose. It is a
// narration of the projector, not a re-derivation: both call the same
// BreakdownGrowth and ApplyTaxLogic, so the numbers shown are exactly the
// numbers projected.
func ExplainProjection(inputs *domain.UserInputs) (string, error) {
	years, err := calculation.YearsToRetirement(inputs.Age, inputs.RetirementAge)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, explainBanner)
	fmt.Fprintln(&buf, "PROJECTED BALANCE CALCULATION EXPLAINED")
	fmt.Fprintln(&buf, explainBanner)
	fmt.Fprintln(&buf)

	writeFormulaSection(&buf)

	fmt.Fprintln(&buf, "YOUR CALCULATION:")
	fmt.Fprintln(&buf, explainRule)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Age: %d -> Retirement Age: %d\n", inputs.Age, inputs.RetirementAge)
	fmt.Fprintf(&buf, "Years to Retirement: %d\n", years)
	fmt.Fprintln(&buf)

	assets := calculation.EffectiveAssets(inputs)
	fmt.Fprintln(&buf, "Assets Breakdown:")
	fmt.Fprintln(&buf)
	for i, asset := range assets {
		if err := writeAssetDerivation(&buf, i+1, asset, years, inputs); err != nil {
			return "", err
		}
	}

	writeTaxTreatmentSection(&buf)
	writeInsightsSection(&buf)
	fmt.Fprintln(&buf, explainBanner)

	return buf.String(), nil
}

func writeFormulaSection(buf *bytes.Buffer) {
	fmt.Fprintln(buf, "CORE FORMULA: Future Value with Annual Contributions")
	fmt.Fprintln(buf, explainRule)
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "FV = P x (1 + r)^t + C x [((1 + r)^t - 1) / r]")
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "Where:")
	fmt.Fprintln(buf, "  P = Current Balance (Principal)")
	fmt.Fprintln(buf, "  r = Annual Growth Rate (as decimal)")
	fmt.Fprintln(buf, "  t = Years Until Retirement")
	fmt.Fprintln(buf, "  C = Annual Contribution (made at end of each year)")
	fmt.Fprintln(buf, "  FV = Future Value (Projected Balance)")
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "The formula has TWO components:")
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "1. PRINCIPAL GROWTH: P x (1 + r)^t")
	fmt.Fprintln(buf, "   Your current balance compounding over t years.")
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "2. CONTRIBUTION GROWTH: C x [((1 + r)^t - 1) / r]")
	fmt.Fprintln(buf, "   The future-value-of-annuity factor: each year's contribution")
	fmt.Fprintln(buf, "   compounds for the years remaining after it is made.")
	fmt.Fprintln(buf)
}

func writeAssetDerivation(buf *bytes.Buffer, index int, asset domain.Asset, years int, inputs *domain.UserInputs) error {
	bd, err := calculation.BreakdownGrowth(asset.CurrentBalance, asset.AnnualContribution, asset.GrowthRatePct, years)
	if err != nil {
		return err
	}
	afterTax, liability, err := calculation.ApplyTaxLogic(asset, bd.FutureValue, bd.TotalContributions, inputs.RetirementMarginalTaxRatePct)
	if err != nil {
		return err
	}

	fmt.Fprintf(buf, "Asset %d: %s\n", index, asset.Name)
	fmt.Fprintf(buf, "  Type: %s (%s)\n", asset.Type, asset.EffectiveSubtype())
	fmt.Fprintf(buf, "  Current Balance (P): %s\n", FormatCurrency(asset.CurrentBalance))
	fmt.Fprintf(buf, "  Annual Contribution (C): %s\n", FormatCurrency(asset.AnnualContribution))
	fmt.Fprintf(buf, "  Growth Rate (r): %s\n", FormatPercentage(asset.GrowthRatePct))
	fmt.Fprintln(buf)

	if bd.ZeroRate {
		fmt.Fprintf(buf, "  Zero growth rate, so FV = P + C x t = %s + %s x %d = %s\n",
			FormatCurrency(asset.CurrentBalance), FormatCurrency(asset.AnnualContribution), years, FormatCurrency(bd.FutureValue))
	} else {
		fmt.Fprintf(buf, "  Principal Growth: %s x %s = %s\n",
			FormatCurrency(asset.CurrentBalance), bd.GrowthFactor.StringFixed(6), FormatCurrency(bd.PrincipalGrowth))
		fmt.Fprintf(buf, "  Contribution Growth: %s x %s = %s\n",
			FormatCurrency(asset.AnnualContribution), bd.AnnuityFactor.StringFixed(6), FormatCurrency(bd.ContributionGrowth))
		fmt.Fprintf(buf, "  Pre-Tax FV: %s\n", FormatCurrency(bd.FutureValue))
	}

	fmt.Fprintf(buf, "  Tax Liability: %s\n", FormatCurrency(liability))
	fmt.Fprintf(buf, "  After-Tax Value: %s\n", FormatCurrency(afterTax))
	fmt.Fprintln(buf)
	return nil
}

func writeTaxTreatmentSection(buf *bytes.Buffer) {
	fmt.Fprintln(buf, "TAX TREATMENT BY ASSET TYPE:")
	fmt.Fprintln(buf, explainRule)
	fmt.Fprintln(buf)
	treatments := []string{
		"Pre-Tax (401k, Traditional IRA):",
		"  - Full balance is taxed at retirement tax rate",
		"  - Tax = FV x retirement_tax_rate",
		"",
		"Post-Tax (Roth IRA):",
		"  - Tax-free on withdrawal",
		"  - Tax = $0",
		"",
		"Post-Tax (Brokerage):",
		"  - Only capital gains are taxed",
		"  - Gains = FV - Total Contributions",
		"  - Tax = Gains x capital_gains_rate",
		"",
		"Tax-Deferred (HSA):",
		"  - 50% assumed for medical expenses (tax-free)",
		"  - 50% for other withdrawals (taxed)",
		"  - Tax = 50% x FV x retirement_tax_rate",
		"",
		"Tax-Deferred (Annuities):",
		"  - Taxed as ordinary income",
		"  - Tax = FV x retirement_tax_rate",
	}
	fmt.Fprintln(buf, strings.Join(treatments, "\n"))
	fmt.Fprintln(buf)
}

func writeInsightsSection(buf *bytes.Buffer) {
	fmt.Fprintln(buf, "KEY INSIGHTS:")
	fmt.Fprintln(buf, explainRule)
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "1. Annual contributions are assumed to be made at the END of each year")
	fmt.Fprintln(buf, "2. Each contribution grows with compound interest for the remaining years")
	fmt.Fprintln(buf, "3. The longer the time horizon, the more powerful the contribution growth")
	fmt.Fprintln(buf, "4. Asset type significantly affects after-tax value")
	fmt.Fprintln(buf, "5. Tax-advantaged accounts (Roth, HSA) provide substantial benefits")
	fmt.Fprintln(buf)
}
