package domain

import "github.com/shopspring/decimal"

// Default assumptions used when a caller omits the optional inputs.
var (
	DefaultLifeExpectancy    = 90
	DefaultGrowthRatePct     = decimal.NewFromFloat(7.0)
	DefaultInflationRatePct  = decimal.NewFromFloat(3.0)
)

// UserInputs is the canonical projection request. Build one directly for
// asset-based callers, or through LegacyInputs.Build for the older
// single-balance call shape.
type UserInputs struct {
	Age                          int             `yaml:"age" json:"age"`
	RetirementAge                int             `yaml:"retirement_age" json:"retirement_age"`
	LifeExpectancy               int             `yaml:"life_expectancy" json:"life_expectancy"`
	AnnualIncome                 decimal.Decimal `yaml:"annual_income" json:"annual_income"`
	ContributionRatePct          decimal.Decimal `yaml:"contribution_rate_pct" json:"contribution_rate_pct"`
	ExpectedGrowthRatePct        decimal.Decimal `yaml:"expected_growth_rate_pct" json:"expected_growth_rate_pct"`
	InflationRatePct             decimal.Decimal `yaml:"inflation_rate_pct" json:"inflation_rate_pct"`
	CurrentMarginalTaxRatePct    decimal.Decimal `yaml:"current_marginal_tax_rate_pct" json:"current_marginal_tax_rate_pct"`
	RetirementMarginalTaxRatePct decimal.Decimal `yaml:"retirement_marginal_tax_rate_pct" json:"retirement_marginal_tax_rate_pct"`
	Assets                       []Asset         `yaml:"assets" json:"assets"`

	// LegacyCurrentBalance holds the old single-balance scalar. It is only
	// consulted by CurrentBalance when the asset balances sum to exactly zero.
	LegacyCurrentBalance *decimal.Decimal `yaml:"-" json:"-"`
}

// CurrentBalance is the derived read-only view over the asset balances. When
// the sum is exactly zero and a legacy scalar was supplied, the scalar wins.
func (ui *UserInputs) CurrentBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range ui.Assets {
		total = total.Add(a.CurrentBalance)
	}
	if total.IsZero() && ui.LegacyCurrentBalance != nil {
		return *ui.LegacyCurrentBalance
	}
	return total
}

// AssetNames returns the account names, the legacy view over the asset list.
func (ui *UserInputs) AssetNames() []string {
	names := make([]string, 0, len(ui.Assets))
	for _, a := range ui.Assets {
		names = append(names, a.Name)
	}
	return names
}

// LegacyInputs is the adapter for the older call shape: a single current
// balance, one blended tax rate and account selection by template name.
// Build maps it onto the canonical UserInputs using named reconciliation
// rules; modern fields always win over their legacy counterparts.
type LegacyInputs struct {
	Age                 int
	RetirementAge       int
	LifeExpectancy      int
	AnnualIncome        decimal.Decimal
	ContributionRatePct decimal.Decimal

	CurrentBalance        *decimal.Decimal
	ExpectedGrowthRatePct *decimal.Decimal
	InflationRatePct      *decimal.Decimal

	// TaxRatePct is the legacy blended rate; the modern per-phase rates
	// override it when present.
	TaxRatePct                   *decimal.Decimal
	CurrentMarginalTaxRatePct    *decimal.Decimal
	RetirementMarginalTaxRatePct *decimal.Decimal

	// AssetTypes selects accounts by template name; ignored when Assets is set.
	AssetTypes []string
	Assets     []Asset
}

// Build constructs the canonical UserInputs from the legacy shape.
func (li LegacyInputs) Build() *UserInputs {
	ui := &UserInputs{
		Age:                   li.Age,
		RetirementAge:         li.RetirementAge,
		LifeExpectancy:        li.LifeExpectancy,
		AnnualIncome:          li.AnnualIncome,
		ContributionRatePct:   li.ContributionRatePct,
		ExpectedGrowthRatePct: DefaultGrowthRatePct,
		InflationRatePct:      DefaultInflationRatePct,
		Assets:                li.Assets,
		LegacyCurrentBalance:  li.CurrentBalance,
	}
	if ui.LifeExpectancy == 0 {
		ui.LifeExpectancy = DefaultLifeExpectancy
	}
	if li.ExpectedGrowthRatePct != nil {
		ui.ExpectedGrowthRatePct = *li.ExpectedGrowthRatePct
	}
	if li.InflationRatePct != nil {
		ui.InflationRatePct = *li.InflationRatePct
	}

	ui.CurrentMarginalTaxRatePct = resolveCurrentTaxRate(li.CurrentMarginalTaxRatePct, li.TaxRatePct)
	ui.RetirementMarginalTaxRatePct = resolveRetirementTaxRate(li.RetirementMarginalTaxRatePct, ui.CurrentMarginalTaxRatePct)

	if len(ui.Assets) == 0 && len(li.AssetTypes) > 0 {
		ui.Assets = synthesizeLegacyAssets(li, ui)
	}
	return ui
}

// resolveCurrentTaxRate prefers the explicit modern rate, then the legacy
// blended rate, then zero.
func resolveCurrentTaxRate(modern, legacy *decimal.Decimal) decimal.Decimal {
	if modern != nil {
		return *modern
	}
	if legacy != nil {
		return *legacy
	}
	return decimal.Zero
}

// resolveRetirementTaxRate prefers the explicit retirement rate, defaulting
// to the resolved current rate.
func resolveRetirementTaxRate(modern *decimal.Decimal, current decimal.Decimal) decimal.Decimal {
	if modern != nil {
		return *modern
	}
	return current
}

// synthesizeLegacyAssets expands template names into concrete assets. A lone
// name receives the legacy balance; multiple names start at zero balance.
// Every synthesized asset contributes income x contribution rate annually and
// grows at the expected rate.
func synthesizeLegacyAssets(li LegacyInputs, ui *UserInputs) []Asset {
	contribution := ui.AnnualIncome.Mul(ui.ContributionRatePct).Div(decimal.NewFromInt(100))
	assets := make([]Asset, 0, len(li.AssetTypes))
	for _, name := range li.AssetTypes {
		balance := decimal.Zero
		if len(li.AssetTypes) == 1 && li.CurrentBalance != nil {
			balance = *li.CurrentBalance
		}
		assets = append(assets, NewAsset(name, TemplateAssetType(name), balance, contribution, ui.ExpectedGrowthRatePct))
	}
	return assets
}
