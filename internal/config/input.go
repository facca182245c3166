package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finadvisor/retirement-engine/internal/domain"
)

// ScenarioFile is the YAML shape of a projection request. It accepts both
// the modern assets list and the legacy scalar fields; LoadFromFile
// reconciles them through domain.LegacyInputs.
type ScenarioFile struct {
	Age                 int             `yaml:"age"`
	RetirementAge       int             `yaml:"retirement_age"`
	LifeExpectancy      int             `yaml:"life_expectancy"`
	AnnualIncome        decimal.Decimal `yaml:"annual_income"`
	ContributionRatePct decimal.Decimal `yaml:"contribution_rate_pct"`

	ExpectedGrowthRatePct *decimal.Decimal `yaml:"expected_growth_rate_pct,omitempty"`
	InflationRatePct      *decimal.Decimal `yaml:"inflation_rate_pct,omitempty"`

	// Legacy fields.
	CurrentBalance *decimal.Decimal `yaml:"current_balance,omitempty"`
	TaxRatePct     *decimal.Decimal `yaml:"tax_rate_pct,omitempty"`
	AssetTypes     []string         `yaml:"asset_types,omitempty"`

	// Modern fields; these win over their legacy counterparts.
	CurrentMarginalTaxRatePct    *decimal.Decimal `yaml:"current_marginal_tax_rate_pct,omitempty"`
	RetirementMarginalTaxRatePct *decimal.Decimal `yaml:"retirement_marginal_tax_rate_pct,omitempty"`
	Assets                       []domain.Asset   `yaml:"assets,omitempty"`
}

// InputParser handles parsing of scenario input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a scenario from a YAML file, returning
// canonical UserInputs ready for projection.
func (ip *InputParser) LoadFromFile(filename string) (*domain.UserInputs, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var scenario ScenarioFile
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return ip.BuildInputs(&scenario)
}

// BuildInputs validates a scenario and maps it onto canonical UserInputs.
func (ip *InputParser) BuildInputs(scenario *ScenarioFile) (*domain.UserInputs, error) {
	if err := ip.ValidateScenario(scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	assets := make([]domain.Asset, len(scenario.Assets))
	copy(assets, scenario.Assets)
	for i := range assets {
		assets[i].Normalize()
	}

	inputs := domain.LegacyInputs{
		Age:                          scenario.Age,
		RetirementAge:                scenario.RetirementAge,
		LifeExpectancy:               scenario.LifeExpectancy,
		AnnualIncome:                 scenario.AnnualIncome,
		ContributionRatePct:          scenario.ContributionRatePct,
		CurrentBalance:               scenario.CurrentBalance,
		ExpectedGrowthRatePct:        scenario.ExpectedGrowthRatePct,
		InflationRatePct:             scenario.InflationRatePct,
		TaxRatePct:                   scenario.TaxRatePct,
		CurrentMarginalTaxRatePct:    scenario.CurrentMarginalTaxRatePct,
		RetirementMarginalTaxRatePct: scenario.RetirementMarginalTaxRatePct,
		AssetTypes:                   scenario.AssetTypes,
		Assets:                       assets,
	}.Build()

	return inputs, nil
}

// ValidateScenario validates a scenario before it reaches the engine; the
// engine itself performs no recovery on invalid inputs.
func (ip *InputParser) ValidateScenario(scenario *ScenarioFile) error {
	if scenario.Age <= 0 {
		return fmt.Errorf("age must be positive")
	}
	if scenario.RetirementAge < scenario.Age {
		return fmt.Errorf("retirement age must be >= age")
	}
	if scenario.LifeExpectancy != 0 && scenario.LifeExpectancy < scenario.RetirementAge {
		return fmt.Errorf("life expectancy cannot be before retirement age")
	}
	if scenario.AnnualIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("annual income cannot be negative")
	}
	if err := validateRatePct("contribution rate", scenario.ContributionRatePct); err != nil {
		return err
	}
	if scenario.TaxRatePct != nil {
		if err := validateRatePct("tax rate", *scenario.TaxRatePct); err != nil {
			return err
		}
	}
	if scenario.CurrentMarginalTaxRatePct != nil {
		if err := validateRatePct("current marginal tax rate", *scenario.CurrentMarginalTaxRatePct); err != nil {
			return err
		}
	}
	if scenario.RetirementMarginalTaxRatePct != nil {
		if err := validateRatePct("retirement marginal tax rate", *scenario.RetirementMarginalTaxRatePct); err != nil {
			return err
		}
	}
	if scenario.CurrentBalance != nil && scenario.CurrentBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("current balance cannot be negative")
	}

	for i := range scenario.Assets {
		if err := ip.validateAsset(&scenario.Assets[i]); err != nil {
			return fmt.Errorf("asset %d validation failed: %w", i, err)
		}
	}
	return nil
}

// validateAsset checks one asset definition.
func (ip *InputParser) validateAsset(asset *domain.Asset) error {
	if asset.Name == "" {
		return fmt.Errorf("asset name is required")
	}
	if !asset.Type.Valid() {
		return fmt.Errorf("asset type must be one of pre_tax, post_tax, tax_deferred; got %q", asset.Type)
	}
	if asset.CurrentBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("current balance cannot be negative")
	}
	if asset.AnnualContribution.LessThan(decimal.Zero) {
		return fmt.Errorf("annual contribution cannot be negative")
	}
	if err := validateRatePct("growth rate", asset.GrowthRatePct); err != nil {
		return err
	}
	if !asset.TaxRatePct.IsZero() {
		if err := validateRatePct("tax rate", asset.TaxRatePct); err != nil {
			return err
		}
	}
	return nil
}

var maxRatePct = decimal.NewFromInt(50)

// validateRatePct range-checks percentage inputs to [0, 50], the widest band
// the import surfaces accept.
func validateRatePct(name string, pct decimal.Decimal) error {
	if pct.LessThan(decimal.Zero) || pct.GreaterThan(maxRatePct) {
		return fmt.Errorf("%s must be between 0 and 50 percent, got %s", name, pct)
	}
	return nil
}
