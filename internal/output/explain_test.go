package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finadvisor/retirement-engine/internal/calculation"
	"github.com/finadvisor/retirement-engine/internal/domain"
)

func TestExplainProjectionSections(t *testing.T) {
	inputs := &domain.UserInputs{
		Age:                          35,
		RetirementAge:                65,
		RetirementMarginalTaxRatePct: decimal.NewFromInt(22),
		Assets: []domain.Asset{
			domain.NewAsset("401(k) - Employer", domain.AssetTypePreTax,
				decimal.NewFromInt(85000), decimal.NewFromInt(19500), decimal.NewFromFloat(7.0)),
			domain.NewAsset("Roth IRA", domain.AssetTypePostTax,
				decimal.NewFromInt(30000), decimal.NewFromInt(7000), decimal.NewFromFloat(7.0)),
		},
	}

	text, err := ExplainProjection(inputs)
	require.NoError(t, err)

	assert.Contains(t, text, "PROJECTED BALANCE CALCULATION EXPLAINED")
	assert.Contains(t, text, "FV = P x (1 + r)^t + C x [((1 + r)^t - 1) / r]")
	assert.Contains(t, text, "Years to Retirement: 30")
	assert.Contains(t, text, "Asset 1: 401(k) - Employer")
	assert.Contains(t, text, "Asset 2: Roth IRA")
	assert.Contains(t, text, "TAX TREATMENT BY ASSET TYPE:")
	assert.Contains(t, text, "KEY INSIGHTS:")
}

func TestExplainProjectionNumbersMatchProjector(t *testing.T) {
	// The explanation narrates the projector's arithmetic; the after-tax
	// figure it prints must be the projector's own.
	inputs := &domain.UserInputs{
		Age:                          30,
		RetirementAge:                31,
		RetirementMarginalTaxRatePct: decimal.NewFromInt(25),
		Assets: []domain.Asset{
			domain.NewAsset("401(k)", domain.AssetTypePreTax,
				decimal.NewFromInt(10000), decimal.Zero, decimal.NewFromInt(10)),
		},
	}

	result, err := calculation.NewProjector().Project(inputs)
	require.NoError(t, err)
	afterTax := result[domain.KeyTotalAfterTaxBalance].(decimal.Decimal)

	text, err := ExplainProjection(inputs)
	require.NoError(t, err)
	assert.Contains(t, text, "After-Tax Value: "+FormatCurrency(afterTax))
}

func TestExplainProjectionZeroRatePath(t *testing.T) {
	inputs := &domain.UserInputs{
		Age:           40,
		RetirementAge: 45,
		Assets: []domain.Asset{
			domain.NewAsset("Savings Account", domain.AssetTypePostTax,
				decimal.NewFromInt(10000), decimal.NewFromInt(1000), decimal.Zero),
		},
	}

	text, err := ExplainProjection(inputs)
	require.NoError(t, err)
	assert.Contains(t, text, "Zero growth rate, so FV = P + C x t")
	assert.Contains(t, text, FormatCurrency(decimal.NewFromInt(15000)))
}

func TestExplainProjectionSynthesizesDefaultAsset(t *testing.T) {
	inputs := &domain.UserInputs{
		Age:                   30,
		RetirementAge:         60,
		AnnualIncome:          decimal.NewFromInt(100000),
		ContributionRatePct:   decimal.NewFromInt(10),
		ExpectedGrowthRatePct: decimal.NewFromInt(7),
	}

	text, err := ExplainProjection(inputs)
	require.NoError(t, err)
	assert.Contains(t, text, calculation.DefaultAssetName)
	assert.Nil(t, inputs.Assets, "explanation must not mutate the inputs")
}

func TestExplainProjectionInvalidAges(t *testing.T) {
	inputs := &domain.UserInputs{Age: 70, RetirementAge: 65}
	_, err := ExplainProjection(inputs)
	assert.ErrorIs(t, err, calculation.ErrRetirementBeforeAge)
}
