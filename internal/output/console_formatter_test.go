package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finadvisor/retirement-engine/internal/calculation"
	"github.com/finadvisor/retirement-engine/internal/domain"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "$-12.34", FormatCurrency(decimal.NewFromFloat(-12.34)))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "22.00%", FormatPercentage(decimal.NewFromInt(22)))
	assert.Equal(t, "7.50%", FormatPercentage(decimal.NewFromFloat(7.5)))
}

func TestFormatProjection(t *testing.T) {
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

	text := ConsoleFormatter{}.FormatProjection(result)

	assert.Contains(t, text, "RETIREMENT PROJECTION SUMMARY")
	assert.Contains(t, text, "Years Until Retirement: 1")
	assert.Contains(t, text, "Total Future Value (Pre-Tax): $11000.00")
	assert.Contains(t, text, "Total After-Tax Balance: $8250.00")
	assert.Contains(t, text, "Number of Assets: 1")
	assert.Contains(t, text, "1. 401(k) [pre_tax]")
}

func TestFormatMonteCarlo(t *testing.T) {
	inputs := &domain.UserInputs{
		Age:                          35,
		RetirementAge:                65,
		RetirementMarginalTaxRatePct: decimal.NewFromInt(22),
		Assets: []domain.Asset{
			domain.NewAsset("401(k)", domain.AssetTypePreTax,
				decimal.NewFromInt(50000), decimal.NewFromInt(10000), decimal.NewFromFloat(7.0)),
		},
	}

	cfg := calculation.MonteCarloConfig{NumSimulations: 100, VolatilityPct: decimal.NewFromFloat(15.0), Seed: 3}
	result, err := calculation.NewMonteCarloSimulator(cfg).RunSimulation(inputs)
	require.NoError(t, err)

	text := ConsoleFormatter{}.FormatMonteCarlo(result)

	assert.Contains(t, text, "MONTE CARLO SIMULATION SUMMARY")
	assert.Contains(t, text, "Simulations: 100 (volatility 15.00%)")
	assert.Contains(t, text, "Mean Outcome: $")
	assert.Contains(t, text, "P10=$")
	assert.Contains(t, text, "P90=$")
}

func TestConsoleFormatterName(t *testing.T) {
	assert.Equal(t, "console", ConsoleFormatter{}.Name())
}
