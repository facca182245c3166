package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finadvisor/retirement-engine/internal/domain"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFileModernScenario(t *testing.T) {
	path := writeScenario(t, `
age: 35
retirement_age: 65
life_expectancy: 90
annual_income: 120000
contribution_rate_pct: 12
retirement_marginal_tax_rate_pct: 22
assets:
  - name: "401(k) - Employer"
    type: pre_tax
    current_balance: 85000
    annual_contribution: 19500
    growth_rate_pct: 7.0
  - name: "Roth IRA"
    type: post_tax
    current_balance: 30000
    annual_contribution: 7000
    growth_rate_pct: 7.0
  - name: "Brokerage Account"
    type: post_tax
    current_balance: 15000
    annual_contribution: 3000
    growth_rate_pct: 6.5
`)

	inputs, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 35, inputs.Age)
	assert.Equal(t, 65, inputs.RetirementAge)
	assert.True(t, inputs.RetirementMarginalTaxRatePct.Equal(decimal.NewFromInt(22)))
	require.Len(t, inputs.Assets, 3)

	// Loader normalization: Roth subtype inferred, brokerage gets the 15%
	// capital-gains default.
	assert.Equal(t, domain.TaxSubtypeRoth, inputs.Assets[1].Subtype)
	assert.True(t, inputs.Assets[2].TaxRatePct.Equal(domain.DefaultCapitalGainsRatePct))
	assert.True(t, inputs.CurrentBalance().Equal(decimal.NewFromInt(130000)))
}

func TestLoadFromFileLegacyScenario(t *testing.T) {
	path := writeScenario(t, `
age: 40
retirement_age: 62
annual_income: 90000
contribution_rate_pct: 10
current_balance: 150000
tax_rate_pct: 24
asset_types:
  - "401(k) / Traditional IRA"
`)

	inputs, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	// The blended legacy rate covers both phases and the lone template asset
	// receives the legacy balance.
	assert.True(t, inputs.CurrentMarginalTaxRatePct.Equal(decimal.NewFromInt(24)))
	assert.True(t, inputs.RetirementMarginalTaxRatePct.Equal(decimal.NewFromInt(24)))
	require.Len(t, inputs.Assets, 1)
	assert.True(t, inputs.Assets[0].CurrentBalance.Equal(decimal.NewFromInt(150000)))
	assert.Equal(t, domain.AssetTypePreTax, inputs.Assets[0].Type)
	assert.Equal(t, domain.DefaultLifeExpectancy, inputs.LifeExpectancy)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileMalformedYAML(t *testing.T) {
	path := writeScenario(t, "age: [not a number\n")
	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidateScenario(t *testing.T) {
	valid := func() *ScenarioFile {
		return &ScenarioFile{
			Age:                 30,
			RetirementAge:       65,
			AnnualIncome:        decimal.NewFromInt(100000),
			ContributionRatePct: decimal.NewFromInt(10),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*ScenarioFile)
		wantErr string
	}{
		{name: "Valid scenario", mutate: func(s *ScenarioFile) {}},
		{name: "Zero age", mutate: func(s *ScenarioFile) { s.Age = 0 }, wantErr: "age must be positive"},
		{name: "Retirement before age", mutate: func(s *ScenarioFile) { s.RetirementAge = 25 }, wantErr: "retirement age"},
		{name: "Life expectancy before retirement", mutate: func(s *ScenarioFile) { s.LifeExpectancy = 60 }, wantErr: "life expectancy"},
		{name: "Negative income", mutate: func(s *ScenarioFile) { s.AnnualIncome = decimal.NewFromInt(-1) }, wantErr: "annual income"},
		{name: "Contribution rate too high", mutate: func(s *ScenarioFile) { s.ContributionRatePct = decimal.NewFromInt(51) }, wantErr: "contribution rate"},
		{
			name: "Negative legacy balance",
			mutate: func(s *ScenarioFile) {
				negative := decimal.NewFromInt(-5)
				s.CurrentBalance = &negative
			},
			wantErr: "current balance",
		},
		{
			name: "Asset with bad type",
			mutate: func(s *ScenarioFile) {
				s.Assets = []domain.Asset{{Name: "Fund", Type: domain.AssetType("bogus")}}
			},
			wantErr: "asset type",
		},
		{
			name: "Asset without name",
			mutate: func(s *ScenarioFile) {
				s.Assets = []domain.Asset{{Type: domain.AssetTypePreTax}}
			},
			wantErr: "asset name",
		},
		{
			name: "Asset growth rate out of range",
			mutate: func(s *ScenarioFile) {
				s.Assets = []domain.Asset{{
					Name: "Fund", Type: domain.AssetTypePreTax,
					GrowthRatePct: decimal.NewFromInt(75),
				}}
			},
			wantErr: "growth rate",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := valid()
			tt.mutate(scenario)
			err := parser.ValidateScenario(scenario)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBuildInputsDoesNotMutateScenarioAssets(t *testing.T) {
	scenario := &ScenarioFile{
		Age:           30,
		RetirementAge: 65,
		Assets: []domain.Asset{
			{Name: "Brokerage Account", Type: domain.AssetTypePostTax},
		},
	}

	inputs, err := NewInputParser().BuildInputs(scenario)
	require.NoError(t, err)

	// Normalization happens on a copy; the caller's scenario stays raw.
	assert.True(t, scenario.Assets[0].TaxRatePct.IsZero())
	assert.True(t, inputs.Assets[0].TaxRatePct.Equal(domain.DefaultCapitalGainsRatePct))
}
