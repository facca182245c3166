package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finadvisor/retirement-engine/internal/domain"
)

// DefaultAssetName names the asset synthesized when a projection request
// carries no assets at all (the legacy single-balance path).
const DefaultAssetName = "401(k) / Traditional IRA (Pre-Tax)"

// Projector orchestrates the calculator and the tax engine across a
// collection of assets. It never mutates its inputs; the asset list a
// projection actually ran over is returned under domain.KeyAssetsInput.
type Projector struct {
	Logger Logger
}

// NewProjector creates a projector with a no-op logger.
func NewProjector() *Projector {
	return &Projector{Logger: NopLogger{}}
}

// EffectiveAssets returns the asset list a projection runs over without
// mutating the caller's inputs. An empty list synthesizes a single pre-tax
// default asset whose balance folds this year's contribution into the
// principal; that fold is a deliberate backward-compatibility quirk, so the
// synthesized asset contributes nothing in future years.
func EffectiveAssets(inputs *domain.UserInputs) []domain.Asset {
	if len(inputs.Assets) > 0 {
		return inputs.Assets
	}
	yearContribution := inputs.AnnualIncome.Mul(inputs.ContributionRatePct).Div(decimal.NewFromInt(100))
	return []domain.Asset{domain.NewAsset(
		DefaultAssetName,
		domain.AssetTypePreTax,
		inputs.CurrentBalance().Add(yearContribution),
		decimal.Zero,
		inputs.ExpectedGrowthRatePct,
	)}
}

// Project runs a deterministic projection over all assets and aggregates the
// outcome. Totals in the result map are rounded to 2 decimals at insertion;
// the breakdown under domain.KeyAssetResults is unrounded. Calculator and
// tax-engine failures propagate unhandled; validate inputs before calling.
func (p *Projector) Project(inputs *domain.UserInputs) (domain.ProjectionResult, error) {
	years, err := YearsToRetirement(inputs.Age, inputs.RetirementAge)
	if err != nil {
		return nil, err
	}

	assets := EffectiveAssets(inputs)
	p.Logger.Debugf("projecting %d assets over %d years", len(assets), years)

	assetResults := make([]domain.AssetProjection, 0, len(assets))
	totalPreTax := decimal.Zero
	totalAfterTax := decimal.Zero
	totalLiability := decimal.Zero

	for _, asset := range assets {
		futureValue, totalContributions, err := CalculateAssetGrowth(asset, years)
		if err != nil {
			return nil, err
		}
		afterTax, liability, err := ApplyTaxLogic(asset, futureValue, totalContributions, inputs.RetirementMarginalTaxRatePct)
		if err != nil {
			return nil, err
		}

		assetResults = append(assetResults, domain.AssetProjection{
			Name:               asset.Name,
			Type:               asset.Type,
			PreTaxValue:        futureValue,
			AfterTaxValue:      afterTax,
			TaxLiability:       liability,
			TotalContributions: totalContributions,
		})

		totalPreTax = totalPreTax.Add(futureValue)
		totalAfterTax = totalAfterTax.Add(afterTax)
		totalLiability = totalLiability.Add(liability)
	}

	taxEfficiency := decimal.Zero
	if !totalPreTax.IsZero() {
		taxEfficiency = totalAfterTax.Div(totalPreTax).Mul(decimal.NewFromInt(100))
	}

	result := domain.ProjectionResult{
		domain.KeyYearsUntilRetirement:   years,
		domain.KeyTotalFutureValuePreTax: totalPreTax.Round(2),
		domain.KeyTotalAfterTaxBalance:   totalAfterTax.Round(2),
		domain.KeyTotalTaxLiability:      totalLiability.Round(2),
		domain.KeyTaxEfficiencyPct:       taxEfficiency.Round(2),
		domain.KeyNumberOfAssets:         len(assets),
		domain.KeyAssetResults:           assetResults,
		domain.KeyAssetsInput:            assets,
	}

	// Aliases expected by older callers.
	result[domain.KeyFutureValuePreTax] = result[domain.KeyTotalFutureValuePreTax]
	result[domain.KeyEstimatedPostTaxBalance] = result[domain.KeyTotalAfterTaxBalance]

	// Flattened per-asset entries for display code that iterates a flat map.
	for i, ar := range assetResults {
		result[domain.AssetPreTaxKey(i+1, ar.Name)] = ar.PreTaxValue.Round(2)
		result[domain.AssetAfterTaxKey(i+1, ar.Name)] = ar.AfterTaxValue.Round(2)
	}

	return result, nil
}
