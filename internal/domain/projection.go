package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Result-map keys. Display and report layers read these exact strings, so
// they form an interchange contract and must not change.
const (
	KeyYearsUntilRetirement   = "Years Until Retirement"
	KeyTotalFutureValuePreTax = "Total Future Value (Pre-Tax)"
	KeyTotalAfterTaxBalance   = "Total After-Tax Balance"
	KeyTotalTaxLiability      = "Total Tax Liability"
	KeyTaxEfficiencyPct       = "Tax Efficiency (%)"
	KeyNumberOfAssets         = "Number of Assets"
	KeyAssetResults           = "asset_results"
	KeyAssetsInput            = "assets_input"

	// Aliases expected by older callers.
	KeyFutureValuePreTax       = "Future Value (Pre-Tax)"
	KeyEstimatedPostTaxBalance = "Estimated Post-Tax Balance"
)

// AssetPreTaxKey returns the flattened per-asset key for the rounded pre-tax
// value, using the 1-based asset index.
func AssetPreTaxKey(index int, name string) string {
	return fmt.Sprintf("Asset %d - %s (Pre-Tax)", index, name)
}

// AssetAfterTaxKey returns the flattened per-asset key for the rounded
// after-tax value.
func AssetAfterTaxKey(index int, name string) string {
	return fmt.Sprintf("Asset %d - %s (After-Tax)", index, name)
}

// ProjectionResult is the projection output mapping. Monetary and percentage
// totals are stored rounded to 2 decimals; the AssetProjection breakdown
// under KeyAssetResults keeps unrounded values.
type ProjectionResult map[string]any

// AssetProjection is the structured per-asset breakdown. Values are
// unrounded; consumers round at display time.
type AssetProjection struct {
	Name               string          `json:"name"`
	Type               AssetType       `json:"type"`
	PreTaxValue        decimal.Decimal `json:"pre_tax_value"`
	AfterTaxValue      decimal.Decimal `json:"after_tax_value"`
	TaxLiability       decimal.Decimal `json:"tax_liability"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
}

// AssetResults extracts the structured breakdown from a result mapping.
func (pr ProjectionResult) AssetResults() []AssetProjection {
	results, _ := pr[KeyAssetResults].([]AssetProjection)
	return results
}

// AssetsInput extracts the (possibly synthesized) asset list the projection
// actually ran over.
func (pr ProjectionResult) AssetsInput() []Asset {
	assets, _ := pr[KeyAssetsInput].([]Asset)
	return assets
}
