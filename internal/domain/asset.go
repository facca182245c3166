package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AssetType classifies an account by its tax treatment. The set is closed;
// the tax engine rejects anything else.
type AssetType string

const (
	AssetTypePreTax      AssetType = "pre_tax"      // 401(k), Traditional IRA
	AssetTypePostTax     AssetType = "post_tax"     // Roth IRA, brokerage, savings
	AssetTypeTaxDeferred AssetType = "tax_deferred" // HSA, annuities
)

// Valid reports whether the asset type is one of the closed enumeration.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypePreTax, AssetTypePostTax, AssetTypeTaxDeferred:
		return true
	}
	return false
}

// TaxSubtype refines the tax treatment within an AssetType. Historically the
// engine dispatched on case-sensitive name substrings ("Roth", "HSA"); the
// subtype makes that dispatch explicit while InferTaxSubtype preserves the
// old behavior for assets that never set one.
type TaxSubtype string

const (
	TaxSubtypeStandard     TaxSubtype = "standard"      // ordinary-income treatment
	TaxSubtypeRoth         TaxSubtype = "roth"          // tax-free withdrawal
	TaxSubtypeCapitalGains TaxSubtype = "capital_gains" // gains-only taxation (brokerage)
	TaxSubtypeHSA          TaxSubtype = "hsa"           // half medical (tax-free), half ordinary
	TaxSubtypeAnnuity      TaxSubtype = "annuity"       // ordinary-income treatment
)

// DefaultCapitalGainsRatePct is applied at construction to post-tax assets
// that do not carry an explicit capital-gains rate.
var DefaultCapitalGainsRatePct = decimal.NewFromFloat(15.0)

// Asset represents one financial account with a specific tax treatment.
// Assets are immutable for the duration of a projection run.
type Asset struct {
	Name               string          `yaml:"name" json:"name"`
	Type               AssetType       `yaml:"type" json:"type"`
	Subtype            TaxSubtype      `yaml:"tax_subtype,omitempty" json:"tax_subtype,omitempty"`
	CurrentBalance     decimal.Decimal `yaml:"current_balance" json:"current_balance"`
	AnnualContribution decimal.Decimal `yaml:"annual_contribution" json:"annual_contribution"`
	GrowthRatePct      decimal.Decimal `yaml:"growth_rate_pct" json:"growth_rate_pct"`

	// TaxRatePct is the capital-gains rate, consulted only for post-tax
	// assets outside the Roth subtype.
	TaxRatePct decimal.Decimal `yaml:"tax_rate_pct,omitempty" json:"tax_rate_pct,omitempty"`
}

// NewAsset creates an Asset and applies construction-time defaults: the
// capital-gains rate for post-tax assets and the inferred tax subtype.
func NewAsset(name string, assetType AssetType, balance, contribution, growthRatePct decimal.Decimal) Asset {
	a := Asset{
		Name:               name,
		Type:               assetType,
		CurrentBalance:     balance,
		AnnualContribution: contribution,
		GrowthRatePct:      growthRatePct,
	}
	a.Normalize()
	return a
}

// Normalize applies the construction-time defaults in place. Loaders that
// build assets directly from YAML or CSV call this before handing assets to
// the engine.
func (a *Asset) Normalize() {
	if a.Type == AssetTypePostTax && a.TaxRatePct.IsZero() {
		a.TaxRatePct = DefaultCapitalGainsRatePct
	}
	if a.Subtype == "" {
		a.Subtype = InferTaxSubtype(a.Name, a.Type)
	}
}

// EffectiveSubtype returns the explicit subtype, falling back to name-based
// inference for assets constructed without one.
func (a Asset) EffectiveSubtype() TaxSubtype {
	if a.Subtype != "" {
		return a.Subtype
	}
	return InferTaxSubtype(a.Name, a.Type)
}

// InferTaxSubtype derives a tax subtype from the account name, matching the
// legacy case-sensitive substring rules exactly: a post-tax account is Roth
// only if its name contains "Roth", and a tax-deferred account is an HSA only
// if its name contains "HSA". An account named "Roth-adjacent Fund" without
// the literal substring is taxed as a brokerage account; set Subtype
// explicitly to override.
func InferTaxSubtype(name string, assetType AssetType) TaxSubtype {
	switch assetType {
	case AssetTypePreTax:
		return TaxSubtypeStandard
	case AssetTypePostTax:
		if strings.Contains(name, "Roth") {
			return TaxSubtypeRoth
		}
		return TaxSubtypeCapitalGains
	case AssetTypeTaxDeferred:
		if strings.Contains(name, "HSA") {
			return TaxSubtypeHSA
		}
		return TaxSubtypeAnnuity
	}
	return TaxSubtypeStandard
}

// AssetTemplate maps a well-known account name to its asset type. The table
// backs the legacy asset_types construction path.
type AssetTemplate struct {
	Name string
	Type AssetType
}

// DefaultAssetTemplates lists the account templates offered to callers that
// select accounts by name rather than supplying full Asset definitions.
var DefaultAssetTemplates = []AssetTemplate{
	{"401(k) / Traditional IRA", AssetTypePreTax},
	{"Roth IRA", AssetTypePostTax},
	{"Brokerage Account", AssetTypePostTax},
	{"HSA (Health Savings Account)", AssetTypeTaxDeferred},
	{"Annuity", AssetTypeTaxDeferred},
	{"Savings Account", AssetTypePostTax},
}

// TemplateAssetType resolves an account name against DefaultAssetTemplates,
// defaulting to post-tax for unknown names.
func TemplateAssetType(name string) AssetType {
	for _, tpl := range DefaultAssetTemplates {
		if tpl.Name == name {
			return tpl.Type
		}
	}
	return AssetTypePostTax
}
