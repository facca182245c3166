package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finadvisor/retirement-engine/internal/domain"
)

// CSV column headers for asset imports. Tax Rate (%) is optional.
const (
	csvColName         = "Account Name"
	csvColType         = "Asset Type"
	csvColBalance      = "Current Balance"
	csvColContribution = "Annual Contribution"
	csvColGrowthRate   = "Growth Rate (%)"
	csvColTaxRate      = "Tax Rate (%)"
)

// LoadAssetsFromCSV parses account rows exported from statement uploads.
// Numeric fields tolerate thousands-separator commas ("1,250,000.50");
// growth and tax rates are range-validated to [0, 50]. Returned assets are
// normalized (capital-gains default, inferred subtype).
func (ip *InputParser) LoadAssetsFromCSV(r io.Reader) ([]domain.Asset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var assets []domain.Asset
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", row, err)
		}

		asset, err := parseAssetRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// columnIndex maps required and optional columns to their positions.
type columnIndex struct {
	name, assetType, balance, contribution, growthRate int
	taxRate                                            int // -1 when absent
}

func mapColumns(header []string) (columnIndex, error) {
	idx := columnIndex{name: -1, assetType: -1, balance: -1, contribution: -1, growthRate: -1, taxRate: -1}
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case csvColName:
			idx.name = i
		case csvColType:
			idx.assetType = i
		case csvColBalance:
			idx.balance = i
		case csvColContribution:
			idx.contribution = i
		case csvColGrowthRate:
			idx.growthRate = i
		case csvColTaxRate:
			idx.taxRate = i
		}
	}
	for col, pos := range map[string]int{
		csvColName:         idx.name,
		csvColType:         idx.assetType,
		csvColBalance:      idx.balance,
		csvColContribution: idx.contribution,
		csvColGrowthRate:   idx.growthRate,
	} {
		if pos < 0 {
			return idx, fmt.Errorf("missing required CSV column %q", col)
		}
	}
	return idx, nil
}

func parseAssetRow(record []string, cols columnIndex) (domain.Asset, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field(cols.name)
	if name == "" {
		return domain.Asset{}, fmt.Errorf("account name is required")
	}

	assetType := domain.AssetType(field(cols.assetType))
	if !assetType.Valid() {
		return domain.Asset{}, fmt.Errorf("asset type must be one of pre_tax, post_tax, tax_deferred; got %q", assetType)
	}

	balance, err := parseAmount(field(cols.balance))
	if err != nil {
		return domain.Asset{}, fmt.Errorf("invalid current balance: %w", err)
	}
	if balance.LessThan(decimal.Zero) {
		return domain.Asset{}, fmt.Errorf("current balance cannot be negative")
	}

	contribution, err := parseAmount(field(cols.contribution))
	if err != nil {
		return domain.Asset{}, fmt.Errorf("invalid annual contribution: %w", err)
	}
	if contribution.LessThan(decimal.Zero) {
		return domain.Asset{}, fmt.Errorf("annual contribution cannot be negative")
	}

	growthRate, err := parseAmount(field(cols.growthRate))
	if err != nil {
		return domain.Asset{}, fmt.Errorf("invalid growth rate: %w", err)
	}
	if err := validateRatePct("growth rate", growthRate); err != nil {
		return domain.Asset{}, err
	}

	asset := domain.Asset{
		Name:               name,
		Type:               assetType,
		CurrentBalance:     balance,
		AnnualContribution: contribution,
		GrowthRatePct:      growthRate,
	}

	if raw := field(cols.taxRate); raw != "" {
		taxRate, err := parseAmount(raw)
		if err != nil {
			return domain.Asset{}, fmt.Errorf("invalid tax rate: %w", err)
		}
		if err := validateRatePct("tax rate", taxRate); err != nil {
			return domain.Asset{}, err
		}
		asset.TaxRatePct = taxRate
	}

	asset.Normalize()
	return asset, nil
}

// parseAmount parses a numeric field, stripping thousands-separator commas
// and a leading dollar sign.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cleaned)
}
