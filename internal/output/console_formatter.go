package output

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finadvisor/retirement-engine/internal/calculation"
	"github.com/finadvisor/retirement-engine/internal/domain"
)

// ConsoleFormatter renders projection and simulation results as concise
// console text.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

// FormatProjection renders the result mapping, reading the fixed keys the
// projector guarantees.
func (c ConsoleFormatter) FormatProjection(result domain.ProjectionResult) string {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Years Until Retirement: %d\n", result[domain.KeyYearsUntilRetirement])
	fmt.Fprintf(&buf, "Total Future Value (Pre-Tax): %s\n", FormatCurrency(asDecimal(result[domain.KeyTotalFutureValuePreTax])))
	fmt.Fprintf(&buf, "Total After-Tax Balance: %s\n", FormatCurrency(asDecimal(result[domain.KeyTotalAfterTaxBalance])))
	fmt.Fprintf(&buf, "Total Tax Liability: %s\n", FormatCurrency(asDecimal(result[domain.KeyTotalTaxLiability])))
	fmt.Fprintf(&buf, "Tax Efficiency: %s\n", FormatPercentage(asDecimal(result[domain.KeyTaxEfficiencyPct])))
	fmt.Fprintf(&buf, "Number of Assets: %d\n", result[domain.KeyNumberOfAssets])
	fmt.Fprintln(&buf)

	for i, ar := range result.AssetResults() {
		fmt.Fprintf(&buf, "%d. %s [%s]\n", i+1, ar.Name, ar.Type)
		fmt.Fprintf(&buf, "   Pre-Tax=%s AfterTax=%s Tax=%s Contributed=%s\n",
			FormatCurrency(ar.PreTaxValue.Round(2)),
			FormatCurrency(ar.AfterTaxValue.Round(2)),
			FormatCurrency(ar.TaxLiability.Round(2)),
			FormatCurrency(ar.TotalContributions.Round(2)),
		)
	}
	return buf.String()
}

// FormatMonteCarlo renders simulation statistics.
func (c ConsoleFormatter) FormatMonteCarlo(result *calculation.MonteCarloResult) string {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "MONTE CARLO SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Simulations: %d (volatility %s)\n", result.NumSimulations, FormatPercentage(result.VolatilityPct))
	fmt.Fprintf(&buf, "Mean Outcome: %s\n", FormatCurrency(result.Mean.Round(2)))
	fmt.Fprintf(&buf, "Std Dev: %s\n", FormatCurrency(result.StdDev.Round(2)))
	fmt.Fprintf(&buf, "Range: %s .. %s\n", FormatCurrency(result.Min.Round(2)), FormatCurrency(result.Max.Round(2)))
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "P10=%s P25=%s P50=%s P75=%s P90=%s\n",
		FormatCurrency(result.Percentiles.P10.Round(2)),
		FormatCurrency(result.Percentiles.P25.Round(2)),
		FormatCurrency(result.Percentiles.P50.Round(2)),
		FormatCurrency(result.Percentiles.P75.Round(2)),
		FormatCurrency(result.Percentiles.P90.Round(2)),
	)
	return buf.String()
}

func asDecimal(v any) decimal.Decimal {
	d, _ := v.(decimal.Decimal)
	return d
}
