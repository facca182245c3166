package calculation

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finadvisor/retirement-engine/internal/domain"
)

// Simulated growth rates are clamped to this band, in percent.
var (
	minSimulatedRatePct = -50.0
	maxSimulatedRatePct = 100.0
)

// MonteCarloConfig holds simulation parameters. A zero Seed derives one from
// the clock (non-reproducible); any other seed makes repeated runs
// byte-identical.
type MonteCarloConfig struct {
	NumSimulations int
	VolatilityPct  decimal.Decimal
	Seed           int64
}

// DefaultMonteCarloConfig returns 1000 simulations at 15% volatility with a
// clock-derived seed.
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		NumSimulations: 1000,
		VolatilityPct:  decimal.NewFromFloat(15.0),
	}
}

// MonteCarloSimulator perturbs each asset's growth rate with normal draws and
// re-runs the deterministic per-asset pipeline. The random source is owned by
// the simulator, never the global one, so simulations stay composable and
// reproducible.
type MonteCarloSimulator struct {
	Config MonteCarloConfig
	Logger Logger

	rng *rand.Rand
}

// NewMonteCarloSimulator creates a simulator from the given configuration.
func NewMonteCarloSimulator(config MonteCarloConfig) *MonteCarloSimulator {
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}
	return &MonteCarloSimulator{
		Config: config,
		Logger: NopLogger{},
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// PercentileRanges holds the nearest-rank percentiles of the outcome
// distribution.
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// MonteCarloResult aggregates the per-trial after-tax outcomes.
type MonteCarloResult struct {
	Outcomes       []decimal.Decimal `json:"outcomes"`
	Percentiles    PercentileRanges  `json:"percentiles"`
	Mean           decimal.Decimal   `json:"mean"`
	StdDev         decimal.Decimal   `json:"std_dev"`
	Min            decimal.Decimal   `json:"min"`
	Max            decimal.Decimal   `json:"max"`
	NumSimulations int               `json:"num_simulations"`
	VolatilityPct  decimal.Decimal   `json:"volatility_pct"`
}

// RunSimulation executes the configured number of trials. Each trial draws a
// growth rate per asset from a normal distribution centered on that asset's
// own expected rate with the configured volatility as standard deviation,
// clamps it to [-50, 100] percent, and reuses the deterministic
// growth-then-tax pipeline. Years to retirement and the retirement marginal
// rate are fixed across trials.
func (mcs *MonteCarloSimulator) RunSimulation(inputs *domain.UserInputs) (*MonteCarloResult, error) {
	if mcs.Config.NumSimulations < 1 {
		return nil, fmt.Errorf("number of simulations must be >= 1, got %d", mcs.Config.NumSimulations)
	}

	years, err := YearsToRetirement(inputs.Age, inputs.RetirementAge)
	if err != nil {
		return nil, err
	}

	volatility := mcs.Config.VolatilityPct.InexactFloat64()
	outcomes := make([]decimal.Decimal, 0, mcs.Config.NumSimulations)

	for trial := 0; trial < mcs.Config.NumSimulations; trial++ {
		totalAfterTax := decimal.Zero

		for _, asset := range inputs.Assets {
			simulatedRate := mcs.drawGrowthRate(asset.GrowthRatePct.InexactFloat64(), volatility)

			futureValue, err := FutureValueWithContrib(asset.CurrentBalance, asset.AnnualContribution, simulatedRate, years)
			if err != nil {
				return nil, fmt.Errorf("asset %q: %w", asset.Name, err)
			}
			totalContributions := asset.AnnualContribution.Mul(decimal.NewFromInt(int64(years)))

			afterTax, _, err := ApplyTaxLogic(asset, futureValue, totalContributions, inputs.RetirementMarginalTaxRatePct)
			if err != nil {
				return nil, err
			}
			totalAfterTax = totalAfterTax.Add(afterTax)
		}

		outcomes = append(outcomes, totalAfterTax)
	}

	sorted := sortedCopy(outcomes)
	result := &MonteCarloResult{
		Outcomes:       outcomes,
		Percentiles:    percentileRanges(sorted),
		Mean:           meanOf(outcomes),
		StdDev:         sampleStdDev(outcomes),
		Min:            sorted[0],
		Max:            sorted[len(sorted)-1],
		NumSimulations: mcs.Config.NumSimulations,
		VolatilityPct:  mcs.Config.VolatilityPct,
	}
	mcs.Logger.Debugf("monte carlo: %d trials, median %s", result.NumSimulations, result.Percentiles.P50)
	return result, nil
}

// drawGrowthRate samples a growth rate (in percent) around the asset's
// expected rate, clamped to the allowed band.
func (mcs *MonteCarloSimulator) drawGrowthRate(meanPct, volatilityPct float64) decimal.Decimal {
	rate := meanPct + mcs.rng.NormFloat64()*volatilityPct
	rate = math.Max(minSimulatedRatePct, math.Min(maxSimulatedRatePct, rate))
	return decimal.NewFromFloat(rate)
}

// ProbabilityOfGoal returns the percentage of trial outcomes able to fund
// annualIncomeGoal for every year between retirement and life expectancy.
// With no goal set (goal <= 0) the probability is 100%; with no retirement
// horizon it is 0%.
func ProbabilityOfGoal(outcomes []decimal.Decimal, retirementAge, lifeExpectancy int, annualIncomeGoal decimal.Decimal) decimal.Decimal {
	if annualIncomeGoal.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(100)
	}
	yearsInRetirement := lifeExpectancy - retirementAge
	if yearsInRetirement <= 0 || len(outcomes) == 0 {
		return decimal.Zero
	}

	totalNeeded := annualIncomeGoal.Mul(decimal.NewFromInt(int64(yearsInRetirement)))
	successful := 0
	for _, outcome := range outcomes {
		if outcome.GreaterThanOrEqual(totalNeeded) {
			successful++
		}
	}
	return decimal.NewFromInt(int64(successful)).
		Div(decimal.NewFromInt(int64(len(outcomes)))).
		Mul(decimal.NewFromInt(100))
}

// ConfidenceInterval returns the outcome values at the nearest-rank bounds of
// the given confidence level (0.95 by convention). No interpolation, matching
// the percentile computation.
func ConfidenceInterval(outcomes []decimal.Decimal, confidence float64) (lower, upper decimal.Decimal, err error) {
	if len(outcomes) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("no outcomes to compute confidence interval over")
	}
	sorted := sortedCopy(outcomes)
	n := len(sorted)

	alpha := 1 - confidence
	lowerIdx := int(float64(n) * (alpha / 2))
	upperIdx := int(float64(n) * (1 - alpha/2))
	if upperIdx >= n {
		upperIdx = n - 1
	}
	return sorted[lowerIdx], sorted[upperIdx], nil
}

func sortedCopy(outcomes []decimal.Decimal) []decimal.Decimal {
	sorted := append([]decimal.Decimal(nil), outcomes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	return sorted
}

// percentileRanges picks nearest-rank percentiles from a sorted outcome list:
// index = floor(len * fraction), no interpolation.
func percentileRanges(sorted []decimal.Decimal) PercentileRanges {
	at := func(fraction float64) decimal.Decimal {
		idx := int(float64(len(sorted)) * fraction)
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		return sorted[idx]
	}
	return PercentileRanges{
		P10: at(0.10),
		P25: at(0.25),
		P50: at(0.50),
		P75: at(0.75),
		P90: at(0.90),
	}
}

func meanOf(outcomes []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range outcomes {
		sum = sum.Add(o)
	}
	return sum.Div(decimal.NewFromInt(int64(len(outcomes))))
}

// sampleStdDev computes the sample standard deviation in float64; the square
// root has no exact decimal form anyway.
func sampleStdDev(outcomes []decimal.Decimal) decimal.Decimal {
	if len(outcomes) < 2 {
		return decimal.Zero
	}
	mean := meanOf(outcomes).InexactFloat64()
	var sumSq float64
	for _, o := range outcomes {
		d := o.InexactFloat64() - mean
		sumSq += d * d
	}
	return decimal.NewFromFloat(math.Sqrt(sumSq / float64(len(outcomes)-1)))
}
