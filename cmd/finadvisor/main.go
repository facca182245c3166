package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/finadvisor/retirement-engine/internal/calculation"
	"github.com/finadvisor/retirement-engine/internal/config"
	"github.com/finadvisor/retirement-engine/internal/domain"
	"github.com/finadvisor/retirement-engine/internal/output"
)

var (
	inputFile string
	csvFile   string
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finadvisor",
		Short: "Multi-asset retirement projection and tax-application engine",
		Long: `finadvisor projects retirement balances across accounts with distinct
tax treatments, applies per-account tax rules, and reports the aggregate
after-tax outcome with a tax-efficiency metric.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "scenario YAML file")
	rootCmd.PersistentFlags().StringVar(&csvFile, "csv", "", "optional CSV of assets, replacing the scenario asset list")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newProjectCmd(), newExplainCmd(), newMonteCarloCmd(), newTaxRateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// engineLogger adapts logrus to the engine's Logger interface.
type engineLogger struct{ log *logrus.Logger }

func (l engineLogger) Debugf(format string, args ...any) { l.log.Debugf(format, args...) }
func (l engineLogger) Infof(format string, args ...any)  { l.log.Infof(format, args...) }
func (l engineLogger) Warnf(format string, args ...any)  { l.log.Warnf(format, args...) }
func (l engineLogger) Errorf(format string, args ...any) { l.log.Errorf(format, args...) }

func newLogger() calculation.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return engineLogger{log: log}
}

// loadInputs reads the scenario file and, when --csv is given, swaps in the
// imported asset list before projection.
func loadInputs() (*domain.UserInputs, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("--input is required")
	}
	parser := config.NewInputParser()
	inputs, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return nil, err
	}

	if csvFile != "" {
		f, err := os.Open(csvFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()

		assets, err := parser.LoadAssetsFromCSV(f)
		if err != nil {
			return nil, err
		}
		inputs.Assets = assets
	}
	return inputs, nil
}

func newProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Run a deterministic retirement projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := loadInputs()
			if err != nil {
				return err
			}

			projector := calculation.NewProjector()
			projector.Logger = newLogger()

			result, err := projector.Project(inputs)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), output.ConsoleFormatter{}.FormatProjection(result))
			return nil
		},
	}
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain",
		Short: "Show the step-by-step derivation of the projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := loadInputs()
			if err != nil {
				return err
			}
			text, err := output.ExplainProjection(inputs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newMonteCarloCmd() *cobra.Command {
	var (
		simulations int
		volatility  float64
		seed        int64
		incomeGoal  float64
	)

	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Run a Monte Carlo simulation over the scenario's assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := loadInputs()
			if err != nil {
				return err
			}

			cfg := calculation.MonteCarloConfig{
				NumSimulations: simulations,
				VolatilityPct:  decimal.NewFromFloat(volatility),
				Seed:           seed,
			}
			simulator := calculation.NewMonteCarloSimulator(cfg)
			simulator.Logger = newLogger()

			result, err := simulator.RunSimulation(inputs)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), output.ConsoleFormatter{}.FormatMonteCarlo(result))

			if incomeGoal > 0 {
				probability := calculation.ProbabilityOfGoal(
					result.Outcomes, inputs.RetirementAge, inputs.LifeExpectancy,
					decimal.NewFromFloat(incomeGoal),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "Probability of funding %s/year: %s\n",
					output.FormatCurrency(decimal.NewFromFloat(incomeGoal)),
					output.FormatPercentage(probability.Round(2)))
			}

			lower, upper, err := calculation.ConfidenceInterval(result.Outcomes, 0.95)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "95%% confidence interval: %s .. %s\n",
				output.FormatCurrency(lower.Round(2)), output.FormatCurrency(upper.Round(2)))
			return nil
		},
	}

	cmd.Flags().IntVar(&simulations, "simulations", 1000, "number of trials")
	cmd.Flags().Float64Var(&volatility, "volatility", 15.0, "standard deviation of growth rates, in percent")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = non-deterministic)")
	cmd.Flags().Float64Var(&incomeGoal, "goal", 0, "desired annual retirement income for the success probability")
	return cmd
}

func newTaxRateCmd() *cobra.Command {
	var income float64

	cmd := &cobra.Command{
		Use:   "taxrate",
		Short: "Look up the 2024 single-filer marginal tax rate for an income",
		RunE: func(cmd *cobra.Command, args []string) error {
			rate := calculation.ProjectTaxRate(decimal.NewFromFloat(income), calculation.IRSTaxBrackets2024())
			fmt.Fprintf(cmd.OutOrStdout(), "Marginal rate at %s: %s\n",
				output.FormatCurrency(decimal.NewFromFloat(income)), output.FormatPercentage(rate))
			return nil
		},
	}

	cmd.Flags().Float64Var(&income, "income", 0, "annual income")
	return cmd
}
