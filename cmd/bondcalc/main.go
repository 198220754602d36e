// bondcalc resolves bond identifiers/descriptions and prints yield and risk
// analytics, for a single bond or a portfolio file.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/bondlib/config"
	"github.com/meenmo/bondlib/curve"
	"github.com/meenmo/bondlib/pipeline"
	"github.com/meenmo/bondlib/portfolio"
	"github.com/meenmo/bondlib/refdata"
	"github.com/meenmo/bondlib/utils"
)

var (
	flagPrimary   string
	flagSecondary string
	flagCurves    string
	flagVerbose   bool
)

func main() {
	root := &cobra.Command{
		Use:           "bondcalc",
		Short:         "Bond identity resolution and yield/risk analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagPrimary, "primary", "", "primary reference store YAML")
	root.PersistentFlags().StringVar(&flagSecondary, "secondary", "", "secondary reference store YAML")
	root.PersistentFlags().StringVar(&flagCurves, "curves", "", "reference curves YAML")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	root.AddCommand(singleCmd(), portfolioCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bondcalc:", err)
		os.Exit(1)
	}
}

func newEngine() (*pipeline.Engine, error) {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	var primary, secondary refdata.Store
	if flagPrimary != "" {
		snap, err := refdata.LoadSnapshotYAML(flagPrimary)
		if err != nil {
			return nil, err
		}
		primary = snap
	}
	if flagSecondary != "" {
		snap, err := refdata.LoadSnapshotYAML(flagSecondary)
		if err != nil {
			return nil, err
		}
		secondary = snap
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithCache(pipeline.NewCache(config.GetConfig().CacheCapacity, config.GetConfig().CacheTTL)),
	}
	if flagCurves != "" {
		set, err := curve.LoadSetYAML(flagCurves)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithCurves(set))
	}

	return pipeline.NewEngine(primary, secondary, opts...), nil
}

func singleCmd() *cobra.Command {
	var (
		input  string
		price  float64
		settle string
	)
	cmd := &cobra.Command{
		Use:   "single",
		Short: "Price a single bond from an ISIN or description",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			req := pipeline.Request{Input: input, Price: price}
			if settle != "" {
				d, err := utils.ParseDate(settle)
				if err != nil {
					return err
				}
				req.Settlement = &d
			}

			out := engine.Evaluate(context.Background(), req)
			printOutcome(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "ISIN or description, e.g. \"T 3 15/08/52\"")
	cmd.Flags().Float64Var(&price, "price", 0, "clean price per 100 face")
	cmd.Flags().StringVar(&settle, "settle", "", "settlement date YYYY-MM-DD (default T+1)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

type portfolioFile struct {
	Positions []struct {
		Input      string  `yaml:"input"`
		Price      float64 `yaml:"price"`
		Weight     float64 `yaml:"weight"`
		Settlement string  `yaml:"settlement"`
	} `yaml:"positions"`
}

func portfolioCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Aggregate a portfolio of positions from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var pf portfolioFile
			if err := yaml.Unmarshal(raw, &pf); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			positions := make([]portfolio.Position, 0, len(pf.Positions))
			for _, p := range pf.Positions {
				pos := portfolio.Position{Input: p.Input, Price: p.Price, Weight: p.Weight}
				if p.Settlement != "" {
					d, err := utils.ParseDate(p.Settlement)
					if err != nil {
						return err
					}
					pos.Settlement = &d
				}
				positions = append(positions, pos)
			}

			res, err := portfolio.Aggregate(context.Background(), engine, positions)
			if err != nil {
				return err
			}
			printPortfolio(res)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "positions.yaml", "portfolio YAML file")
	return cmd
}

func printOutcome(out pipeline.Outcome) {
	switch out.State {
	case pipeline.StateSuccess:
		r := out.Result
		fmt.Printf("YTM:               %.4f%%\n", r.YTM)
		fmt.Printf("YTM (annual):      %.4f%%\n", r.YTMAnnual)
		fmt.Printf("Modified duration: %.4f\n", r.ModifiedDuration)
		fmt.Printf("Macaulay duration: %.4f\n", r.MacaulayDuration)
		fmt.Printf("Convexity:         %.4f\n", r.Convexity)
		fmt.Printf("Accrued interest:  %.6f\n", r.AccruedInterest)
		fmt.Printf("Dirty price:       %.6f\n", r.DirtyPrice)
		fmt.Printf("PVBP (per 1MM):    %.2f\n", r.PVBP)
		if r.SpreadBP != nil {
			fmt.Printf("Spread:            %.1f bp\n", *r.SpreadBP)
		}
		fmt.Printf("Validation:        %s / %s (%s)\n",
			out.Model.Validation.Status, out.Model.Validation.Confidence, out.Model.Validation.Source)
	case pipeline.StateMatured:
		fmt.Println("Bond matured at settlement; no analytics.")
	case pipeline.StateFailed:
		fmt.Printf("Failed: %s\n", out.Failure.Error())
	}
}

func printPortfolio(res portfolio.Result) {
	fmt.Printf("Batch %s\n", res.BatchID)
	for _, pr := range res.Positions {
		switch pr.Outcome.State {
		case pipeline.StateSuccess:
			fmt.Printf("  %-30s ytm=%.4f%% dur=%.2f\n",
				pr.Position.Input, pr.Outcome.Result.YTM, pr.Outcome.Result.ModifiedDuration)
		case pipeline.StateMatured:
			fmt.Printf("  %-30s matured\n", pr.Position.Input)
		case pipeline.StateFailed:
			fmt.Printf("  %-30s failed: %s\n", pr.Position.Input, pr.Outcome.Failure.Error())
		}
	}
	fmt.Printf("Portfolio yield:    %.4f%%\n", res.PortfolioYield)
	fmt.Printf("Portfolio duration: %.4f\n", res.PortfolioDuration)
	if res.PortfolioSpreadBP != nil {
		fmt.Printf("Portfolio spread:   %.1f bp\n", *res.PortfolioSpreadBP)
	}
	fmt.Printf("Success rate:       %.0f%%\n", utils.RoundTo(res.SuccessRate*100, 0))
}
