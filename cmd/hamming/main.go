package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hamming-numbers/internal/hamming"
	"hamming-numbers/internal/logging"
	"hamming-numbers/internal/primes"
	"hamming-numbers/internal/render"
	"hamming-numbers/internal/sweep"
)

// Demo run executed when no subcommand is given.
const (
	demoType         = 100
	demoThreshold    = 1_000_000_000
	demoMaxType      = 100
	demoMaxThreshold = 10_000
	demoGranularity  = 11
)

type app struct {
	logLevel string
	logger   *zap.Logger
	out      io.Writer
	start    time.Time
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var output string

	root := &cobra.Command{
		Use:   "hamming",
		Short: "Count generalized Hamming numbers",
		Long: `Count generalized Hamming numbers: integers up to a threshold whose
prime factors are all drawn from the prime basis selected by a type.

Without a subcommand the demo runs: the count for type 100 up to 10^9,
followed by a sweep over types up to 100 and thresholds up to 10^4.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			a.out = cmd.OutOrStdout()
			a.start = time.Now()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd.Context(), output)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.Flags().StringVarP(&output, "output", "o", "", "Also write the demo sweep as CSV to this path")

	root.AddCommand(
		newCountCmd(a),
		newPrimesCmd(a),
		newNumbersCmd(a),
		newSweepCmd(a),
	)
	return root
}

func newCountCmd(a *app) *cobra.Command {
	var (
		typ, threshold  int64
		strategy, basis string
	)

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the Hamming numbers of a type up to a threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := hamming.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			b, err := primes.ParseBasis(basis)
			if err != nil {
				return err
			}
			return a.runCount(cmd.Context(), typ, threshold, s, b)
		},
	}
	cmd.Flags().Int64VarP(&typ, "type", "t", demoType, "Hamming type")
	cmd.Flags().Int64VarP(&threshold, "threshold", "k", demoThreshold, "Upper bound (inclusive)")
	cmd.Flags().StringVar(&strategy, "strategy", string(hamming.StrategyEnumeration), "Counting strategy (enumeration, naive)")
	cmd.Flags().StringVar(&basis, "basis", string(primes.BasisBound), "Prime basis (bound, first-n)")
	return cmd
}

func newPrimesCmd(a *app) *cobra.Command {
	var bound int64

	cmd := &cobra.Command{
		Use:   "primes",
		Short: "List the primes up to a bound",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := primes.List(bound)
			fmt.Fprintln(a.out, joinInts(list))
			fmt.Fprintf(a.out, "%d primes up to %d\n", len(list), bound)
			return nil
		},
	}
	cmd.Flags().Int64VarP(&bound, "bound", "b", demoType, "Largest candidate")
	return cmd
}

func newNumbersCmd(a *app) *cobra.Command {
	var (
		typ, threshold int64
		basis, output  string
	)

	cmd := &cobra.Command{
		Use:   "numbers",
		Short: "List the Hamming numbers of a type up to a threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := primes.ParseBasis(basis)
			if err != nil {
				return err
			}

			numbers := hamming.Numbers(primes.ForType(typ, b), threshold)
			if output == "" {
				fmt.Fprintln(a.out, joinInts(numbers))
			} else {
				if err := render.WriteNumbers(numbers, output); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "  Output file: %s\n", output)
			}
			fmt.Fprintf(a.out, "  Hamming numbers found: %d\n", len(numbers))
			return nil
		},
	}
	cmd.Flags().Int64VarP(&typ, "type", "t", 5, "Hamming type")
	cmd.Flags().Int64VarP(&threshold, "threshold", "k", 100, "Upper bound (inclusive)")
	cmd.Flags().StringVar(&basis, "basis", string(primes.BasisBound), "Prime basis (bound, first-n)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write one number per line to this path instead of stdout")
	return cmd
}

func newSweepCmd(a *app) *cobra.Command {
	p := sweep.DefaultParams(demoMaxType, demoMaxThreshold, demoGranularity)
	var (
		basis, output string
		workers       int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sample counts over a grid of types and thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := primes.ParseBasis(basis)
			if err != nil {
				return err
			}
			p.Basis = b
			return a.runSweep(cmd.Context(), p, workers, output)
		},
	}
	cmd.Flags().Int64Var(&p.MinType, "min-type", p.MinType, "Smallest type on the type axis")
	cmd.Flags().Int64Var(&p.MaxType, "max-type", p.MaxType, "Largest type on the type axis")
	cmd.Flags().Int64Var(&p.MinThreshold, "min-threshold", p.MinThreshold, "Smallest threshold on the threshold axis")
	cmd.Flags().Int64Var(&p.MaxThreshold, "max-threshold", p.MaxThreshold, "Largest threshold on the threshold axis")
	cmd.Flags().Int64VarP(&p.Granularity, "granularity", "g", p.Granularity, "Number of steps per axis (must exceed 10)")
	cmd.Flags().StringVar(&basis, "basis", string(primes.BasisBound), "Prime basis (bound, first-n)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker goroutines (0 uses all CPUs)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Also write the grid as CSV to this path")
	return cmd
}

func (a *app) runDemo(ctx context.Context, output string) error {
	if err := a.runCount(ctx, demoType, demoThreshold, hamming.StrategyEnumeration, primes.BasisBound); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	return a.runSweep(ctx, sweep.DefaultParams(demoMaxType, demoMaxThreshold, demoGranularity), 0, output)
}

func (a *app) runCount(ctx context.Context, typ, threshold int64, strategy hamming.Strategy, basis primes.Basis) error {
	startTime := time.Now()
	count, err := hamming.CountContext(ctx, typ, threshold, hamming.WithStrategy(strategy), hamming.WithBasis(basis))
	if err != nil {
		return fmt.Errorf("count interrupted: %w", err)
	}
	elapsed := time.Since(startTime)

	a.logger.Info("count computed",
		zap.Int64("type", typ),
		zap.Int64("threshold", threshold),
		zap.String("strategy", string(strategy)),
		zap.String("basis", string(basis)),
		zap.Int64("count", count),
		zap.Duration("elapsed", elapsed))

	fmt.Fprintf(a.out, "Type %d Hamming numbers up to %d: %d\n", typ, threshold, count)
	fmt.Fprintf(a.out, "  Strategy: %s, basis: %s\n", strategy, basis)
	fmt.Fprintf(a.out, "  Processing time: %s\n", elapsed.Round(time.Millisecond))
	return nil
}

func (a *app) runSweep(ctx context.Context, p sweep.Params, workers int, output string) error {
	if err := sweep.Validate(p); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Hamming Sweep\n")
	fmt.Fprintf(a.out, "=============\n\n")
	fmt.Fprintf(a.out, "Types: %d..%d, thresholds: %d..%d, granularity: %d\n\n",
		p.MinType, p.MaxType, p.MinThreshold, p.MaxThreshold, p.Granularity)

	// Progress callback that shows elapsed time
	progressCallback := func(msg string) {
		fmt.Fprintf(a.out, "[%s] %s\n", formatElapsed(time.Since(a.start)), msg)
	}

	startTime := time.Now()
	grid, err := sweep.Sample(ctx, p,
		sweep.WithWorkers(workers),
		sweep.WithProgress(progressCallback),
		sweep.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	processingTime := time.Since(startTime)

	fmt.Fprintln(a.out)
	if err := render.Surface(grid, render.TextRenderer{W: a.out}); err != nil {
		return err
	}

	if output != "" {
		progressCallback("Writing output file...")
		if err := render.Surface(grid, render.CSVRenderer{Path: output}); err != nil {
			return err
		}
	}

	rows, cols := grid.Shape()
	fmt.Fprintf(a.out, "\n✓ Success!\n")
	fmt.Fprintf(a.out, "  Grid: %d thresholds x %d types\n", rows, cols)
	fmt.Fprintf(a.out, "  Processing time: %s\n", processingTime.Round(time.Millisecond))
	if output != "" {
		fmt.Fprintf(a.out, "  Output file: %s\n", output)
	}
	return nil
}

func joinInts(values []int64) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	return sb.String()
}

// formatElapsed formats a duration into a human-readable elapsed time string
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf("%dm%02ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
