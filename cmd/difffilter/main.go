// Command difffilter designs discrete-time state space realizations of
// filtered differentiators and prints their system matrices.
//
// Usage:
//
//	difffilter [flags]
//
// Examples:
//
//	difffilter
//	difffilter -order 3 -tau 0.05 -step 0.001
//	difffilter -convention negated -samples 500 -input step -plot step.png
//	difffilter -config filters.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hammal/difffilter"
	"github.com/hammal/difffilter/batch"
	"github.com/hammal/difffilter/config"
	"github.com/hammal/difffilter/figure"
	"github.com/hammal/difffilter/simulate"
	"github.com/hammal/difffilter/ssm"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("difffilter", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "YAML configuration file, overrides the filter flags")
		order      = fs.Uint("order", 2, "filter order")
		tau        = fs.Float64("tau", 0.1, "time constant in seconds")
		step       = fs.Float64("step", 0.01, "sample period in seconds")
		convention = fs.String("convention", "direct", "feedback sign convention: direct or negated")
		samples    = fs.Int("samples", 0, "number of samples to simulate, 0 disables the simulation")
		input      = fs.String("input", "step", "simulation input: step, ramp, sine or impulse")
		amplitude  = fs.Float64("amplitude", 1, "simulation input amplitude")
		frequency  = fs.Float64("frequency", 1, "sine frequency in Hz")
		plotPath   = fs.String("plot", "", "save the simulated response of the first filter to this file")
		verbose    = fs.Bool("v", false, "verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var cfg *config.Config
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
		logger.Info("loaded configuration", zap.String("path", *configPath), zap.Int("filters", len(cfg.Filters)))
	} else {
		cfg = config.Default()
		cfg.Filters = []config.Filter{{Order: *order, TimeConstant: *tau, Step: *step, Convention: *convention}}
		cfg.Simulation = config.Simulation{Samples: *samples, Input: *input, Amplitude: *amplitude, Frequency: *frequency}
		cfg.Plot.Path = *plotPath
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	jobs := cfg.Jobs()
	filters, err := batch.Design(ctx, jobs, cfg.Workers, logger)
	if err != nil {
		return err
	}

	for index, filter := range filters {
		job := jobs[index]
		fmt.Fprintf(stdout, "# order=%d tau=%g step=%g convention=%s\n", job.Order, job.TimeConstant, job.Step, job.Convention)
		printMatrices(stdout, filter.Discrete)
	}

	if cfg.Simulation.Samples == 0 {
		return nil
	}
	return simulateFirst(stdout, cfg, filters[0], logger)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func printMatrices(w io.Writer, ss *ssm.StateSpace) {
	for _, m := range []struct {
		name   string
		matrix *mat.Dense
	}{
		{"A", ss.A()},
		{"B", ss.B()},
		{"C", ss.C()},
		{"D", ss.D()},
	} {
		if m.matrix.IsEmpty() {
			fmt.Fprintf(w, "%s = []\n", m.name)
			continue
		}
		fmt.Fprintf(w, "%s = %v\n", m.name, mat.Formatted(m.matrix, mat.Prefix("    "), mat.Squeeze()))
	}
}

func simulateFirst(w io.Writer, cfg *config.Config, filter *difffilter.Filter, logger *zap.Logger) error {
	input, err := cfg.Signal()
	if err != nil {
		return err
	}
	sim, err := simulate.NewSimulator(filter.Discrete)
	if err != nil {
		return err
	}
	res, err := sim.Run(input, cfg.Simulation.Samples)
	if err != nil {
		return err
	}
	logger.Info("simulated filter", zap.Int("samples", len(res)), zap.String("input", cfg.Simulation.Input))

	ts := filter.Discrete.SampleTime()
	if cfg.Plot.Path == "" {
		for k, y := range res {
			fmt.Fprintf(w, "%g", float64(k)*ts)
			for _, v := range y {
				fmt.Fprintf(w, "\t%g", v)
			}
			fmt.Fprintln(w)
		}
		return nil
	}

	labels := make([]string, filter.Discrete.ObservationSpaceOrder())
	for index := range labels {
		labels[index] = fmt.Sprintf("y%d", index)
	}
	width := vg.Length(cfg.Plot.WidthCM) * vg.Centimeter
	height := vg.Length(cfg.Plot.HeightCM) * vg.Centimeter
	if err := figure.Responses(cfg.Plot.Path, ts, res, labels, width, height); err != nil {
		return err
	}
	logger.Info("saved plot", zap.String("path", cfg.Plot.Path))
	return nil
}
