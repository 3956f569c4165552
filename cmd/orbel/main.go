package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/orbel/orbel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// This command reads a scenario and evaluates, samples or animates the two-body system.

var (
	scenarioPath string
	verbose      bool
	logger       kitlog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "orbel",
	Short:         "Keplerian two-body orbits",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		name := strings.TrimSuffix(scenarioPath, ".toml")
		if name == "" {
			name = "~~defaults~~"
		}
		logger = orbel.NewLogger(os.Stderr, name)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "scenario file (TOML, YAML or JSON); defaults are used when empty")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
	rootCmd.AddCommand(evalCmd(), periodCmd(), trajectoryCmd(), animateCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func loadScenario() (orbel.Scenario, error) {
	var (
		s   orbel.Scenario
		err error
	)
	if scenarioPath == "" {
		s, err = orbel.ReadScenario(strings.NewReader(""), "toml")
	} else {
		s, err = orbel.LoadScenario(scenarioPath)
	}
	if err != nil {
		return s, err
	}
	if verbose {
		logger.Log("level", "info", "subsys", "conf", "orbit", s.Elements, "masses", s.Masses, "view", s.View, "period(yr)", orbel.Period(s.Elements.SemiMajorAxis(), s.Masses.Total()))
	}
	return s, nil
}

func evalCmd() *cobra.Command {
	var t float64
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Print the state vectors and the orientation frame at a given time",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("t") {
				t = s.ElapsedYears()
			}
			ev, err := s.Evaluator(orbel.WithLogger(logger)).Evaluate(s.Elements, s.Masses, t, s.View)
			if err != nil {
				return err
			}
			for _, w := range ev.Warnings {
				logger.Log("level", "warning", "subsys", "eval", "warning", w)
			}
			out := cmd.OutOrStdout()
			sky1, sky2 := ev.Sky()
			fmt.Fprintf(out, "t = %.6f yr (%s)\n", ev.Time, ev.Anomalies)
			fmt.Fprintf(out, "relative  r = %+.6f  v = %+.6f\n", ev.State.Relative, ev.State.RelativeVelocity)
			fmt.Fprintf(out, "body 1    r = %+.6f  sky = (E %+.6f, N %+.6f)\n", ev.State.Body1, sky1.East, sky1.North)
			fmt.Fprintf(out, "body 2    r = %+.6f  sky = (E %+.6f, N %+.6f)\n", ev.State.Body2, sky2.East, sky2.North)
			fmt.Fprintf(out, "frame     P = %+.6f  Q = %+.6f  W = %+.6f  N = %+.6f degenerate=%v\n", ev.Frame.P, ev.Frame.Q, ev.Frame.W, ev.Frame.N, ev.Frame.Degenerate)
			return nil
		},
	}
	cmd.Flags().Float64Var(&t, "t", 0, "elapsed time in years (overrides the scenario)")
	return cmd
}

func periodCmd() *cobra.Command {
	var a, m1, m2 float64
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Print the period and the mean motion from Kepler's third law",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a <= 0 {
				return fmt.Errorf("%w: a=%g", orbel.ErrInvalidElements, a)
			}
			masses := orbel.MassPair{M1: m1, M2: m2}
			if err := masses.Validate(); err != nil {
				return err
			}
			T := orbel.Period(a, masses.Total())
			fmt.Fprintf(cmd.OutOrStdout(), "T = %.9f yr (%s)\nn = %.9f rad/yr\n", T, orbel.YearsToDuration(T), orbel.MeanMotion(a, masses.Total()))
			return nil
		},
	}
	cmd.Flags().Float64Var(&a, "sma", 1, "semi-major axis in AU")
	cmd.Flags().Float64Var(&m1, "m1", 1.6, "primary mass in solar masses")
	cmd.Flags().Float64Var(&m2, "m2", 0.8, "secondary mass in solar masses")
	return cmd
}

func trajectoryCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "trajectory",
		Short: "Sample the orbit over a span (one period by default) and write a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario()
			if err != nil {
				return err
			}
			if output == "" {
				output = s.Output
			}
			if output == "" {
				return fmt.Errorf("no output file: use --out or trajectory.output")
			}
			reg := prometheus.NewRegistry()
			metrics, err := orbel.NewMetrics(reg)
			if err != nil {
				return err
			}
			span := s.Span
			if span == 0 {
				span = orbel.Period(s.Elements.SemiMajorAxis(), s.Masses.Total())
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			start := time.Now()
			evals, err := s.Evaluator(orbel.WithLogger(logger), orbel.WithMetrics(metrics)).
				SampleTimes(ctx, s.Elements, s.Masses, s.View, orbel.TimeGrid(s.ElapsedYears(), span, s.Samples), s.Workers)
			if err != nil {
				return err
			}
			if err := orbel.ExportTrajectory(output, evals); err != nil {
				return err
			}
			logger.Log("level", "notice", "subsys", "trajectory", "status", "finished", "samples", len(evals), "file", output, "duration", time.Since(start))
			return logMetrics(reg)
		},
	}
	cmd.Flags().StringVar(&output, "out", "", "CSV output file (overrides trajectory.output)")
	return cmd
}

func animateCmd() *cobra.Command {
	var (
		fps    int
		frames int
	)
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Run the playback clock and log the bodies' sky positions at each frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario()
			if err != nil {
				return err
			}
			if fps <= 0 {
				return fmt.Errorf("fps must be positive")
			}
			ev := s.Evaluator(orbel.WithLogger(logger))
			clock := orbel.NewClock(s.Speed)
			clock.Seek(s.ElapsedYears())
			clock.Start()
			ticker := time.NewTicker(time.Second / time.Duration(fps))
			defer ticker.Stop()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			for frame := 0; frames <= 0 || frame < frames; frame++ {
				select {
				case <-ctx.Done():
					clock.Stop()
					logger.Log("level", "notice", "subsys", "animate", "status", "interrupted", "t", clock.Elapsed())
					return nil
				case <-ticker.C:
				}
				rslt, err := ev.Evaluate(s.Elements, s.Masses, clock.Elapsed(), s.View)
				if err != nil {
					return err
				}
				sky1, sky2 := rslt.Sky()
				logger.Log("level", "info", "subsys", "animate", "frame", frame, "t", rslt.Time, "nu(deg)", orbel.Rad2deg(rslt.Anomalies.True),
					"east1", sky1.East, "north1", sky1.North, "east2", sky2.East, "north2", sky2.North)
			}
			clock.Stop()
			return nil
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	cmd.Flags().IntVar(&frames, "frames", 0, "number of frames (0 runs until interrupted)")
	return cmd
}

func logMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			kv := []interface{}{"level", "info", "subsys", "metrics", "name", fam.GetName()}
			for _, lbl := range m.GetLabel() {
				kv = append(kv, lbl.GetName(), lbl.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				kv = append(kv, "value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				kv = append(kv, "count", m.GetHistogram().GetSampleCount(), "sum", m.GetHistogram().GetSampleSum())
			}
			logger.Log(kv...)
		}
	}
	return nil
}
