package main

import (
	"fmt"

	"github.com/arloliu/isotonic/internal/synth"
	"github.com/arloliu/isotonic/memo"
	"github.com/spf13/cobra"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		points int
		seed   uint64
		trend  string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Fit a seeded noisy series",
		Long:  `demo generates a reproducible noisy series (rising, falling or valley) and fits it with the configured direction and center. A valley without --center is split at its midpoint.`,
		Example: `  isofit demo --points 50 --trend falling --direction decreasing
  isofit demo --trend valley --format csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if points <= 0 {
				return fmt.Errorf("--points must be positive, got %d", points)
			}

			var tr synth.Trend
			switch trend {
			case "rising":
				tr = synth.Rising
			case "falling":
				tr = synth.Falling
			case "valley":
				center := a.cfg.Center
				if center < 0 {
					center = points / 2
					a.cfg.Center = center
				}
				tr = synth.Valley(center)
			default:
				return fmt.Errorf("unknown trend %q: want rising, falling or valley", trend)
			}

			fitter, err := a.newFitter()
			if err != nil {
				return err
			}

			values, weights := synth.NoisyLine(seed, points, tr)
			rep, err := a.fitSeries(memo.New(fitter, 0), fitter, "demo:"+trend, series{Values: values, Weights: weights})
			if err != nil {
				return err
			}

			return writeReport(cmd.OutOrStdout(), a.cfg.Format, fitReports{rep})
		},
	}

	cmd.Flags().IntVar(&points, "points", 40, "number of points")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&trend, "trend", "rising", "noiseless trend: rising, falling or valley")

	return cmd
}
