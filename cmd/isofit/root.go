package main

import (
	"io"
	"log/slog"

	"github.com/arloliu/isotonic/internal/config"
	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands.
type app struct {
	cfgFile  string
	envFiles []string
	debug    bool

	// fit overrides, applied on top of the loaded config when set
	direction   string
	center      int
	format      string
	unitWeights bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "isofit",
		Short:         "Fit isotonic and radial regressions",
		Long:          `isofit fits weighted isotonic (monotone) and radial (valley or peak) regressions with the Pool-Adjacent-Violators Algorithm, reports fit diagnostics, and stores fits as compact model blobs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default is ~/.isofit/config.yaml)")
	f.StringSliceVar(&a.envFiles, "env-file", nil, "dotenv file with ISOFIT_* settings; repeatable")
	f.BoolVar(&a.debug, "debug", false, "enable debug logging")
	f.StringVar(&a.direction, "direction", "", "fit direction: increasing or decreasing (overrides config)")
	f.IntVar(&a.center, "center", -1, "radial split index; negative for a plain fit (overrides config)")
	f.StringVar(&a.format, "format", "", "report format: yaml, json or csv (overrides config)")
	f.BoolVar(&a.unitWeights, "unit-weights", false, "ignore input weights and weigh every point with 1")

	root.AddCommand(
		newFitCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newDemoCmd(a),
		newStoreCmd(a),
		newConfigCmd(a),
	)

	return root
}

// setup loads the configuration, applies flag overrides and creates the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = newLogger(cmd.ErrOrStderr(), a.debug)

	cfg, err := config.Load(a.cfgFile, a.envFiles...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("direction") {
		cfg.Direction = a.direction
	}
	if flags.Changed("center") {
		cfg.Center = a.center
	}
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger.Debug("configuration loaded",
		slog.String("config_file", a.cfgFile),
		slog.String("direction", cfg.Direction),
		slog.Int("center", cfg.Center),
		slog.String("format", cfg.Format),
	)

	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With(slog.String("component", "isofit"))
}
