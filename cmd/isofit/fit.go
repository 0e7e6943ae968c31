package main

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/isotonic/diag"
	"github.com/arloliu/isotonic/memo"
	"github.com/arloliu/isotonic/model"
	"github.com/arloliu/isotonic/pava"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newFitCmd(a *app) *cobra.Command {
	var (
		inputs      []string
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit one or more series and print the regression with diagnostics",
		Example: `  isofit fit --input prices.csv --direction decreasing
  isofit fit --input valley.json --center 40 --format json
  cat series.csv | isofit fit --format csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fitter, err := a.newFitter()
			if err != nil {
				return err
			}
			cache := memo.New(fitter, a.cfg.CacheTTL)

			reports := make(fitReports, 0, len(inputs))
			for _, path := range inputs {
				s, err := readSeries(path, inputFormat, cmd.InOrStdin())
				if err != nil {
					return err
				}

				rep, err := a.fitSeries(cache, fitter, path, s)
				if err != nil {
					return err
				}
				reports = append(reports, rep)
			}
			a.logCacheMetrics(cache)

			return writeReport(cmd.OutOrStdout(), a.cfg.Format, reports)
		},
	}

	cmd.Flags().StringSliceVarP(&inputs, "input", "i", []string{"-"}, "input series (CSV value[,weight] rows, or JSON/YAML {values, weights}); '-' reads stdin; repeatable")
	cmd.Flags().StringVar(&inputFormat, "input-format", inputAuto, "input format: auto, csv, json or yaml")

	return cmd
}

// newFitter builds a fitter from the effective configuration.
func (a *app) newFitter() (*pava.Fitter, error) {
	opts, err := a.cfg.FitterOptions()
	if err != nil {
		return nil, err
	}
	if a.unitWeights {
		opts = append(opts, pava.WithUnitWeights())
	}

	return pava.NewFitter(opts...)
}

// fitSeries fits s through cache and summarizes the result.
func (a *app) fitSeries(cache *memo.Cache, fitter *pava.Fitter, source string, s series) (fitReport, error) {
	r, hit, err := cache.Fit(s.Values, s.Weights)
	if err != nil {
		return fitReport{}, fmt.Errorf("%s: %w", source, err)
	}

	weights := s.Weights
	if weights == nil || fitter.UnitWeights() {
		weights = pava.UnitWeights(len(s.Values))
		s.Weights = nil
	}

	summary, err := diag.Summarize(s.Values, weights, r)
	if err != nil {
		return fitReport{}, fmt.Errorf("%s: %w", source, err)
	}

	fp := model.FitterFingerprint(fitter, s.Values, s.Weights)
	a.logger.Debug("series fitted",
		slog.String("source", source),
		slog.Int("points", summary.Points),
		slog.Int("pools", summary.Pools),
		slog.Bool("cached", hit),
		slog.String("fingerprint", fmt.Sprintf("%016x", fp)),
	)

	return fitReport{
		Source:      source,
		Fingerprint: fmt.Sprintf("%016x", fp),
		Direction:   fitter.Direction(),
		Center:      fitter.Center(),
		Cached:      hit,
		Values:      r.Values,
		Weights:     r.Weights,
		Summary:     summary,
		input:       s,
	}, nil
}

// logCacheMetrics logs the fit cache metrics at debug level.
func (a *app) logCacheMetrics(cache *memo.Cache) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(memo.NewCollector(cache, "isofit", nil)); err != nil {
		a.logger.Warn("register cache metrics", slog.String("error", err.Error()))
		return
	}

	families, err := reg.Gather()
	if err != nil {
		a.logger.Warn("gather cache metrics", slog.String("error", err.Error()))
		return
	}

	attrs := make([]any, 0, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			// each metric carries exactly one of counter or gauge
			attrs = append(attrs, slog.Float64(mf.GetName(), m.GetCounter().GetValue()+m.GetGauge().GetValue()))
		}
	}
	a.logger.Debug("fit cache", attrs...)
}
