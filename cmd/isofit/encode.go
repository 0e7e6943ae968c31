package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/arloliu/isotonic/compress"
	"github.com/arloliu/isotonic/model"
	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		input       string
		inputFormat string
		output      string
		compression string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Fit a series and write it as a model blob",
		Example: `  isofit encode --input series.csv --output series.iso --compression zstd
  isofit encode --input valley.yaml --center 25 --output - > valley.iso`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("compression") {
				a.cfg.Compression = compression
			}
			comp, err := a.cfg.CompressionType()
			if err != nil {
				return err
			}

			fitter, err := a.newFitter()
			if err != nil {
				return err
			}
			s, err := readSeries(input, inputFormat, cmd.InOrStdin())
			if err != nil {
				return err
			}

			m, err := model.FromFitter(fitter, s.Values, s.Weights)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			blob, err := model.Encode(m, model.WithCompression(comp))
			if err != nil {
				return err
			}

			if output == "-" {
				_, err = cmd.OutOrStdout().Write(blob)
			} else {
				err = os.WriteFile(output, blob, 0o644)
			}
			if err != nil {
				return fmt.Errorf("write model: %w", err)
			}

			a.logger.Info("model encoded",
				slog.String("id", m.ID.String()),
				slog.String("output", output),
				slog.Int("points", m.Len()),
				slog.Int("pools", len(m.Pools)),
				slog.String("compression", comp.String()),
				slog.Int("bytes", len(blob)),
				slog.Float64("payload_ratio", compress.Ratio(len(m.Pools)*model.PoolRecordSize, len(blob)-model.HeaderSize)),
			)

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "input series; '-' reads stdin")
	cmd.Flags().StringVar(&inputFormat, "input-format", inputAuto, "input format: auto, csv, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "model blob path; '-' writes stdout")
	cmd.Flags().StringVar(&compression, "compression", "", "payload compression: none, zstd, s2 or lz4 (overrides config)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
