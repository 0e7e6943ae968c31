package main

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/isotonic/model"
	"github.com/spf13/cobra"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		input  string
		expand bool
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Print the contents of a model blob",
		Example: `  isofit decode --input series.iso
  isofit decode --input series.iso --expand --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			h, err := model.ParseHeader(data)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			m, err := model.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}

			a.logger.Debug("model decoded",
				slog.String("id", m.ID.String()),
				slog.Int("pools", len(m.Pools)),
				slog.Bool("big_endian", h.IsBigEndian()),
			)

			return writeReport(cmd.OutOrStdout(), a.cfg.Format, newModelReport(m, expand).withBlob(h))
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "model blob path; '-' reads stdin")
	cmd.Flags().BoolVar(&expand, "expand", false, "include the per-point fitted values")

	return cmd
}
