package main

import (
	"log/slog"

	"github.com/arloliu/isotonic/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	var write string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration, or save it with --write",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if write != "" {
				if err := config.Save(a.cfg, write); err != nil {
					return err
				}
				a.logger.Info("configuration saved", slog.String("path", write))

				return nil
			}

			return writeReport(cmd.OutOrStdout(), a.cfg.Format, configReport{cfg: a.cfg})
		},
	}

	cmd.Flags().StringVar(&write, "write", "", "save the effective configuration to this YAML file")

	return cmd
}
