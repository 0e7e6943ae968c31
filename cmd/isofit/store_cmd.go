package main

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/isotonic/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newStoreCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep fitted models in a local model store",
		Long:  `store fits series into a Badger database directory and retrieves them by model ID. Fitting the same series with the same settings twice returns the stored model.`,
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "model store directory")
	_ = cmd.MarkPersistentFlagRequired("dir")

	open := func() (*store.Store, error) {
		comp, err := a.cfg.CompressionType()
		if err != nil {
			return nil, err
		}

		return store.Open(dir, store.WithCompression(comp))
	}

	cmd.AddCommand(
		newStorePutCmd(a, open),
		newStoreGetCmd(a, open),
		newStoreListCmd(a, open),
		newStoreDeleteCmd(a, open),
	)

	return cmd
}

type storeOpener func() (*store.Store, error)

func closeStore(a *app, s *store.Store) {
	if err := s.Close(); err != nil {
		a.logger.Warn("close model store", slog.String("error", err.Error()))
	}
}

func newStorePutCmd(a *app, open storeOpener) *cobra.Command {
	var (
		input       string
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "put",
		Short: "Fit a series and store the model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fitter, err := a.newFitter()
			if err != nil {
				return err
			}
			in, err := readSeries(input, inputFormat, cmd.InOrStdin())
			if err != nil {
				return err
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer closeStore(a, s)

			m, loaded, err := s.FitOrLoad(fitter, in.Values, in.Weights)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			a.logger.Info("model stored",
				slog.String("id", m.ID.String()),
				slog.Bool("existing", loaded),
				slog.Int("pools", len(m.Pools)),
			)

			return writeReport(cmd.OutOrStdout(), a.cfg.Format, newModelReport(m, false))
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "input series; '-' reads stdin")
	cmd.Flags().StringVar(&inputFormat, "input-format", inputAuto, "input format: auto, csv, json or yaml")

	return cmd
}

func newStoreGetCmd(a *app, open storeOpener) *cobra.Command {
	var (
		id     string
		expand bool
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print a stored model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			modelID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("invalid --id: %w", err)
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer closeStore(a, s)

			m, err := s.Load(modelID)
			if err != nil {
				return err
			}

			return writeReport(cmd.OutOrStdout(), a.cfg.Format, newModelReport(m, expand))
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "model ID")
	cmd.Flags().BoolVar(&expand, "expand", false, "include the per-point fitted values")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newStoreListCmd(a *app, open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored model IDs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer closeStore(a, s)

			ids, err := s.List()
			if err != nil {
				return err
			}

			return writeReport(cmd.OutOrStdout(), a.cfg.Format, idReport(ids))
		},
	}
}

func newStoreDeleteCmd(a *app, open storeOpener) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored model",
		RunE: func(_ *cobra.Command, _ []string) error {
			modelID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("invalid --id: %w", err)
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer closeStore(a, s)

			if err := s.Delete(modelID); err != nil {
				return err
			}
			a.logger.Info("model deleted", slog.String("id", id))

			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "model ID")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
