// Package store persists encoded models in a Badger key-value database.
//
// Models are stored as model blobs under their ID. A second index maps fit
// fingerprints to model IDs, so FitOrLoad can return a previously stored fit
// of the same series instead of fitting it again.
//
// Fingerprints are 64-bit xxHash values. FitOrLoad ignores an indexed model
// whose length differs from the request; a collision between two series of
// equal length would go unnoticed, which at 64 bits is an accepted risk.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/format"
	"github.com/arloliu/isotonic/internal/options"
	"github.com/arloliu/isotonic/model"
	"github.com/arloliu/isotonic/pava"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var (
	modelPrefix       = []byte("model/")
	fingerprintPrefix = []byte("fp/")
)

// Config holds the settings of Open.
type Config struct {
	inMemory    bool
	compression format.CompressionType
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithInMemory keeps the database in memory; the directory is ignored.
func WithInMemory() Option {
	return options.NoError(func(c *Config) {
		c.inMemory = true
	})
}

// WithCompression sets the codec of stored model blobs (default format.CompressionZstd).
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if !comp.Valid() {
			return fmt.Errorf("invalid store compression: %s", comp)
		}
		c.compression = comp

		return nil
	})
}

// Store is a Badger-backed model store. It is safe for concurrent use.
type Store struct {
	db  *badger.DB
	cfg Config
}

// Open opens or creates a store in dir.
func Open(dir string, opts ...Option) (*Store, error) {
	cfg := Config{compression: format.CompressionZstd}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	bopts := badger.DefaultOptions(dir)
	if cfg.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}

	db, err := badger.Open(bopts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open model store: %w", err)
	}

	return &Store{db: db, cfg: cfg}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores m under its ID, replacing any model with the same ID.
func (s *Store) Save(m model.Model) error {
	blob, err := model.Encode(m, model.WithCompression(s.cfg.compression))
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(modelKey(m.ID), blob)
	})
}

// Load returns the model stored under id, or errs.ErrModelNotFound.
func (s *Store) Load(id uuid.UUID) (model.Model, error) {
	var m model.Model
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(modelKey(id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			m, err = model.Decode(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.Model{}, fmt.Errorf("%w: %s", errs.ErrModelNotFound, id)
	}
	if err != nil {
		return model.Model{}, err
	}

	return m, nil
}

// Delete removes the model stored under id and its fingerprint entries.
// Deleting an unknown ID returns errs.ErrModelNotFound.
func (s *Store) Delete(id uuid.UUID) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(modelKey(id)); err != nil {
			return err
		}
		if err := txn.Delete(modelKey(id)); err != nil {
			return err
		}

		var stale [][]byte
		it := txn.NewIterator(keyIteratorOptions(fingerprintPrefix))
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			if err := item.Value(func(val []byte) error {
				if bytes.Equal(val, id[:]) {
					stale = append(stale, item.KeyCopy(nil))
				}
				return nil
			}); err != nil {
				it.Close()
				return err
			}
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", errs.ErrModelNotFound, id)
	}

	return err
}

// List returns the IDs of all stored models in key order.
func (s *Store) List() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(keyIteratorOptions(modelPrefix))
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			id, err := uuid.FromBytes(it.Item().Key()[len(modelPrefix):])
			if err != nil {
				return fmt.Errorf("malformed model key: %w", err)
			}
			ids = append(ids, id)
		}

		return nil
	})

	return ids, err
}

// FitOrLoad returns the stored fit of values and weights under f's settings,
// fitting and storing it on the first request.
//
// Returns:
//   - model.Model: The stored or newly fitted model
//   - bool: Whether the model was loaded from the store
//   - error: Fit validation, codec or database errors
func (s *Store) FitOrLoad(f *pava.Fitter, values, weights []float64) (model.Model, bool, error) {
	fpKey := fingerprintKey(model.FitterFingerprint(f, values, weights))

	var id uuid.UUID
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(fpKey)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			id, err = uuid.FromBytes(val)
			return err
		})
	})
	switch {
	case err == nil:
		m, err := s.Load(id)
		if err == nil && m.Len() == len(values) {
			return m, true, nil
		}
		if err != nil && !errors.Is(err, errs.ErrModelNotFound) {
			return model.Model{}, false, err
		}
	case !errors.Is(err, badger.ErrKeyNotFound):
		return model.Model{}, false, err
	}

	m, err := model.FromFitter(f, values, weights)
	if err != nil {
		return model.Model{}, false, err
	}
	blob, err := model.Encode(m, model.WithCompression(s.cfg.compression))
	if err != nil {
		return model.Model{}, false, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(modelKey(m.ID), blob); err != nil {
			return err
		}

		return txn.Set(fpKey, m.ID[:])
	})
	if err != nil {
		return model.Model{}, false, err
	}

	return m, false, nil
}

func keyIteratorOptions(prefix []byte) badger.IteratorOptions {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix

	return opts
}

func modelKey(id uuid.UUID) []byte {
	return append(append([]byte(nil), modelPrefix...), id[:]...)
}

func fingerprintKey(fp uint64) []byte {
	return strconv.AppendUint(append([]byte(nil), fingerprintPrefix...), fp, 16)
}
