package store

import (
	"testing"

	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/format"
	"github.com/arloliu/isotonic/internal/synth"
	"github.com/arloliu/isotonic/model"
	"github.com/arloliu/isotonic/pava"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T, opts ...Option) *Store {
	t.Helper()

	s, err := Open("", append([]Option{WithInMemory()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	return s
}

func fitted(t *testing.T, seed uint64) model.Model {
	t.Helper()

	values, weights := synth.NoisyLine(seed, 200, synth.Rising)
	m, err := model.FromFit(values, weights, pava.Increasing, model.NoCenter)
	require.NoError(t, err)

	return m
}

func TestStore_SaveLoad(t *testing.T) {
	for _, comp := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(comp.String(), func(t *testing.T) {
			s := openMemory(t, WithCompression(comp))
			m := fitted(t, 1)

			require.NoError(t, s.Save(m))
			got, err := s.Load(m.ID)
			require.NoError(t, err)
			require.Equal(t, m, got)
		})
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s := openMemory(t)

	_, err := s.Load(uuid.New())
	require.ErrorIs(t, err, errs.ErrModelNotFound)
	require.ErrorIs(t, s.Delete(uuid.New()), errs.ErrModelNotFound)
}

func TestStore_ListDelete(t *testing.T) {
	s := openMemory(t)

	a, b := fitted(t, 1), fitted(t, 2)
	require.NoError(t, s.Save(a))
	require.NoError(t, s.Save(b))

	ids, err := s.List()
	require.NoError(t, err)
	require.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, ids)

	require.NoError(t, s.Delete(a.ID))
	ids, err = s.List()
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{b.ID}, ids)

	_, err = s.Load(a.ID)
	require.ErrorIs(t, err, errs.ErrModelNotFound)
}

func TestStore_FitOrLoad(t *testing.T) {
	s := openMemory(t)
	f, err := pava.NewFitter(pava.WithCenter(50))
	require.NoError(t, err)
	values, weights := synth.NoisyLine(3, 100, synth.Valley(50))

	first, loaded, err := s.FitOrLoad(f, values, weights)
	require.NoError(t, err)
	require.False(t, loaded)
	require.Equal(t, 50, first.Center)
	require.Equal(t, pava.MustRegressRadial(values, weights, 50, pava.Increasing), first.Regression())

	second, loaded, err := s.FitOrLoad(f, values, weights)
	require.NoError(t, err)
	require.True(t, loaded)
	require.Equal(t, first, second)

	// A different fitter is a different request.
	dec, err := pava.NewFitter(pava.WithDirection(pava.Decreasing))
	require.NoError(t, err)
	other, loaded, err := s.FitOrLoad(dec, values, weights)
	require.NoError(t, err)
	require.False(t, loaded)
	require.NotEqual(t, first.ID, other.ID)

	// Deleting the model drops its fingerprint entry, so the next request refits.
	require.NoError(t, s.Delete(first.ID))
	third, loaded, err := s.FitOrLoad(f, values, weights)
	require.NoError(t, err)
	require.False(t, loaded)
	require.NotEqual(t, first.ID, third.ID)
	require.Equal(t, first.Pools, third.Pools)

	_, _, err = s.FitOrLoad(f, values[:10], weights[:10])
	require.ErrorIs(t, err, errs.ErrCenterOutOfRange)
}

func TestStore_FitOrLoad_LengthMismatch(t *testing.T) {
	s := openMemory(t)
	f, err := pava.NewFitter()
	require.NoError(t, err)

	foreign := fitted(t, 4)
	require.NoError(t, s.Save(foreign))

	// Point the request's fingerprint at a model of another length, as a
	// fingerprint collision would.
	values, weights := synth.NoisyLine(5, 30, synth.Rising)
	fp := model.FitterFingerprint(f, values, weights)
	require.NoError(t, s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(fingerprintKey(fp), foreign.ID[:])
	}))

	m, loaded, err := s.FitOrLoad(f, values, weights)
	require.NoError(t, err)
	require.False(t, loaded)
	require.NotEqual(t, foreign.ID, m.ID)
	require.Equal(t, 30, m.Len())

	again, loaded, err := s.FitOrLoad(f, values, weights)
	require.NoError(t, err)
	require.True(t, loaded)
	require.Equal(t, m.ID, again.ID)
}

func TestStore_Persistent(t *testing.T) {
	dir := t.TempDir()
	m := fitted(t, 4)

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(m))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(m.ID)
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestOpen_InvalidOption(t *testing.T) {
	_, err := Open("", WithInMemory(), WithCompression(format.CompressionType(0)))
	require.Error(t, err)
}
