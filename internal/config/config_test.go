package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/format"
	"github.com/arloliu/isotonic/pava"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), c)

	dir, err := c.FitDirection()
	require.NoError(t, err)
	require.Equal(t, pava.Increasing, dir)

	comp, err := c.CompressionType()
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, comp)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "isofit.yaml", `
direction: decreasing
center: 12
compression: zstd
format: json
cache_ttl: 90s
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "decreasing", c.Direction)
	require.Equal(t, 12, c.Center)
	require.Equal(t, "zstd", c.Compression)
	require.Equal(t, FormatJSON, c.Format)
	require.Equal(t, 90*time.Second, c.CacheTTL)

	opts, err := c.FitterOptions()
	require.NoError(t, err)
	f, err := pava.NewFitter(opts...)
	require.NoError(t, err)
	require.Equal(t, pava.Decreasing, f.Direction())
	require.Equal(t, 12, f.Center())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "isofit.yaml", "direction: decreasing\nformat: csv\n")
	t.Setenv("ISOFIT_DIRECTION", "inc")
	t.Setenv("ISOFIT_COMPRESSION", "lz4")

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "inc", c.Direction)
	require.Equal(t, "lz4", c.Compression)
	require.Equal(t, FormatCSV, c.Format)
}

func TestLoad_HomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, Save(&Config{
		Direction:   "decreasing",
		Center:      3,
		Compression: "s2",
		Format:      FormatYAML,
		CacheTTL:    time.Minute,
	}, filepath.Join(home, ".isofit", "config.yaml")))

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "decreasing", c.Direction)
	require.Equal(t, 3, c.Center)
	require.Equal(t, "s2", c.Compression)
	require.Equal(t, time.Minute, c.CacheTTL)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "direction: sideways\n"))
	require.ErrorIs(t, err, errs.ErrInvalidDirection)

	_, err = Load(writeFile(t, "bad.yaml", "compression: gzip\n"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "format: xml\n"))
	require.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &Config{
		Direction:   "decreasing",
		Center:      -1,
		Compression: "lz4",
		Format:      FormatCSV,
		CacheTTL:    45 * time.Second,
	}

	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ISOFIT_CENTER", "4")
	envFile := writeFile(t, ".env", "ISOFIT_FORMAT=json\nISOFIT_CENTER=9\nISOFIT_CACHE_TTL=2m\nOTHER=ignored\n")

	c, err := Load("", envFile)
	require.NoError(t, err)
	require.Equal(t, FormatJSON, c.Format)
	require.Equal(t, 4, c.Center, "process environment wins over env files")
	require.Equal(t, 2*time.Minute, c.CacheTTL)

	_, err = Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
