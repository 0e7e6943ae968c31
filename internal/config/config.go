// Package config loads the isofit CLI settings from a YAML file, ISOFIT_*
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arloliu/isotonic/format"
	"github.com/arloliu/isotonic/pava"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Config is the CLI configuration.
type Config struct {
	// Direction is the fit direction ("increasing" or "decreasing").
	Direction string `mapstructure:"direction" yaml:"direction" json:"direction"`
	// Center is the radial split index; negative for a plain fit.
	Center int `mapstructure:"center" yaml:"center" json:"center"`
	// Compression is the model blob codec ("none", "zstd", "s2", "lz4").
	Compression string `mapstructure:"compression" yaml:"compression" json:"compression"`
	// Format is the report format ("yaml", "json", "csv").
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	// CacheTTL bounds how long repeated inputs are served from the fit cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl" json:"cache_ttl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Direction:   "increasing",
		Center:      -1,
		Compression: "none",
		Format:      FormatYAML,
		CacheTTL:    5 * time.Minute,
	}
}

// envPrefix prefixes the environment variables read by Load.
const envPrefix = "ISOFIT_"

// Load loads configuration from file, env, and defaults.
// Precedence: env > env files > config file > defaults; command flags are
// applied by the caller.
//
// An explicit cfgFile must exist. Without one, ~/.isofit/config.yaml is read
// if present. envFiles are dotenv files whose ISOFIT_* entries apply unless
// the variable is set in the process environment.
func Load(cfgFile string, envFiles ...string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(strings.TrimSuffix(envPrefix, "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("direction", def.Direction)
	v.SetDefault("center", def.Center)
	v.SetDefault("compression", def.Compression)
	v.SetDefault("format", def.Format)
	v.SetDefault("cache_ttl", def.CacheTTL)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".isofit"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := applyEnvFiles(v, envFiles); err != nil {
		return nil, err
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func applyEnvFiles(v *viper.Viper, files []string) error {
	for _, file := range files {
		vars, err := godotenv.Read(file)
		if err != nil {
			return fmt.Errorf("read env file %s: %w", file, err)
		}

		for name, value := range vars {
			key, ok := strings.CutPrefix(name, envPrefix)
			if !ok {
				continue
			}
			if _, set := os.LookupEnv(name); set {
				continue
			}
			v.Set(strings.ToLower(key), value)
		}
	}

	return nil
}

// Save writes c to path as YAML, creating parent directories as needed.
func Save(c *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate checks that every field parses.
func (c *Config) Validate() error {
	if _, err := c.FitDirection(); err != nil {
		return err
	}
	if _, err := c.CompressionType(); err != nil {
		return err
	}
	switch c.Format {
	case FormatYAML, FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("invalid format %q: want yaml, json or csv", c.Format)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("invalid cache_ttl %s: must not be negative", c.CacheTTL)
	}

	return nil
}

// FitDirection parses Direction.
func (c *Config) FitDirection() (pava.Direction, error) {
	return pava.ParseDirection(c.Direction)
}

// CompressionType parses Compression.
func (c *Config) CompressionType() (format.CompressionType, error) {
	return format.ParseCompression(c.Compression)
}

// FitterOptions returns the pava options for Direction and Center.
func (c *Config) FitterOptions() ([]pava.FitterOption, error) {
	dir, err := c.FitDirection()
	if err != nil {
		return nil, err
	}

	return []pava.FitterOption{pava.WithDirection(dir), pava.WithCenter(c.Center)}, nil
}
