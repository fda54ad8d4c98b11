package batch

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/formulafmt/formula"
	"github.com/gnoswap-labs/formulafmt/scanner"
)

// DefaultConfigPath is read when no configuration path is given.
const DefaultConfigPath = ".formulafmt.yaml"

// Config is the YAML configuration of a rendering run.
type Config struct {
	Name       string        `yaml:"name"`
	CacheSize  int           `yaml:"cache_size"`
	Extensions []string      `yaml:"extensions"`
	Theme      formula.Theme `yaml:"theme"`
}

func DefaultConfig() Config {
	return Config{
		Name:       "formulafmt",
		CacheSize:  formula.DefaultCacheSize,
		Extensions: []string{scanner.DefaultExtension},
		Theme:      formula.DefaultTheme(),
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Name == "" {
		c.Name = def.Name
	}
	if c.CacheSize <= 0 {
		c.CacheSize = def.CacheSize
	}
	if len(c.Extensions) == 0 {
		c.Extensions = def.Extensions
	}
	c.Theme = c.Theme.WithDefaults()
	return c
}

// LoadConfig reads the configuration at path. A missing file yields the
// defaults; fields left out of the file are filled from the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	var config Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	config = config.withDefaults()
	if err := config.Theme.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes config to path as YAML.
func SaveConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}

// NewService builds the formula service described by config.
func (c Config) NewService(opts ...formula.Option) (*formula.Service, error) {
	c = c.withDefaults()
	return formula.New(append([]formula.Option{
		formula.WithCacheSize(c.CacheSize),
		formula.WithTheme(c.Theme),
	}, opts...)...)
}
