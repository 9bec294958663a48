package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	OutputExtension string     `json:"output_extension" yaml:"output_extension"`
	Workers         int        `json:"workers"          yaml:"workers"`
	Indent          bool       `json:"indent"           yaml:"indent"`
	Isophonics      Isophonics `json:"isophonics"       yaml:"isophonics"`
	Tagtraum        Tagtraum   `json:"tagtraum"         yaml:"tagtraum"`
}

type Isophonics struct {
	// Keywords maps a category name to the path fragment identifying its files.
	Keywords map[string]string `json:"keywords"   yaml:"keywords"`
	// Extensions maps a recognized file extension to its maximum search depth.
	Extensions map[string]int `json:"extensions" yaml:"extensions"`
}

type Tagtraum struct {
	IdentitySeparator string `json:"identity_separator" yaml:"identity_separator"`
}

func Default() *Config {
	return &Config{
		OutputExtension: DefaultOutputExtension,
		Workers:         DefaultWorkers,
		Indent:          false,
		Isophonics: Isophonics{
			Keywords:   defaultKeywords(),
			Extensions: defaultExtensions(),
		},
		Tagtraum: Tagtraum{
			IdentitySeparator: DefaultIdentitySeparator,
		},
	}
}

func (cfg *Config) validate() error {
	if !strings.HasPrefix(cfg.OutputExtension, ".") || len(cfg.OutputExtension) < 2 {
		return fmt.Errorf("output extension %q must start with a dot and be non-empty", cfg.OutputExtension)
	}

	if cfg.Workers <= 0 {
		return errors.New("workers must be positive")
	}

	if len(cfg.Isophonics.Keywords) == 0 {
		return errors.New("isophonics keywords are empty")
	}
	for category, keyword := range cfg.Isophonics.Keywords {
		if !slices.Contains(Categories, category) {
			return fmt.Errorf("unknown isophonics category %q", category)
		}
		if keyword == "" {
			return fmt.Errorf("isophonics keyword for category %q is empty", category)
		}
	}

	if len(cfg.Isophonics.Extensions) == 0 {
		return errors.New("isophonics extensions are empty")
	}
	for ext, depth := range cfg.Isophonics.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("isophonics extension %q must start with a dot and be non-empty", ext)
		}
		if depth <= 0 {
			return fmt.Errorf("isophonics extension %q has non-positive depth %d", ext, depth)
		}
	}

	if cfg.Tagtraum.IdentitySeparator == "" {
		return errors.New("tagtraum identity separator is empty")
	}

	return nil
}

func FromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if nil != err {
		return nil, fmt.Errorf("failed to read config file %q: %v", filePath, err)
	}

	cfg, err := parse(data)
	if nil != err {
		return nil, fmt.Errorf("failed to unmarshal config file %q: %v", filePath, err)
	}

	if err := cfg.validate(); nil != err {
		return nil, fmt.Errorf("validation failed: %v", err)
	}

	return cfg, nil
}

func FromString(data string) (*Config, error) {
	cfg, err := parse([]byte(data))
	if nil != err {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := cfg.validate(); nil != err {
		return nil, fmt.Errorf("validation failed: %v", err)
	}

	return cfg, nil
}

// parse decodes data over the defaults. A keywords or extensions map present
// in data replaces the default map as a whole instead of being merged into it.
func parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Isophonics.Keywords = nil
	cfg.Isophonics.Extensions = nil
	if err := yaml.Unmarshal(data, cfg); nil != err {
		return nil, err
	}

	if nil == cfg.Isophonics.Keywords {
		cfg.Isophonics.Keywords = defaultKeywords()
	}
	if nil == cfg.Isophonics.Extensions {
		cfg.Isophonics.Extensions = defaultExtensions()
	}
	return cfg, nil
}
