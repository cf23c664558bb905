package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. It may be missing.
const DefaultPath = "url2clash.yaml"

type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Convert ConvertConfig `yaml:"convert"`
	Log     LogConfig     `yaml:"log"`
}

type OutputConfig struct {
	Format string `yaml:"format"` // clash, xray
	Path   string `yaml:"path"`   // empty means stdout
}

type ConvertConfig struct {
	Workers int  `yaml:"workers"`
	Dedupe  bool `yaml:"dedupe"`
	// Extended emits keys outside the base Clash mapping (skip-cert-verify,
	// hysteria2 sni/obfs, hysteria auth_str).
	Extended bool `yaml:"extended"`
}

type LogConfig struct {
	Verbose bool   `yaml:"verbose"`
	File    string `yaml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output:  OutputConfig{Format: "clash"},
		Convert: ConvertConfig{Workers: 4},
	}
}

// Load reads path on top of the defaults. An empty path means DefaultPath,
// whose absence is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = "clash"
	}
	if cfg.Convert.Workers <= 0 {
		cfg.Convert.Workers = 1
	}

	return cfg, nil
}
